package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/osis/backend/internal/domain/jury"
	"github.com/osis/backend/internal/domain/reference"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
	"github.com/osis/backend/internal/domain/supervision"
	"github.com/osis/backend/internal/domain/trajectory"
)

type webPush struct {
	personID uuid.UUID
	subject  string
	body     string
}

type webStub struct {
	pushes []webPush
	err    error
}

func (w *webStub) Push(_ context.Context, personID uuid.UUID, subject, body string) error {
	if w.err != nil {
		return w.err
	}
	w.pushes = append(w.pushes, webPush{personID: personID, subject: subject, body: body})
	return nil
}

type sentMail struct {
	to      []string
	cc      []string
	subject string
	body    string
}

type mailStub struct {
	sent []sentMail
	err  error
}

func (m *mailStub) Send(_ context.Context, to []string, cc []string, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, cc: cc, subject: subject, body: body})
	return nil
}

type trajectoryStore struct {
	byID map[uuid.UUID]*trajectory.Trajectory
}

func (s *trajectoryStore) FindByID(_ context.Context, id uuid.UUID) (*trajectory.Trajectory, error) {
	t, ok := s.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return t, nil
}

func (s *trajectoryStore) FindByAdmission(_ context.Context, _ uuid.UUID) (*trajectory.Trajectory, error) {
	return nil, shared.ErrNotFound
}

func (s *trajectoryStore) FindByStudent(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]trajectory.Trajectory, error) {
	return nil, nil
}

func (s *trajectoryStore) Save(_ context.Context, t *trajectory.Trajectory) error {
	s.byID[t.ID] = t
	return nil
}

func (s *trajectoryStore) SaveWithLock(ctx context.Context, t *trajectory.Trajectory) error {
	return s.Save(ctx, t)
}

func (s *trajectoryStore) GetDTO(_ context.Context, _ uuid.UUID) (*trajectory.DTO, error) {
	return nil, shared.ErrNotFound
}

type groupStore struct {
	group *supervision.Group
	dto   *supervision.DTO
}

func (s *groupStore) FindByID(_ context.Context, _ uuid.UUID) (*supervision.Group, error) {
	return s.group, nil
}

func (s *groupStore) FindByTrajectory(_ context.Context, _ uuid.UUID) (*supervision.Group, error) {
	if s.group == nil {
		return nil, shared.ErrNotFound
	}
	return s.group, nil
}

func (s *groupStore) Save(_ context.Context, _ *supervision.Group) error { return nil }

func (s *groupStore) GetDTO(_ context.Context, _ uuid.UUID) (*supervision.DTO, error) {
	if s.dto == nil {
		return nil, shared.ErrNotFound
	}
	return s.dto, nil
}

type juryStore struct {
	dto *jury.DTO
}

func (s *juryStore) FindByTrajectory(_ context.Context, _ uuid.UUID) (*jury.Jury, error) {
	return nil, shared.ErrNotFound
}

func (s *juryStore) Save(_ context.Context, _ *jury.Jury) error { return nil }

func (s *juryStore) GetDTO(_ context.Context, _ uuid.UUID) (*jury.DTO, error) {
	if s.dto == nil {
		return nil, shared.ErrNotFound
	}
	return s.dto, nil
}

type personStore struct {
	byID map[uuid.UUID]*reference.PersonDTO
}

func (s *personStore) Get(_ context.Context, id uuid.UUID) (*reference.PersonDTO, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

type notifierFixture struct {
	notifier     *Notifier
	web          *webStub
	mail         *mailStub
	trajectories *trajectoryStore
	groups       *groupStore
	juries       *juryStore
	trajectoryID uuid.UUID
	studentID    uuid.UUID
}

func newNotifierFixture(t *testing.T) *notifierFixture {
	t.Helper()

	studentID := uuid.New()
	traj, err := trajectory.NewTrajectory(uuid.New(), studentID, 42, "CDSS", 2024,
		"CDSS", "Louvain-la-Neuve", time.Now())
	require.NoError(t, err)

	trajectories := &trajectoryStore{byID: map[uuid.UUID]*trajectory.Trajectory{traj.ID: traj}}
	persons := &personStore{byID: map[uuid.UUID]*reference.PersonDTO{
		studentID: {ID: studentID, FirstName: "Marie", LastName: "Dupont", Email: "marie.dupont@student.uclouvain.be"},
	}}

	web := &webStub{}
	mail := &mailStub{}
	groups := &groupStore{}
	juries := &juryStore{}

	return &notifierFixture{
		notifier:     NewNotifier(web, mail, trajectories, groups, juries, persons, zap.NewNop()),
		web:          web,
		mail:         mail,
		trajectories: trajectories,
		groups:       groups,
		juries:       juries,
		trajectoryID: traj.ID,
		studentID:    studentID,
	}
}

func TestNotifier_SendToStudent(t *testing.T) {
	t.Run("doubles the message as web notification and email", func(t *testing.T) {
		f := newNotifierFixture(t)

		err := f.notifier.SendToStudent(context.Background(), f.trajectoryID,
			"Convocation", "Merci de vous présenter.", trajectory.Recipients{})
		require.NoError(t, err)

		require.Len(t, f.web.pushes, 1)
		assert.Equal(t, f.studentID, f.web.pushes[0].personID)
		assert.Equal(t, "Convocation", f.web.pushes[0].subject)

		require.Len(t, f.mail.sent, 1)
		assert.Equal(t, []string{"marie.dupont@student.uclouvain.be"}, f.mail.sent[0].to)
		assert.Empty(t, f.mail.sent[0].cc)
	})

	t.Run("copies the selected participant lists", func(t *testing.T) {
		f := newNotifierFixture(t)
		f.groups.dto = &supervision.DTO{
			Members: []supervision.MemberDTO{
				{Type: "PROMOTER", Email: "promoter@uclouvain.be"},
				{Type: "CA_MEMBER", Email: "ca@uclouvain.be"},
			},
		}
		f.juries.dto = &jury.DTO{
			Members: []jury.MemberDTO{{Email: "jury@external.org"}},
		}

		err := f.notifier.SendToStudent(context.Background(), f.trajectoryID,
			"Décision", "La décision est disponible.",
			trajectory.Recipients{CCPromoters: true, CCJury: true})
		require.NoError(t, err)

		require.Len(t, f.mail.sent, 1)
		assert.ElementsMatch(t, []string{"promoter@uclouvain.be", "jury@external.org"}, f.mail.sent[0].cc)
	})

	t.Run("missing jury does not block the copy list", func(t *testing.T) {
		f := newNotifierFixture(t)

		err := f.notifier.SendToStudent(context.Background(), f.trajectoryID,
			"Info", "Message.", trajectory.Recipients{CCJury: true})
		require.NoError(t, err)
		require.Len(t, f.mail.sent, 1)
	})

	t.Run("mail failure is swallowed, web row is kept", func(t *testing.T) {
		f := newNotifierFixture(t)
		f.mail.err = errors.New("smtp unreachable")

		err := f.notifier.SendToStudent(context.Background(), f.trajectoryID,
			"Info", "Message.", trajectory.Recipients{})
		require.NoError(t, err)
		assert.Len(t, f.web.pushes, 1)
	})

	t.Run("web store failure fails the command", func(t *testing.T) {
		f := newNotifierFixture(t)
		f.web.err = errors.New("insert failed")

		err := f.notifier.SendToStudent(context.Background(), f.trajectoryID,
			"Info", "Message.", trajectory.Recipients{})
		require.Error(t, err)
	})
}

func TestNotifier_SendSignatureInvitation(t *testing.T) {
	t.Run("external member gets email only", func(t *testing.T) {
		f := newNotifierFixture(t)

		group, err := supervision.NewGroup(f.trajectoryID)
		require.NoError(t, err)
		member, err := group.IdentifyPromoter(valueobject.NewExternalActor(
			"Paul", "Verbeek", "paul.verbeek@kuleuven.be", "KU Leuven", "Leuven", "BE", "NL"), true)
		require.NoError(t, err)
		f.groups.group = group

		err = f.notifier.SendSignatureInvitation(context.Background(), f.trajectoryID, member.ID)
		require.NoError(t, err)

		assert.Empty(t, f.web.pushes)
		require.Len(t, f.mail.sent, 1)
		assert.Equal(t, []string{"paul.verbeek@kuleuven.be"}, f.mail.sent[0].to)
		assert.Contains(t, f.mail.sent[0].body, "L-CDSS24-000042")
	})

	t.Run("internal member gets web notification and email", func(t *testing.T) {
		f := newNotifierFixture(t)

		group, err := supervision.NewGroup(f.trajectoryID)
		require.NoError(t, err)
		promoterID := uuid.New()
		member, err := group.IdentifyPromoter(valueobject.NewInternalActor(
			promoterID, "Anne", "Lefèvre", "anne.lefevre@uclouvain.be"), true)
		require.NoError(t, err)
		f.groups.group = group

		err = f.notifier.SendSignatureInvitation(context.Background(), f.trajectoryID, member.ID)
		require.NoError(t, err)

		require.Len(t, f.web.pushes, 1)
		assert.Equal(t, promoterID, f.web.pushes[0].personID)
		require.Len(t, f.mail.sent, 1)
	})

	t.Run("unknown member is an error", func(t *testing.T) {
		f := newNotifierFixture(t)
		group, err := supervision.NewGroup(f.trajectoryID)
		require.NoError(t, err)
		f.groups.group = group

		err = f.notifier.SendSignatureInvitation(context.Background(), f.trajectoryID, uuid.New())
		require.Error(t, err)
	})
}

func TestNotifier_NotifySubmission(t *testing.T) {
	f := newNotifierFixture(t)

	group, err := supervision.NewGroup(f.trajectoryID)
	require.NoError(t, err)
	_, err = group.IdentifyPromoter(valueobject.NewExternalActor(
		"Paul", "Verbeek", "paul.verbeek@kuleuven.be", "KU Leuven", "Leuven", "BE", "NL"), true)
	require.NoError(t, err)
	_, err = group.IdentifyCAMember(valueobject.NewExternalActor(
		"Jan", "Peeters", "jan.peeters@ugent.be", "UGent", "Gent", "BE", "NL"), true)
	require.NoError(t, err)
	f.groups.group = group

	err = f.notifier.NotifySubmission(context.Background(), f.trajectoryID)
	require.NoError(t, err)

	// Only the promoter is notified, not the CA member
	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, []string{"paul.verbeek@kuleuven.be"}, f.mail.sent[0].to)
}

func TestNotifier_StudentMessages(t *testing.T) {
	t.Run("activity decisions reach the student", func(t *testing.T) {
		f := newNotifierFixture(t)

		require.NoError(t, f.notifier.NotifyActivitiesApproved(context.Background(), f.trajectoryID, 3))
		require.NoError(t, f.notifier.NotifyActivityRefused(context.Background(), f.trajectoryID, "hors programme"))

		require.Len(t, f.mail.sent, 2)
		assert.Contains(t, f.mail.sent[0].body, "3 activité(s)")
		assert.Contains(t, f.mail.sent[1].body, "hors programme")
	})

	t.Run("unknown trajectory is an error", func(t *testing.T) {
		f := newNotifierFixture(t)

		err := f.notifier.NotifySuccess(context.Background(), uuid.New(), "s", "m")
		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}
