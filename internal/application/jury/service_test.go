package jury

import (
	"context"
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

type juryStore struct {
	byTrajectory map[uuid.UUID]*jury.Jury
}

func (s *juryStore) FindByTrajectory(_ context.Context, trajectoryID uuid.UUID) (*jury.Jury, error) {
	j, ok := s.byTrajectory[trajectoryID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return j, nil
}

func (s *juryStore) Save(_ context.Context, j *jury.Jury) error {
	s.byTrajectory[j.TrajectoryID] = j
	return nil
}

func (s *juryStore) GetDTO(_ context.Context, _ uuid.UUID) (*jury.DTO, error) {
	return nil, shared.ErrNotFound
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
	byTrajectory map[uuid.UUID]*supervision.Group
}

func (s *groupStore) FindByID(_ context.Context, _ uuid.UUID) (*supervision.Group, error) {
	return nil, shared.ErrNotFound
}

func (s *groupStore) FindByTrajectory(_ context.Context, trajectoryID uuid.UUID) (*supervision.Group, error) {
	g, ok := s.byTrajectory[trajectoryID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return g, nil
}

func (s *groupStore) Save(_ context.Context, g *supervision.Group) error {
	s.byTrajectory[g.TrajectoryID] = g
	return nil
}

func (s *groupStore) GetDTO(_ context.Context, _ uuid.UUID) (*supervision.DTO, error) {
	return nil, shared.ErrNotFound
}

type personStub struct {
	persons map[uuid.UUID]*reference.PersonDTO
}

func (s *personStub) Get(_ context.Context, id uuid.UUID) (*reference.PersonDTO, error) {
	p, ok := s.persons[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

type notifierStub struct {
	invitations int
	removals    int
}

func (n *notifierStub) SendToStudent(context.Context, uuid.UUID, string, string, trajectory.Recipients) error {
	return nil
}
func (n *notifierStub) SendSignatureInvitation(context.Context, uuid.UUID, uuid.UUID) error {
	n.invitations++
	return nil
}
func (n *notifierStub) ResendSignatureInvitation(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}
func (n *notifierStub) NotifyMemberRemoved(context.Context, uuid.UUID, string) error {
	n.removals++
	return nil
}
func (n *notifierStub) NotifySubmission(context.Context, uuid.UUID) error         { return nil }
func (n *notifierStub) NotifyPromoterCompletion(context.Context, uuid.UUID) error { return nil }
func (n *notifierStub) NotifySuccess(context.Context, uuid.UUID, string, string) error {
	return nil
}
func (n *notifierStub) NotifyFailure(context.Context, uuid.UUID, string, string) error {
	return nil
}
func (n *notifierStub) NotifyRetake(context.Context, uuid.UUID, string, string) error  { return nil }
func (n *notifierStub) NotifyNewDeadline(context.Context, uuid.UUID) error             { return nil }
func (n *notifierStub) NotifyActivitiesApproved(context.Context, uuid.UUID, int) error { return nil }
func (n *notifierStub) NotifyActivityRefused(context.Context, uuid.UUID, string) error { return nil }

type historianStub struct {
	entries []trajectory.HistoryEntry
}

func (h *historianStub) Record(_ context.Context, entry trajectory.HistoryEntry) error {
	h.entries = append(h.entries, entry)
	return nil
}

type publisherStub struct {
	events []shared.DomainEvent
}

func (p *publisherStub) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type fixture struct {
	svc       *Service
	juries    *juryStore
	trajs     *trajectoryStore
	groups    *groupStore
	persons   *personStub
	notifier  *notifierStub
	historian *historianStub
	publisher *publisherStub
	traj      *trajectory.Trajectory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		juries:    &juryStore{byTrajectory: make(map[uuid.UUID]*jury.Jury)},
		trajs:     &trajectoryStore{byID: make(map[uuid.UUID]*trajectory.Trajectory)},
		groups:    &groupStore{byTrajectory: make(map[uuid.UUID]*supervision.Group)},
		persons:   &personStub{persons: make(map[uuid.UUID]*reference.PersonDTO)},
		notifier:  &notifierStub{},
		historian: &historianStub{},
		publisher: &publisherStub{},
	}
	f.svc = NewService(f.juries, f.trajs, f.groups, f.persons, f.notifier, f.historian, f.publisher, zap.NewNop())

	traj, err := trajectory.NewTrajectory(uuid.New(), uuid.New(), 123456, "FOO3DP", 2024, "CDSS", "Mons", time.Now())
	require.NoError(t, err)
	traj.ClearDomainEvents()
	f.traj = traj
	require.NoError(t, f.trajs.Save(context.Background(), traj))
	return f
}

// pastConfirmation walks the trajectory to the point where the jury can
// be submitted
func (f *fixture) pastConfirmation(t *testing.T) {
	t.Helper()
	require.NoError(t, f.traj.TransitionTo(trajectory.StatusConfirmationSubmitted))
	require.NoError(t, f.traj.TransitionTo(trajectory.StatusConfirmationSucceeded))
	f.traj.ClearDomainEvents()
}

func external(lastName, email string) MemberRequest {
	return MemberRequest{
		Role:      string(jury.RoleMember),
		FirstName: "Jeanne",
		LastName:  lastName,
		Email:     email,
		Institute: "ULB",
		Country:   "BE",
	}
}

func TestAddMember(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the jury on the first member", func(t *testing.T) {
		f := newFixture(t)
		member, err := f.svc.AddMember(ctx, f.traj.ID, external("Durand", "durand@example.org"))
		require.NoError(t, err)
		assert.Equal(t, jury.RoleMember, member.Role)
		assert.Equal(t, "Jeanne Durand", member.Actor.FullName())

		stored, err := f.juries.FindByTrajectory(ctx, f.traj.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Members, 1)
		require.Len(t, f.historian.entries, 1)
		assert.Contains(t, f.historian.entries[0].MessageEN, "joined the jury")
	})

	t.Run("resolves an internal person from the registry", func(t *testing.T) {
		f := newFixture(t)
		personID := uuid.New()
		f.persons.persons[personID] = &reference.PersonDTO{
			ID:        personID,
			FirstName: "Marie",
			LastName:  "Curie",
			Email:     "marie@uclouvain.be",
		}

		member, err := f.svc.AddMember(ctx, f.traj.ID, MemberRequest{
			Role:     string(jury.RoleSecretary),
			PersonID: &personID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Marie Curie", member.Actor.FullName())
		assert.False(t, member.Actor.IsExternal())
	})

	t.Run("reuses a promoter identity from the supervision group", func(t *testing.T) {
		f := newFixture(t)
		group, err := supervision.NewGroup(f.traj.ID)
		require.NoError(t, err)
		actor := valueobject.NewExternalActor("Pierre", "Rahir", "rahir@example.org", "ULB", "Bruxelles", "BE", "FR")
		promoter, err := group.IdentifyPromoter(actor, true)
		require.NoError(t, err)
		require.NoError(t, f.groups.Save(ctx, group))

		member, err := f.svc.AddMember(ctx, f.traj.ID, MemberRequest{
			Role:       string(jury.RolePresident),
			PromoterID: &promoter.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Pierre Rahir", member.Actor.FullName())
		assert.Equal(t, &promoter.ID, member.PromoterID)
	})

	t.Run("requires an identity for an external member", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.AddMember(ctx, f.traj.ID, MemberRequest{
			Role:      string(jury.RoleMember),
			FirstName: "Jeanne",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXTERNAL_IDENTITY_REQUIRED", domainErr.Code)
	})
}

func TestMemberLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("removes a member before submission and notifies", func(t *testing.T) {
		f := newFixture(t)
		member, err := f.svc.AddMember(ctx, f.traj.ID, external("Durand", "durand@example.org"))
		require.NoError(t, err)

		require.NoError(t, f.svc.RemoveMember(ctx, f.traj.ID, member.ID))
		stored, err := f.juries.FindByTrajectory(ctx, f.traj.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.Members)
		assert.Equal(t, 1, f.notifier.removals)
	})

	t.Run("refuses removal once the jury stage was reached", func(t *testing.T) {
		f := newFixture(t)
		member, err := f.svc.AddMember(ctx, f.traj.ID, external("Durand", "durand@example.org"))
		require.NoError(t, err)

		f.pastConfirmation(t)
		require.NoError(t, f.svc.Submit(ctx, f.traj.ID))

		err = f.svc.RemoveMember(ctx, f.traj.ID, member.ID)
		require.Error(t, err)
	})

	t.Run("rebalances roles after submission", func(t *testing.T) {
		f := newFixture(t)
		member, err := f.svc.AddMember(ctx, f.traj.ID, external("Durand", "durand@example.org"))
		require.NoError(t, err)

		f.pastConfirmation(t)
		require.NoError(t, f.svc.Submit(ctx, f.traj.ID))
		require.NoError(t, f.svc.ChangeRole(ctx, f.traj.ID, member.ID, string(jury.RolePresident)))

		stored, err := f.juries.FindByTrajectory(ctx, f.traj.ID)
		require.NoError(t, err)
		assert.Equal(t, jury.RolePresident, stored.Member(member.ID).Role)
	})
}

func TestApprovalChain(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) *fixture {
		f := newFixture(t)
		_, err := f.svc.AddMember(ctx, f.traj.ID, external("Durand", "durand@example.org"))
		require.NoError(t, err)
		f.pastConfirmation(t)
		return f
	}

	t.Run("refuses to submit an empty jury", func(t *testing.T) {
		f := newFixture(t)
		j, err := jury.NewJury(f.traj.ID)
		require.NoError(t, err)
		require.NoError(t, f.juries.Save(ctx, j))
		f.pastConfirmation(t)

		err = f.svc.Submit(ctx, f.traj.ID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "JURY_EMPTY", domainErr.Code)
	})

	t.Run("walks the full approval chain", func(t *testing.T) {
		f := seed(t)
		require.NoError(t, f.svc.Submit(ctx, f.traj.ID))
		assert.Equal(t, trajectory.StatusJurySubmitted, f.traj.Status)

		require.NoError(t, f.svc.ApproveByCA(ctx, f.traj.ID))
		require.NoError(t, f.svc.ApproveByCDD(ctx, f.traj.ID))
		require.NoError(t, f.svc.ApproveByADRE(ctx, f.traj.ID))
		assert.Equal(t, trajectory.StatusJuryADREApproved, f.traj.Status)
		assert.NotEmpty(t, f.publisher.events)
	})

	t.Run("allows resubmission after a CDD refusal", func(t *testing.T) {
		f := seed(t)
		require.NoError(t, f.svc.Submit(ctx, f.traj.ID))
		require.NoError(t, f.svc.ApproveByCA(ctx, f.traj.ID))
		require.NoError(t, f.svc.RefuseByCDD(ctx, f.traj.ID))
		assert.Equal(t, trajectory.StatusJuryCDDRefused, f.traj.Status)

		require.NoError(t, f.svc.Resubmit(ctx, f.traj.ID))
		assert.Equal(t, trajectory.StatusJurySubmitted, f.traj.Status)
	})

	t.Run("rejects an out-of-order approval", func(t *testing.T) {
		f := seed(t)
		require.NoError(t, f.svc.Submit(ctx, f.traj.ID))
		err := f.svc.ApproveByADRE(ctx, f.traj.ID)
		require.Error(t, err)
	})
}

func TestSignatures(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*fixture, *jury.Member, *jury.Member) {
		f := newFixture(t)
		first, err := f.svc.AddMember(ctx, f.traj.ID, external("Durand", "durand@example.org"))
		require.NoError(t, err)
		second, err := f.svc.AddMember(ctx, f.traj.ID, external("Lejeune", "lejeune@example.org"))
		require.NoError(t, err)
		return f, first, second
	}

	t.Run("invites every member exactly once", func(t *testing.T) {
		f, _, _ := seed(t)
		require.NoError(t, f.svc.RequestSignatures(ctx, f.traj.ID))
		assert.Equal(t, 2, f.notifier.invitations)

		// Already-invited members are not re-invited
		require.NoError(t, f.svc.RequestSignatures(ctx, f.traj.ID))
		assert.Equal(t, 2, f.notifier.invitations)
	})

	t.Run("settles approvals and refusals per member", func(t *testing.T) {
		f, first, second := seed(t)
		require.NoError(t, f.svc.RequestSignatures(ctx, f.traj.ID))

		require.NoError(t, f.svc.Approve(ctx, f.traj.ID, first.ID, "ok", ""))
		require.NoError(t, f.svc.Refuse(ctx, f.traj.ID, second.ID, "incomplet", "", ""))

		stored, err := f.juries.FindByTrajectory(ctx, f.traj.ID)
		require.NoError(t, err)
		assert.Equal(t, valueobject.SignatureApproved, stored.Member(first.ID).Signature.State)
		assert.Equal(t, valueobject.SignatureDeclined, stored.Member(second.ID).Signature.State)
		assert.False(t, stored.AllApproved())
	})

	t.Run("accepts an uploaded approval", func(t *testing.T) {
		f, first, second := seed(t)
		require.NoError(t, f.svc.RequestSignatures(ctx, f.traj.ID))

		require.NoError(t, f.svc.ApproveByPDF(ctx, f.traj.ID, first.ID, []string{uuid.New().String()}))
		require.NoError(t, f.svc.Approve(ctx, f.traj.ID, second.ID, "", ""))

		stored, err := f.juries.FindByTrajectory(ctx, f.traj.ID)
		require.NoError(t, err)
		assert.True(t, stored.AllApproved())
	})

	t.Run("the first round submits the jury", func(t *testing.T) {
		f, _, _ := seed(t)
		f.pastConfirmation(t)

		require.NoError(t, f.svc.RequestSignatures(ctx, f.traj.ID))
		assert.Equal(t, trajectory.StatusJurySubmitted, f.traj.Status)

		// a later reminder round leaves the status alone
		require.NoError(t, f.svc.RequestSignatures(ctx, f.traj.ID))
		assert.Equal(t, trajectory.StatusJurySubmitted, f.traj.Status)
	})

	t.Run("a unanimous round records the committee approval", func(t *testing.T) {
		f, first, second := seed(t)
		f.pastConfirmation(t)
		require.NoError(t, f.svc.RequestSignatures(ctx, f.traj.ID))

		require.NoError(t, f.svc.Approve(ctx, f.traj.ID, first.ID, "ok", ""))
		assert.Equal(t, trajectory.StatusJurySubmitted, f.traj.Status)

		require.NoError(t, f.svc.Approve(ctx, f.traj.ID, second.ID, "ok", ""))
		assert.Equal(t, trajectory.StatusJuryCAApproved, f.traj.Status)
	})
}

func TestModifyDefence(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the jury-stage thesis fields", func(t *testing.T) {
		f := newFixture(t)
		f.pastConfirmation(t)
		date := time.Now().AddDate(0, 6, 0)
		err := f.svc.ModifyDefence(ctx, f.traj.ID, DefenceRequest{
			Title:           "Une thèse",
			IndicativeDate:  &date,
			ThesisLanguage:  "FR",
			DefenceLanguage: string(trajectory.DefenceLanguageFrench),
		})
		require.NoError(t, err)
		assert.Equal(t, "Une thèse", f.traj.ProposedThesisTitle)
	})

	t.Run("refuses the change before the confirmation succeeded", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.ModifyDefence(ctx, f.traj.ID, DefenceRequest{Title: "Une thèse"})
		require.ErrorIs(t, err, shared.ErrInvalidTransition)
	})

	t.Run("fails for an unknown trajectory", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.ModifyDefence(ctx, uuid.New(), DefenceRequest{Title: "Une thèse"})
		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}
