package training

import (
	"time"

	"github.com/google/uuid"
	"github.com/osis/backend/internal/domain/shared"
)

// SessionEnrolment is one assessment-session enrolment of an accepted
// UCL course; enrolments are ordered, newest last
type SessionEnrolment struct {
	ID         uuid.UUID
	ActivityID uuid.UUID
	Session    Session
	Year       int
	Late       bool
	Status     EnrolmentStatus
	Mark       string
	CreatedAt  time.Time
}

// Enrol appends a session enrolment to an accepted UCL course
func (a *Activity) Enrol(session Session, year int, late bool) (*SessionEnrolment, error) {
	if a.Category != CategoryUCLCourse {
		return nil, shared.NewDomainError("NOT_A_COURSE", "Session enrolments only apply to UCL courses")
	}
	if a.Status != ActivityAccepted {
		return nil, shared.NewDomainError("COURSE_NOT_ACCEPTED", "Only an accepted course can hold enrolments")
	}
	if !session.IsValid() {
		return nil, shared.NewDomainError("INVALID_SESSION", "Unknown assessment session")
	}
	e := SessionEnrolment{
		ID:         uuid.New(),
		ActivityID: a.ID,
		Session:    session,
		Year:       year,
		Late:       late,
		Status:     EnrolmentPending,
		CreatedAt:  time.Now(),
	}
	a.Enrolments = append(a.Enrolments, e)
	a.UpdatedAt = time.Now()
	return &a.Enrolments[len(a.Enrolments)-1], nil
}

// LatestEnrolment returns the most recent session enrolment, or nil
func (a *Activity) LatestEnrolment() *SessionEnrolment {
	if len(a.Enrolments) == 0 {
		return nil
	}
	return &a.Enrolments[len(a.Enrolments)-1]
}

// CorrectMark edits a corrected mark. The correction must target the
// latest session; older sessions are frozen.
func (a *Activity) CorrectMark(enrolmentID uuid.UUID, mark string) error {
	latest := a.LatestEnrolment()
	if latest == nil {
		return shared.ErrNotFound
	}
	if latest.ID != enrolmentID {
		return shared.ErrSessionMismatch
	}
	latest.Mark = mark
	a.EncodeMark(mark)
	return nil
}

// SetEnrolmentStatus updates the state of one enrolment
func (a *Activity) SetEnrolmentStatus(enrolmentID uuid.UUID, status EnrolmentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_ENROLMENT_STATUS", "Unknown enrolment status")
	}
	for i := range a.Enrolments {
		if a.Enrolments[i].ID == enrolmentID {
			a.Enrolments[i].Status = status
			a.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}
