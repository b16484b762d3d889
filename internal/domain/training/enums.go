package training

// Context situates an activity within a training programme
type Context string

const (
	ContextDoctoralTraining      Context = "DOCTORAL_TRAINING"
	ContextComplementaryTraining Context = "COMPLEMENTARY_TRAINING"
	ContextEnrollmentCourse      Context = "ENROLLMENT_COURSE"
)

// IsValid checks if the value is a known Context
func (c Context) IsValid() bool {
	switch c {
	case ContextDoctoralTraining, ContextComplementaryTraining, ContextEnrollmentCourse:
		return true
	}
	return false
}

// Category is the kind of training activity
type Category string

const (
	CategoryConference    Category = "CONFERENCE"
	CategoryCommunication Category = "COMMUNICATION"
	CategoryPublication   Category = "PUBLICATION"
	CategorySeminar       Category = "SEMINAR"
	CategoryResidency     Category = "RESIDENCY"
	CategoryService       Category = "SERVICE"
	CategoryVAE           Category = "VAE"
	CategoryCourse        Category = "COURSE"
	CategoryUCLCourse     Category = "UCL_COURSE"
	CategoryPaper         Category = "PAPER"
)

// IsValid checks if the value is a known Category
func (c Category) IsValid() bool {
	switch c {
	case CategoryConference, CategoryCommunication, CategoryPublication,
		CategorySeminar, CategoryResidency, CategoryService, CategoryVAE,
		CategoryCourse, CategoryUCLCourse, CategoryPaper:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// legalParentPairs lists the valid (parent category, child category)
// combinations; every other activity stands alone
var legalParentPairs = map[Category][]Category{
	CategoryConference: {CategoryCommunication, CategoryPublication},
	CategorySeminar:    {CategoryCommunication},
	CategoryResidency:  {CategoryCommunication},
}

// CanParent reports whether an activity of category c may hold a child of
// category child
func (c Category) CanParent(child Category) bool {
	for _, allowed := range legalParentPairs[c] {
		if allowed == child {
			return true
		}
	}
	return false
}

// ActivityStatus is the review status of an activity
type ActivityStatus string

const (
	ActivityNotSubmitted ActivityStatus = "NOT_SUBMITTED"
	ActivitySubmitted    ActivityStatus = "SUBMITTED"
	ActivityAccepted     ActivityStatus = "ACCEPTED"
	ActivityRefused      ActivityStatus = "REFUSED"
)

// IsValid checks if the value is a known ActivityStatus
func (s ActivityStatus) IsValid() bool {
	switch s {
	case ActivityNotSubmitted, ActivitySubmitted, ActivityAccepted, ActivityRefused:
		return true
	}
	return false
}

// String returns the string representation of ActivityStatus
func (s ActivityStatus) String() string {
	return string(s)
}

// PaperType distinguishes the formal papers; at most one PAPER activity of
// each type exists per trajectory
type PaperType string

const (
	PaperConfirmationExam PaperType = "CONFIRMATION_EXAM"
	PaperPrivateDefence   PaperType = "PRIVATE_DEFENCE"
	PaperPublicDefence    PaperType = "PUBLIC_DEFENCE"
)

// IsValid checks if the value is a known PaperType
func (p PaperType) IsValid() bool {
	switch p {
	case PaperConfirmationExam, PaperPrivateDefence, PaperPublicDefence:
		return true
	}
	return false
}

// CommitteeChoice states whether a selection committee was involved
type CommitteeChoice string

const (
	CommitteeYes CommitteeChoice = "YES"
	CommitteeNo  CommitteeChoice = "NO"
)

// Session is an assessment session of the academic year
type Session string

const (
	SessionJanuary   Session = "JANUARY"
	SessionJune      Session = "JUNE"
	SessionSeptember Session = "SEPTEMBER"
)

// IsValid checks if the value is a known Session
func (s Session) IsValid() bool {
	switch s {
	case SessionJanuary, SessionJune, SessionSeptember:
		return true
	}
	return false
}

// EnrolmentStatus is the state of one session enrolment
type EnrolmentStatus string

const (
	EnrolmentAccepted         EnrolmentStatus = "ACCEPTED"
	EnrolmentUnsubscribedLate EnrolmentStatus = "UNSUBSCRIBED_LATE"
	EnrolmentUnsubscribed     EnrolmentStatus = "UNSUBSCRIBED"
	EnrolmentPending          EnrolmentStatus = "PENDING"
)

// IsValid checks if the value is a known EnrolmentStatus
func (s EnrolmentStatus) IsValid() bool {
	switch s {
	case EnrolmentAccepted, EnrolmentUnsubscribedLate, EnrolmentUnsubscribed, EnrolmentPending:
		return true
	}
	return false
}
