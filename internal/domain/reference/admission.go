package reference

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Admission type discriminator
const (
	AdmissionTypeAdmission    = "ADMISSION"
	AdmissionTypePreAdmission = "PRE_ADMISSION"
)

// AdmissionSupervisorDTO is one member of the admission supervision panel
type AdmissionSupervisorDTO struct {
	Type                string // PROMOTER or CA_MEMBER
	IsExternal          bool
	PersonID            *uuid.UUID
	FirstName           string
	LastName            string
	Email               string
	Institute           string
	City                string
	Country             string
	Language            string
	IsDoctor            bool
	IsReferencePromoter bool
}

// AdmissionDTO is the snapshot of an approved admission that seeds a
// doctoral trajectory
type AdmissionDTO struct {
	ID                  uuid.UUID
	Type                string // ADMISSION or PRE_ADMISSION
	PreAdmissionID      *uuid.UUID
	Reference           int
	StudentID           uuid.UUID
	TrainingAcronym     string
	TrainingYear        int
	ProximityCommission string
	ApprovedByCDDAt     time.Time

	// Project snapshot
	ProjectTitle                 string
	ProjectAbstract              string
	ThesisLanguage               string
	InstituteID                  *uuid.UUID
	Location                     string
	AlreadyStarted               bool
	StartInstitute               string
	StartDate                    *time.Time
	ProjectDocuments             []string
	GanttDocuments               []string
	ProgramProposition           []string
	ComplementaryTrainingProject []string
	RecommendationLetters        []string

	// Cotutelle snapshot
	CotutelleMotivation     string
	CotutelleFWBInstitution *bool
	CotutelleInstitutionID  *uuid.UUID
	CotutelleOtherName      string
	CotutelleOtherAddress   string
	CotutelleOpeningRequest []string
	CotutelleConvention     []string
	CotutelleOtherDocuments []string

	// Funding snapshot
	FundingType          string
	WorkContractKind     string
	EFT                  *int
	ScholarshipID        *uuid.UUID
	OtherScholarship     string
	ScholarshipStartDate *time.Time
	ScholarshipEndDate   *time.Time
	ScholarshipProof     []string
	PlannedDuration      *int
	DedicatedTime        *int
	IsFnrsFriaFreshCSC   *bool
	FundingComment       string

	// Previous doctoral experience
	PreviousDoctorateDone   string // YES, PARTIAL, NO
	PreviousInstitution     string
	PreviousDomain          string
	PreviousDefenceDate     *time.Time
	PreviousNoDefenceReason string

	Supervisors []AdmissionSupervisorDTO
}

// AdmissionTranslator resolves approved admissions by identity
type AdmissionTranslator interface {
	Get(ctx context.Context, id uuid.UUID) (*AdmissionDTO, error)
	// TrajectoryForPreAdmission returns the trajectory created by a prior
	// pre-admission, or uuid.Nil when none exists
	TrajectoryForPreAdmission(ctx context.Context, preAdmissionID uuid.UUID) (uuid.UUID, error)
}
