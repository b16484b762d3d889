package trajectory

import (
	"time"

	"github.com/google/uuid"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
)

// Project is the research project value object carried by a trajectory
type Project struct {
	Title          string
	Abstract       string
	ThesisLanguage string
	InstituteID    *uuid.UUID
	Location       string
	AlreadyStarted bool
	StartInstitute string
	StartDate      *time.Time

	Documents                    valueobject.DocumentRefs
	Gantt                        valueobject.DocumentRefs
	ProgramProposition           valueobject.DocumentRefs
	ComplementaryTrainingProject valueobject.DocumentRefs
	RecommendationLetters        valueobject.DocumentRefs
}

// Funding is the funding value object carried by a trajectory
type Funding struct {
	Type               FundingType
	WorkContractKind   string
	EFT                *int // percentage of a full-time equivalent
	ScholarshipID      *uuid.UUID
	OtherScholarship   string
	StartDate          *time.Time
	EndDate            *time.Time
	Proof              valueobject.DocumentRefs
	PlannedDuration    *int // months
	DedicatedTime      *int // percentage
	IsFnrsFriaFreshCSC *bool
	Comment            string
}

// Validate enforces the funding field rules
func (f Funding) Validate() error {
	if f.Type != "" && !f.Type.IsValid() {
		return shared.NewDomainError("INVALID_FUNDING_TYPE", "Unknown funding type")
	}
	if f.Type == FundingWorkContract && f.WorkContractKind == "" {
		return shared.NewDomainError("WORK_CONTRACT_KIND_REQUIRED", "Work contract kind is required for a work contract funding")
	}
	if f.Type == FundingSearchScholarship && f.ScholarshipID == nil && f.OtherScholarship == "" {
		return shared.NewDomainError("SCHOLARSHIP_REQUIRED", "A scholarship or a free-text scholarship name is required")
	}
	if f.EFT != nil && (*f.EFT < 0 || *f.EFT > 100) {
		return shared.NewDomainError("INVALID_EFT", "EFT must lie between 0 and 100")
	}
	if f.DedicatedTime != nil && (*f.DedicatedTime < 0 || *f.DedicatedTime > 100) {
		return shared.NewDomainError("INVALID_DEDICATED_TIME", "Dedicated time must lie between 0 and 100")
	}
	if f.PlannedDuration != nil && (*f.PlannedDuration < 0 || *f.PlannedDuration > 200) {
		return shared.NewDomainError("INVALID_PLANNED_DURATION", "Planned duration must lie between 0 and 200 months")
	}
	return nil
}

// Cotutelle is the co-supervision arrangement with a foreign institution.
// The partner is either an institution identity or a free-text name+address
// pair, never both.
type Cotutelle struct {
	Motivation              string
	FWBInstitution          *bool
	InstitutionID           *uuid.UUID
	OtherInstitutionName    string
	OtherInstitutionAddress string

	OpeningRequest valueobject.DocumentRefs
	Convention     valueobject.DocumentRefs
	OtherDocuments valueobject.DocumentRefs
}

// Intended reports whether a cotutelle is actually wanted
func (c Cotutelle) Intended() bool {
	return c.Motivation != ""
}

// Validate enforces the cotutelle field rules
func (c Cotutelle) Validate() error {
	if !c.Intended() {
		return nil
	}
	if c.FWBInstitution == nil {
		return shared.NewDomainError("FWB_INSTITUTION_REQUIRED", "FWB institution flag is required for a cotutelle")
	}
	hasID := c.InstitutionID != nil
	hasOther := c.OtherInstitutionName != "" || c.OtherInstitutionAddress != ""
	if hasID && hasOther {
		return shared.NewDomainError("COTUTELLE_INSTITUTION_AMBIGUOUS", "Either an institution or a free-text institution must be set, not both")
	}
	if !hasID && !hasOther {
		return shared.NewDomainError("COTUTELLE_INSTITUTION_REQUIRED", "A partner institution is required for a cotutelle")
	}
	if hasOther && (c.OtherInstitutionName == "" || c.OtherInstitutionAddress == "") {
		return shared.NewDomainError("COTUTELLE_INSTITUTION_INCOMPLETE", "Free-text institution requires both name and address")
	}
	return nil
}

// PreviousExperience describes a doctorate already attempted elsewhere
type PreviousExperience struct {
	Done            PreviousDoctorate
	Institution     string
	Domain          string
	DefenceDate     *time.Time
	NoDefenceReason string
}
