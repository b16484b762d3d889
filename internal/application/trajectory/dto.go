package trajectory

import (
	"time"

	"github.com/google/uuid"
)

// ModifyProjectRequest carries the editable research-project fields
type ModifyProjectRequest struct {
	Title          string     `json:"title"`
	Abstract       string     `json:"abstract"`
	ThesisLanguage string     `json:"thesis_language"`
	InstituteID    *uuid.UUID `json:"institute_id"`
	Location       string     `json:"location"`
	AlreadyStarted bool       `json:"already_started"`
	StartInstitute string     `json:"start_institute"`
	StartDate      *time.Time `json:"start_date"`

	Documents                    []string `json:"documents"`
	Gantt                        []string `json:"gantt"`
	ProgramProposition           []string `json:"program_proposition"`
	ComplementaryTrainingProject []string `json:"complementary_training_project"`
	RecommendationLetters        []string `json:"recommendation_letters"`

	ProximityCommission string `json:"proximity_commission"`
}

// ModifyFundingRequest carries the editable funding fields
type ModifyFundingRequest struct {
	Type               string     `json:"type"`
	WorkContractKind   string     `json:"work_contract_kind"`
	EFT                *int       `json:"eft"`
	ScholarshipID      *uuid.UUID `json:"scholarship_id"`
	OtherScholarship   string     `json:"other_scholarship"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	Proof              []string   `json:"proof"`
	PlannedDuration    *int       `json:"planned_duration"`
	DedicatedTime      *int       `json:"dedicated_time"`
	IsFnrsFriaFreshCSC *bool      `json:"is_fnrs_fria_fresh_csc"`
	Comment            string     `json:"comment"`
}

// ModifyCotutelleRequest carries the editable cotutelle fields
type ModifyCotutelleRequest struct {
	Motivation              string     `json:"motivation"`
	FWBInstitution          *bool      `json:"fwb_institution"`
	InstitutionID           *uuid.UUID `json:"institution_id"`
	OtherInstitutionName    string     `json:"other_institution_name"`
	OtherInstitutionAddress string     `json:"other_institution_address"`
	OpeningRequest          []string   `json:"opening_request"`
	Convention              []string   `json:"convention"`
	OtherDocuments          []string   `json:"other_documents"`
}

// CotutelleDTO is the read projection of the cotutelle block
type CotutelleDTO struct {
	Intended                bool       `json:"intended"`
	Motivation              string     `json:"motivation"`
	FWBInstitution          *bool      `json:"fwb_institution"`
	InstitutionID           *uuid.UUID `json:"institution_id"`
	OtherInstitutionName    string     `json:"other_institution_name"`
	OtherInstitutionAddress string     `json:"other_institution_address"`
	OpeningRequest          []string   `json:"opening_request"`
	Convention              []string   `json:"convention"`
	OtherDocuments          []string   `json:"other_documents"`
}

// ModifyDefenceRequest carries the jury-preparation fields
type ModifyDefenceRequest struct {
	ProposedThesisTitle   string     `json:"proposed_thesis_title"`
	DefenceMethod         string     `json:"defence_method"`
	DefenceIndicativeDate *time.Time `json:"defence_indicative_date"`
	ThesisLanguage        string     `json:"thesis_language"`
	DefenceLanguage       string     `json:"defence_language"`
	Comment               string     `json:"comment"`
	AccountingSituation   *bool      `json:"accounting_situation"`
}
