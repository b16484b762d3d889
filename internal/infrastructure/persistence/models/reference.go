package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/osis/backend/internal/domain/reference"
)

// The reference tables below are owned by the surrounding campus systems
// (identity registry, course catalogue, admission office) and shared with
// this application. The doctoral core only ever reads them.

// PersonModel mirrors the identity registry's person table
type PersonModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	FirstName string    `gorm:"not null"`
	LastName  string    `gorm:"not null"`
	Email     string    `gorm:"not null;index"`
	Gender    string
	IsDoctor  bool `gorm:"not null;default:false"`
}

// TableName specifies the table name
func (PersonModel) TableName() string {
	return "persons"
}

// ToDTO converts the row to the reference projection
func (m *PersonModel) ToDTO() *reference.PersonDTO {
	return &reference.PersonDTO{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Gender:    m.Gender,
		IsDoctor:  m.IsDoctor,
	}
}

// ScholarshipModel mirrors the research scholarship table
type ScholarshipModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ShortName string    `gorm:"not null"`
	LongName  string    `gorm:"not null"`
}

// TableName specifies the table name
func (ScholarshipModel) TableName() string {
	return "scholarships"
}

// ToDTO converts the row to the reference projection
func (m *ScholarshipModel) ToDTO() *reference.ScholarshipDTO {
	return &reference.ScholarshipDTO{ID: m.ID, ShortName: m.ShortName, LongName: m.LongName}
}

// InstituteModel mirrors the research institute table
type InstituteModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Acronym string    `gorm:"not null"`
	Name    string    `gorm:"not null"`
}

// TableName specifies the table name
func (InstituteModel) TableName() string {
	return "institutes"
}

// ToDTO converts the row to the reference projection
func (m *InstituteModel) ToDTO() *reference.InstituteDTO {
	return &reference.InstituteDTO{ID: m.ID, Acronym: m.Acronym, Name: m.Name}
}

// LanguageModel mirrors the language table
type LanguageModel struct {
	Code   string `gorm:"primary_key;size:8"`
	NameFR string `gorm:"not null"`
	NameEN string `gorm:"not null"`
}

// TableName specifies the table name
func (LanguageModel) TableName() string {
	return "languages"
}

// ToDTO converts the row to the reference projection
func (m *LanguageModel) ToDTO() *reference.LanguageDTO {
	return &reference.LanguageDTO{Code: m.Code, NameFR: m.NameFR, NameEN: m.NameEN}
}

// CountryModel mirrors the country table
type CountryModel struct {
	Code   string `gorm:"primary_key;size:2"`
	NameFR string `gorm:"not null"`
	NameEN string `gorm:"not null"`
}

// TableName specifies the table name
func (CountryModel) TableName() string {
	return "countries"
}

// ToDTO converts the row to the reference projection
func (m *CountryModel) ToDTO() *reference.CountryDTO {
	return &reference.CountryDTO{Code: m.Code, NameFR: m.NameFR, NameEN: m.NameEN}
}

// LearningUnitModel mirrors the course catalogue's learning unit table
type LearningUnitModel struct {
	Code         string  `gorm:"primary_key;size:16"`
	AcademicYear int     `gorm:"primary_key"`
	Title        string  `gorm:"not null"`
	Credits      float64 `gorm:"not null"`
}

// TableName specifies the table name
func (LearningUnitModel) TableName() string {
	return "learning_units"
}

// ToDTO converts the row to the reference projection
func (m *LearningUnitModel) ToDTO() *reference.LearningUnitDTO {
	return &reference.LearningUnitDTO{
		Code:         m.Code,
		AcademicYear: m.AcademicYear,
		Title:        m.Title,
		Credits:      m.Credits,
	}
}

// TrainingModel mirrors the doctoral training programme table
type TrainingModel struct {
	Acronym       string `gorm:"primary_key;size:16"`
	AcademicYear  int    `gorm:"primary_key"`
	Title         string `gorm:"not null"`
	EntityAcronym string `gorm:"not null"`
	CampusName    string
}

// TableName specifies the table name
func (TrainingModel) TableName() string {
	return "doctoral_trainings"
}

// ToDTO converts the row to the reference projection
func (m *TrainingModel) ToDTO() *reference.TrainingDTO {
	return &reference.TrainingDTO{
		Acronym:       m.Acronym,
		AcademicYear:  m.AcademicYear,
		Title:         m.Title,
		EntityAcronym: m.EntityAcronym,
		CampusName:    m.CampusName,
	}
}

// AdmissionModel mirrors the admission office's approved-admission view.
// It carries the full snapshot that seeds a trajectory.
type AdmissionModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key"`
	Type           string     `gorm:"not null"`
	PreAdmissionID *uuid.UUID `gorm:"type:uuid"`
	Reference      int        `gorm:"not null"`
	StudentID      uuid.UUID  `gorm:"type:uuid;not null;index"`

	TrainingAcronym     string `gorm:"not null"`
	TrainingYear        int    `gorm:"not null"`
	ProximityCommission string
	ApprovedByCDDAt     time.Time `gorm:"not null"`

	ProjectTitle                 string
	ProjectAbstract              string `gorm:"type:text"`
	ThesisLanguage               string
	InstituteID                  *uuid.UUID `gorm:"type:uuid"`
	Location                     string
	AlreadyStarted               bool
	StartInstitute               string
	StartDate                    *time.Time
	ProjectDocuments             pq.StringArray `gorm:"type:text[]"`
	GanttDocuments               pq.StringArray `gorm:"type:text[]"`
	ProgramProposition           pq.StringArray `gorm:"type:text[]"`
	ComplementaryTrainingProject pq.StringArray `gorm:"type:text[]"`
	RecommendationLetters        pq.StringArray `gorm:"type:text[]"`

	CotutelleMotivation     string
	CotutelleFWBInstitution *bool
	CotutelleInstitutionID  *uuid.UUID `gorm:"type:uuid"`
	CotutelleOtherName      string
	CotutelleOtherAddress   string
	CotutelleOpeningRequest pq.StringArray `gorm:"type:text[]"`
	CotutelleConvention     pq.StringArray `gorm:"type:text[]"`
	CotutelleOtherDocuments pq.StringArray `gorm:"type:text[]"`

	FundingType          string
	WorkContractKind     string
	EFT                  *int
	ScholarshipID        *uuid.UUID `gorm:"type:uuid"`
	OtherScholarship     string
	ScholarshipStartDate *time.Time
	ScholarshipEndDate   *time.Time
	ScholarshipProof     pq.StringArray `gorm:"type:text[]"`
	PlannedDuration      *int
	DedicatedTime        *int
	IsFnrsFriaFreshCSC   *bool
	FundingComment       string

	PreviousDoctorateDone   string
	PreviousInstitution     string
	PreviousDomain          string
	PreviousDefenceDate     *time.Time
	PreviousNoDefenceReason string

	Supervisors []AdmissionSupervisorModel `gorm:"foreignKey:AdmissionID"`
}

// TableName specifies the table name
func (AdmissionModel) TableName() string {
	return "approved_admissions"
}

// AdmissionSupervisorModel is one member of the admission supervision panel
type AdmissionSupervisorModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	AdmissionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"not null"`
	IsExternal  bool      `gorm:"not null;default:false"`

	PersonID  *uuid.UUID `gorm:"type:uuid"`
	FirstName string
	LastName  string
	Email     string
	Institute string
	City      string
	Country   string
	Language  string

	IsDoctor            bool `gorm:"not null;default:false"`
	IsReferencePromoter bool `gorm:"not null;default:false"`
}

// TableName specifies the table name
func (AdmissionSupervisorModel) TableName() string {
	return "admission_supervisors"
}

// ToDTO converts the row to the reference projection
func (m *AdmissionSupervisorModel) ToDTO() reference.AdmissionSupervisorDTO {
	return reference.AdmissionSupervisorDTO{
		Type:                m.Type,
		IsExternal:          m.IsExternal,
		PersonID:            m.PersonID,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		Email:               m.Email,
		Institute:           m.Institute,
		City:                m.City,
		Country:             m.Country,
		Language:            m.Language,
		IsDoctor:            m.IsDoctor,
		IsReferencePromoter: m.IsReferencePromoter,
	}
}

// ToDTO converts the row to the reference projection
func (m *AdmissionModel) ToDTO() *reference.AdmissionDTO {
	supervisors := make([]reference.AdmissionSupervisorDTO, len(m.Supervisors))
	for i := range m.Supervisors {
		supervisors[i] = m.Supervisors[i].ToDTO()
	}
	return &reference.AdmissionDTO{
		ID:                  m.ID,
		Type:                m.Type,
		PreAdmissionID:      m.PreAdmissionID,
		Reference:           m.Reference,
		StudentID:           m.StudentID,
		TrainingAcronym:     m.TrainingAcronym,
		TrainingYear:        m.TrainingYear,
		ProximityCommission: m.ProximityCommission,
		ApprovedByCDDAt:     m.ApprovedByCDDAt,

		ProjectTitle:                 m.ProjectTitle,
		ProjectAbstract:              m.ProjectAbstract,
		ThesisLanguage:               m.ThesisLanguage,
		InstituteID:                  m.InstituteID,
		Location:                     m.Location,
		AlreadyStarted:               m.AlreadyStarted,
		StartInstitute:               m.StartInstitute,
		StartDate:                    m.StartDate,
		ProjectDocuments:             []string(m.ProjectDocuments),
		GanttDocuments:               []string(m.GanttDocuments),
		ProgramProposition:           []string(m.ProgramProposition),
		ComplementaryTrainingProject: []string(m.ComplementaryTrainingProject),
		RecommendationLetters:        []string(m.RecommendationLetters),

		CotutelleMotivation:     m.CotutelleMotivation,
		CotutelleFWBInstitution: m.CotutelleFWBInstitution,
		CotutelleInstitutionID:  m.CotutelleInstitutionID,
		CotutelleOtherName:      m.CotutelleOtherName,
		CotutelleOtherAddress:   m.CotutelleOtherAddress,
		CotutelleOpeningRequest: []string(m.CotutelleOpeningRequest),
		CotutelleConvention:     []string(m.CotutelleConvention),
		CotutelleOtherDocuments: []string(m.CotutelleOtherDocuments),

		FundingType:          m.FundingType,
		WorkContractKind:     m.WorkContractKind,
		EFT:                  m.EFT,
		ScholarshipID:        m.ScholarshipID,
		OtherScholarship:     m.OtherScholarship,
		ScholarshipStartDate: m.ScholarshipStartDate,
		ScholarshipEndDate:   m.ScholarshipEndDate,
		ScholarshipProof:     []string(m.ScholarshipProof),
		PlannedDuration:      m.PlannedDuration,
		DedicatedTime:        m.DedicatedTime,
		IsFnrsFriaFreshCSC:   m.IsFnrsFriaFreshCSC,
		FundingComment:       m.FundingComment,

		PreviousDoctorateDone:   m.PreviousDoctorateDone,
		PreviousInstitution:     m.PreviousInstitution,
		PreviousDomain:          m.PreviousDomain,
		PreviousDefenceDate:     m.PreviousDefenceDate,
		PreviousNoDefenceReason: m.PreviousNoDefenceReason,

		Supervisors: supervisors,
	}
}
