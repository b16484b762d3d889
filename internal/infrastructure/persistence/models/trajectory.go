package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/osis/backend/internal/domain/shared/valueobject"
	"github.com/osis/backend/internal/domain/trajectory"
)

// refsToArray flattens opaque document references into a text array column
func refsToArray(refs valueobject.DocumentRefs) pq.StringArray {
	return pq.StringArray(refs.Strings())
}

// refsFromArray rebuilds document references from a text array column
func refsFromArray(arr pq.StringArray) valueobject.DocumentRefs {
	return valueobject.DocumentRefsFromStrings([]string(arr))
}

// TrajectoryModel is the GORM model for the trajectory aggregate. The
// project, cotutelle, funding and previous-experience value objects are
// flattened into prefixed columns.
type TrajectoryModel struct {
	AggregateModel
	Reference       int       `gorm:"not null;index"`
	Status          string    `gorm:"not null;index"`
	StudentID       uuid.UUID `gorm:"type:uuid;not null;index"`
	TrainingAcronym string    `gorm:"not null"`
	TrainingYear    int       `gorm:"not null"`
	EntityAcronym   string    `gorm:"not null"`
	CampusName      string

	ProximityCommission string
	Justification       string

	// Project
	ProjectTitle                 string
	ProjectAbstract              string `gorm:"type:text"`
	ThesisLanguage               string
	InstituteID                  *uuid.UUID `gorm:"type:uuid"`
	ProjectLocation              string
	ProjectAlreadyStarted        bool
	ProjectStartInstitute        string
	ProjectStartDate             *time.Time
	ProjectDocuments             pq.StringArray `gorm:"type:text[]"`
	ProjectGantt                 pq.StringArray `gorm:"type:text[]"`
	ProgramProposition           pq.StringArray `gorm:"type:text[]"`
	ComplementaryTrainingProject pq.StringArray `gorm:"type:text[]"`
	RecommendationLetters        pq.StringArray `gorm:"type:text[]"`

	// Cotutelle
	CotutelleMotivation     string
	CotutelleFWBInstitution *bool
	CotutelleInstitutionID  *uuid.UUID `gorm:"type:uuid"`
	CotutelleOtherName      string
	CotutelleOtherAddress   string
	CotutelleOpeningRequest pq.StringArray `gorm:"type:text[]"`
	CotutelleConvention     pq.StringArray `gorm:"type:text[]"`
	CotutelleOtherDocuments pq.StringArray `gorm:"type:text[]"`

	// Funding
	FundingType            string
	WorkContractKind       string
	FundingEFT             *int
	ScholarshipID          *uuid.UUID `gorm:"type:uuid"`
	OtherScholarship       string
	FundingStartDate       *time.Time
	FundingEndDate         *time.Time
	FundingProof           pq.StringArray `gorm:"type:text[]"`
	FundingPlannedDuration *int
	FundingDedicatedTime   *int
	IsFnrsFriaFreshCSC     *bool
	FundingComment         string

	// Previous doctoral experience
	PreviousDoctorateDone   string
	PreviousInstitution     string
	PreviousDomain          string
	PreviousDefenceDate     *time.Time
	PreviousNoDefenceReason string

	// Jury-stage fields
	ProposedThesisTitle   string
	DefenceMethod         string
	DefenceIndicativeDate *time.Time
	DefenceLanguage       string
	JuryComment           string
	AccountingSituation   *bool
	JuryApproval          pq.StringArray `gorm:"type:text[]"`

	SigningLocked bool `gorm:"not null;default:false"`

	AdmissionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	AdmittedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name
func (TrajectoryModel) TableName() string {
	return "trajectories"
}

// ToDomain converts the model to the domain aggregate
func (m *TrajectoryModel) ToDomain() *trajectory.Trajectory {
	t := &trajectory.Trajectory{
		Reference:       m.Reference,
		Status:          trajectory.Status(m.Status),
		StudentID:       m.StudentID,
		TrainingAcronym: m.TrainingAcronym,
		TrainingYear:    m.TrainingYear,
		EntityAcronym:   m.EntityAcronym,
		CampusName:      m.CampusName,

		ProximityCommission: m.ProximityCommission,
		Justification:       m.Justification,

		Project: trajectory.Project{
			Title:                        m.ProjectTitle,
			Abstract:                     m.ProjectAbstract,
			ThesisLanguage:               m.ThesisLanguage,
			InstituteID:                  m.InstituteID,
			Location:                     m.ProjectLocation,
			AlreadyStarted:               m.ProjectAlreadyStarted,
			StartInstitute:               m.ProjectStartInstitute,
			StartDate:                    m.ProjectStartDate,
			Documents:                    refsFromArray(m.ProjectDocuments),
			Gantt:                        refsFromArray(m.ProjectGantt),
			ProgramProposition:           refsFromArray(m.ProgramProposition),
			ComplementaryTrainingProject: refsFromArray(m.ComplementaryTrainingProject),
			RecommendationLetters:        refsFromArray(m.RecommendationLetters),
		},
		Cotutelle: trajectory.Cotutelle{
			Motivation:              m.CotutelleMotivation,
			FWBInstitution:          m.CotutelleFWBInstitution,
			InstitutionID:           m.CotutelleInstitutionID,
			OtherInstitutionName:    m.CotutelleOtherName,
			OtherInstitutionAddress: m.CotutelleOtherAddress,
			OpeningRequest:          refsFromArray(m.CotutelleOpeningRequest),
			Convention:              refsFromArray(m.CotutelleConvention),
			OtherDocuments:          refsFromArray(m.CotutelleOtherDocuments),
		},
		Funding: trajectory.Funding{
			Type:               trajectory.FundingType(m.FundingType),
			WorkContractKind:   m.WorkContractKind,
			EFT:                m.FundingEFT,
			ScholarshipID:      m.ScholarshipID,
			OtherScholarship:   m.OtherScholarship,
			StartDate:          m.FundingStartDate,
			EndDate:            m.FundingEndDate,
			Proof:              refsFromArray(m.FundingProof),
			PlannedDuration:    m.FundingPlannedDuration,
			DedicatedTime:      m.FundingDedicatedTime,
			IsFnrsFriaFreshCSC: m.IsFnrsFriaFreshCSC,
			Comment:            m.FundingComment,
		},
		PreviousExperience: trajectory.PreviousExperience{
			Done:            trajectory.PreviousDoctorate(m.PreviousDoctorateDone),
			Institution:     m.PreviousInstitution,
			Domain:          m.PreviousDomain,
			DefenceDate:     m.PreviousDefenceDate,
			NoDefenceReason: m.PreviousNoDefenceReason,
		},

		ProposedThesisTitle:   m.ProposedThesisTitle,
		DefenceMethod:         m.DefenceMethod,
		DefenceIndicativeDate: m.DefenceIndicativeDate,
		DefenceLanguage:       trajectory.DefenceLanguage(m.DefenceLanguage),
		JuryComment:           m.JuryComment,
		AccountingSituation:   m.AccountingSituation,
		JuryApproval:          refsFromArray(m.JuryApproval),

		SigningLocked: m.SigningLocked,

		AdmissionID: m.AdmissionID,
		AdmittedAt:  m.AdmittedAt,
	}
	m.PopulateAggregateRoot(&t.BaseAggregateRoot)
	return t
}

// FromDomain populates the model from the domain aggregate
func (m *TrajectoryModel) FromDomain(t *trajectory.Trajectory) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Reference = t.Reference
	m.Status = string(t.Status)
	m.StudentID = t.StudentID
	m.TrainingAcronym = t.TrainingAcronym
	m.TrainingYear = t.TrainingYear
	m.EntityAcronym = t.EntityAcronym
	m.CampusName = t.CampusName

	m.ProximityCommission = t.ProximityCommission
	m.Justification = t.Justification

	m.ProjectTitle = t.Project.Title
	m.ProjectAbstract = t.Project.Abstract
	m.ThesisLanguage = t.Project.ThesisLanguage
	m.InstituteID = t.Project.InstituteID
	m.ProjectLocation = t.Project.Location
	m.ProjectAlreadyStarted = t.Project.AlreadyStarted
	m.ProjectStartInstitute = t.Project.StartInstitute
	m.ProjectStartDate = t.Project.StartDate
	m.ProjectDocuments = refsToArray(t.Project.Documents)
	m.ProjectGantt = refsToArray(t.Project.Gantt)
	m.ProgramProposition = refsToArray(t.Project.ProgramProposition)
	m.ComplementaryTrainingProject = refsToArray(t.Project.ComplementaryTrainingProject)
	m.RecommendationLetters = refsToArray(t.Project.RecommendationLetters)

	m.CotutelleMotivation = t.Cotutelle.Motivation
	m.CotutelleFWBInstitution = t.Cotutelle.FWBInstitution
	m.CotutelleInstitutionID = t.Cotutelle.InstitutionID
	m.CotutelleOtherName = t.Cotutelle.OtherInstitutionName
	m.CotutelleOtherAddress = t.Cotutelle.OtherInstitutionAddress
	m.CotutelleOpeningRequest = refsToArray(t.Cotutelle.OpeningRequest)
	m.CotutelleConvention = refsToArray(t.Cotutelle.Convention)
	m.CotutelleOtherDocuments = refsToArray(t.Cotutelle.OtherDocuments)

	m.FundingType = string(t.Funding.Type)
	m.WorkContractKind = t.Funding.WorkContractKind
	m.FundingEFT = t.Funding.EFT
	m.ScholarshipID = t.Funding.ScholarshipID
	m.OtherScholarship = t.Funding.OtherScholarship
	m.FundingStartDate = t.Funding.StartDate
	m.FundingEndDate = t.Funding.EndDate
	m.FundingProof = refsToArray(t.Funding.Proof)
	m.FundingPlannedDuration = t.Funding.PlannedDuration
	m.FundingDedicatedTime = t.Funding.DedicatedTime
	m.IsFnrsFriaFreshCSC = t.Funding.IsFnrsFriaFreshCSC
	m.FundingComment = t.Funding.Comment

	m.PreviousDoctorateDone = string(t.PreviousExperience.Done)
	m.PreviousInstitution = t.PreviousExperience.Institution
	m.PreviousDomain = t.PreviousExperience.Domain
	m.PreviousDefenceDate = t.PreviousExperience.DefenceDate
	m.PreviousNoDefenceReason = t.PreviousExperience.NoDefenceReason

	m.ProposedThesisTitle = t.ProposedThesisTitle
	m.DefenceMethod = t.DefenceMethod
	m.DefenceIndicativeDate = t.DefenceIndicativeDate
	m.DefenceLanguage = string(t.DefenceLanguage)
	m.JuryComment = t.JuryComment
	m.AccountingSituation = t.AccountingSituation
	m.JuryApproval = refsToArray(t.JuryApproval)

	m.SigningLocked = t.SigningLocked

	m.AdmissionID = t.AdmissionID
	m.AdmittedAt = t.AdmittedAt
}
