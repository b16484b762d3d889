// Package reference holds the read-only ports used to resolve identities
// that live outside the doctoral core: persons, scholarships, institutes,
// languages, countries and learning units. Implementations sit in the
// infrastructure layer; the domain only sees DTOs.
package reference

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PersonDTO is the projection of a person record
type PersonDTO struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Gender    string
	IsDoctor  bool
}

// PersonTranslator resolves persons from the identity store
type PersonTranslator interface {
	Get(ctx context.Context, id uuid.UUID) (*PersonDTO, error)
}

// ScholarshipDTO is the projection of a scholarship record
type ScholarshipDTO struct {
	ID        uuid.UUID
	ShortName string
	LongName  string
}

// ScholarshipTranslator resolves research scholarships
type ScholarshipTranslator interface {
	Get(ctx context.Context, id uuid.UUID) (*ScholarshipDTO, error)
}

// InstituteDTO is the projection of a research institute
type InstituteDTO struct {
	ID      uuid.UUID
	Acronym string
	Name    string
}

// InstituteTranslator resolves research institutes
type InstituteTranslator interface {
	Get(ctx context.Context, id uuid.UUID) (*InstituteDTO, error)
}

// LanguageDTO is the projection of a language record
type LanguageDTO struct {
	Code   string
	NameFR string
	NameEN string
}

// LanguageTranslator resolves languages by ISO code
type LanguageTranslator interface {
	Get(ctx context.Context, code string) (*LanguageDTO, error)
}

// CountryDTO is the projection of a country record
type CountryDTO struct {
	Code   string
	NameFR string
	NameEN string
}

// CountryTranslator resolves countries by ISO code
type CountryTranslator interface {
	Get(ctx context.Context, code string) (*CountryDTO, error)
}

// LearningUnitDTO is the projection of a learning-unit catalogue entry
type LearningUnitDTO struct {
	Code         string
	AcademicYear int
	Title        string
	Credits      float64
}

// LearningUnitTranslator resolves learning units from the catalogue
type LearningUnitTranslator interface {
	Get(ctx context.Context, code string, academicYear int) (*LearningUnitDTO, error)
}

// TrainingDTO is the projection of a doctoral training programme
type TrainingDTO struct {
	Acronym       string
	AcademicYear  int
	Title         string
	EntityAcronym string
	CampusName    string
}

// TrainingTranslator resolves doctoral trainings
type TrainingTranslator interface {
	Get(ctx context.Context, acronym string, academicYear int) (*TrainingDTO, error)
}

// Role names granted to participants of a doctoral trajectory
const (
	RoleStudent         = "STUDENT"
	RolePromoter        = "PROMOTER"
	RoleCommitteeMember = "COMMITTEE_MEMBER"
)

// RoleStore ensures person-scoped role records exist. Role records are
// keyed by person; Ensure is idempotent.
type RoleStore interface {
	Ensure(ctx context.Context, personID uuid.UUID, role string) error
}

// DocumentDuplicator copies document files referenced by an admission into
// trajectory-scoped references. Returns the new references in input order.
type DocumentDuplicator interface {
	Duplicate(ctx context.Context, trajectoryID uuid.UUID, refs []string) ([]string, error)
}

// Clock abstracts time for deadline computation in tests
type Clock interface {
	Now() time.Time
}

// SystemClock is the production clock
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time { return time.Now() }
