package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/osis/backend/internal/domain/reference"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/infrastructure/persistence/models"
)

// The translators below resolve identities from the shared campus tables.
// Each one maps a missing row to shared.ErrNotFound so the application
// layer can surface a uniform error.

// GormPersonTranslator implements reference.PersonTranslator
type GormPersonTranslator struct {
	db *gorm.DB
}

// NewGormPersonTranslator creates a new GormPersonTranslator
func NewGormPersonTranslator(db *gorm.DB) *GormPersonTranslator {
	return &GormPersonTranslator{db: db}
}

// Get resolves a person by ID
func (t *GormPersonTranslator) Get(ctx context.Context, id uuid.UUID) (*reference.PersonDTO, error) {
	var model models.PersonModel
	if err := t.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDTO(), nil
}

// GormScholarshipTranslator implements reference.ScholarshipTranslator
type GormScholarshipTranslator struct {
	db *gorm.DB
}

// NewGormScholarshipTranslator creates a new GormScholarshipTranslator
func NewGormScholarshipTranslator(db *gorm.DB) *GormScholarshipTranslator {
	return &GormScholarshipTranslator{db: db}
}

// Get resolves a scholarship by ID
func (t *GormScholarshipTranslator) Get(ctx context.Context, id uuid.UUID) (*reference.ScholarshipDTO, error) {
	var model models.ScholarshipModel
	if err := t.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDTO(), nil
}

// GormInstituteTranslator implements reference.InstituteTranslator
type GormInstituteTranslator struct {
	db *gorm.DB
}

// NewGormInstituteTranslator creates a new GormInstituteTranslator
func NewGormInstituteTranslator(db *gorm.DB) *GormInstituteTranslator {
	return &GormInstituteTranslator{db: db}
}

// Get resolves a research institute by ID
func (t *GormInstituteTranslator) Get(ctx context.Context, id uuid.UUID) (*reference.InstituteDTO, error) {
	var model models.InstituteModel
	if err := t.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDTO(), nil
}

// GormLanguageTranslator implements reference.LanguageTranslator
type GormLanguageTranslator struct {
	db *gorm.DB
}

// NewGormLanguageTranslator creates a new GormLanguageTranslator
func NewGormLanguageTranslator(db *gorm.DB) *GormLanguageTranslator {
	return &GormLanguageTranslator{db: db}
}

// Get resolves a language by ISO code
func (t *GormLanguageTranslator) Get(ctx context.Context, code string) (*reference.LanguageDTO, error) {
	var model models.LanguageModel
	if err := t.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDTO(), nil
}

// GormCountryTranslator implements reference.CountryTranslator
type GormCountryTranslator struct {
	db *gorm.DB
}

// NewGormCountryTranslator creates a new GormCountryTranslator
func NewGormCountryTranslator(db *gorm.DB) *GormCountryTranslator {
	return &GormCountryTranslator{db: db}
}

// Get resolves a country by ISO code
func (t *GormCountryTranslator) Get(ctx context.Context, code string) (*reference.CountryDTO, error) {
	var model models.CountryModel
	if err := t.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDTO(), nil
}

// GormLearningUnitTranslator implements reference.LearningUnitTranslator
type GormLearningUnitTranslator struct {
	db *gorm.DB
}

// NewGormLearningUnitTranslator creates a new GormLearningUnitTranslator
func NewGormLearningUnitTranslator(db *gorm.DB) *GormLearningUnitTranslator {
	return &GormLearningUnitTranslator{db: db}
}

// Get resolves a learning unit for an academic year
func (t *GormLearningUnitTranslator) Get(ctx context.Context, code string, academicYear int) (*reference.LearningUnitDTO, error) {
	var model models.LearningUnitModel
	if err := t.db.WithContext(ctx).
		Where("code = ? AND academic_year = ?", code, academicYear).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDTO(), nil
}

// GormTrainingTranslator implements reference.TrainingTranslator
type GormTrainingTranslator struct {
	db *gorm.DB
}

// NewGormTrainingTranslator creates a new GormTrainingTranslator
func NewGormTrainingTranslator(db *gorm.DB) *GormTrainingTranslator {
	return &GormTrainingTranslator{db: db}
}

// Get resolves a doctoral training programme
func (t *GormTrainingTranslator) Get(ctx context.Context, acronym string, academicYear int) (*reference.TrainingDTO, error) {
	var model models.TrainingModel
	if err := t.db.WithContext(ctx).
		Where("acronym = ? AND academic_year = ?", acronym, academicYear).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDTO(), nil
}

// GormAdmissionTranslator implements reference.AdmissionTranslator
type GormAdmissionTranslator struct {
	db *gorm.DB
}

// NewGormAdmissionTranslator creates a new GormAdmissionTranslator
func NewGormAdmissionTranslator(db *gorm.DB) *GormAdmissionTranslator {
	return &GormAdmissionTranslator{db: db}
}

// Get resolves an approved admission with its supervision panel
func (t *GormAdmissionTranslator) Get(ctx context.Context, id uuid.UUID) (*reference.AdmissionDTO, error) {
	var model models.AdmissionModel
	if err := t.db.WithContext(ctx).
		Preload("Supervisors").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDTO(), nil
}

// TrajectoryForPreAdmission returns the trajectory created by a prior
// pre-admission, or uuid.Nil when none exists
func (t *GormAdmissionTranslator) TrajectoryForPreAdmission(ctx context.Context, preAdmissionID uuid.UUID) (uuid.UUID, error) {
	var trajectoryModel models.TrajectoryModel
	if err := t.db.WithContext(ctx).
		Select("id").
		Where("admission_id = ?", preAdmissionID).
		First(&trajectoryModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, nil
		}
		return uuid.Nil, err
	}
	return trajectoryModel.ID, nil
}
