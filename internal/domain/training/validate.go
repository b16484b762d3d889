package training

import (
	"github.com/osis/backend/internal/domain/shared"
)

// validator checks the category-specific required fields of an activity
// before submission and returns one violation per missing field
type validator func(*Activity) []shared.FieldViolation

var validators = map[Category]validator{
	CategoryConference:    validateConference,
	CategoryCommunication: validateCommunication,
	CategoryPublication:   validatePublication,
	CategorySeminar:       validateSeminar,
	CategoryResidency:     validateResidency,
	CategoryService:       validateService,
	CategoryVAE:           validateVAE,
	CategoryCourse:        validateCourse,
	CategoryUCLCourse:     validateUCLCourse,
	CategoryPaper:         validatePaper,
}

// Validate returns the completeness violations of an activity; an empty
// slice means the activity can be submitted
func Validate(a *Activity) []shared.FieldViolation {
	v := validators[a.Category]
	if v == nil {
		return nil
	}
	return v(a)
}

func missing(a *Activity, field, message string) shared.FieldViolation {
	return shared.FieldViolation{
		Ref:     a.ID,
		Field:   field,
		Code:    "REQUIRED",
		Message: message,
	}
}

func validateConference(a *Activity) []shared.FieldViolation {
	var out []shared.FieldViolation
	if a.Title == "" {
		out = append(out, missing(a, "title", "Conference name is required"))
	}
	if a.StartDate == nil {
		out = append(out, missing(a, "start_date", "Start date is required"))
	}
	if a.EndDate == nil {
		out = append(out, missing(a, "end_date", "End date is required"))
	}
	if a.ParticipatingDays == nil && a.HourVolume == "" {
		out = append(out, missing(a, "participating_days", "Participating days or hour volume is required"))
	}
	if a.StartDate != nil && a.EndDate != nil && a.StartDate.After(*a.EndDate) {
		out = append(out, shared.FieldViolation{
			Ref: a.ID, Field: "end_date", Code: "INVALID_RANGE", Message: "End date must not precede the start date",
		})
	}
	return out
}

func validateCommunication(a *Activity) []shared.FieldViolation {
	var out []shared.FieldViolation
	if a.Title == "" {
		out = append(out, missing(a, "title", "Communication title is required"))
	}
	if a.ParentID == nil && a.StartDate == nil {
		out = append(out, missing(a, "start_date", "Communication date is required"))
	}
	if a.Committee == CommitteeYes && a.AcceptationProof.IsEmpty() {
		out = append(out, missing(a, "acceptation_proof", "Acceptation proof is required when a selection committee was involved"))
	}
	return out
}

func validatePublication(a *Activity) []shared.FieldViolation {
	var out []shared.FieldViolation
	if a.Title == "" {
		out = append(out, missing(a, "title", "Publication title is required"))
	}
	if a.Authors == "" {
		out = append(out, missing(a, "authors", "Authors are required"))
	}
	if a.PublicationStatus == "" {
		out = append(out, missing(a, "publication_status", "Publication status is required"))
	}
	return out
}

func validateSeminar(a *Activity) []shared.FieldViolation {
	var out []shared.FieldViolation
	if a.Title == "" {
		out = append(out, missing(a, "title", "Seminar name is required"))
	}
	if a.StartDate == nil {
		out = append(out, missing(a, "start_date", "Start date is required"))
	}
	if a.EndDate == nil {
		out = append(out, missing(a, "end_date", "End date is required"))
	}
	if a.HourVolume == "" {
		out = append(out, missing(a, "hour_volume", "Hour volume is required"))
	}
	return out
}

func validateResidency(a *Activity) []shared.FieldViolation {
	var out []shared.FieldViolation
	if a.Title == "" {
		out = append(out, missing(a, "title", "Residency description is required"))
	}
	if a.StartDate == nil {
		out = append(out, missing(a, "start_date", "Start date is required"))
	}
	if a.EndDate == nil {
		out = append(out, missing(a, "end_date", "End date is required"))
	}
	return out
}

func validateService(a *Activity) []shared.FieldViolation {
	var out []shared.FieldViolation
	if a.Title == "" {
		out = append(out, missing(a, "title", "Service name is required"))
	}
	if a.StartDate == nil {
		out = append(out, missing(a, "start_date", "Start date is required"))
	}
	return out
}

func validateVAE(a *Activity) []shared.FieldViolation {
	var out []shared.FieldViolation
	if a.Title == "" {
		out = append(out, missing(a, "title", "Description is required"))
	}
	if a.Summary.IsEmpty() {
		out = append(out, missing(a, "summary", "A summary document is required"))
	}
	return out
}

func validateCourse(a *Activity) []shared.FieldViolation {
	var out []shared.FieldViolation
	if a.Title == "" {
		out = append(out, missing(a, "title", "Course title is required"))
	}
	if a.OrganizingInstitution == "" {
		out = append(out, missing(a, "organizing_institution", "Organising institution is required"))
	}
	if a.StartDate == nil {
		out = append(out, missing(a, "start_date", "Start date is required"))
	}
	if a.HourVolume == "" {
		out = append(out, missing(a, "hour_volume", "Hour volume is required"))
	}
	return out
}

func validateUCLCourse(a *Activity) []shared.FieldViolation {
	var out []shared.FieldViolation
	if a.LearningUnitCode == "" && a.LearningClassCode == "" {
		out = append(out, missing(a, "learning_unit", "A learning unit or learning class is required"))
	}
	if a.AcademicYear == 0 {
		out = append(out, missing(a, "academic_year", "The academic year is required"))
	}
	return out
}

func validatePaper(a *Activity) []shared.FieldViolation {
	var out []shared.FieldViolation
	if !a.PaperType.IsValid() {
		out = append(out, missing(a, "paper_type", "The paper type is required"))
	}
	return out
}
