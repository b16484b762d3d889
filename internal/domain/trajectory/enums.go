package trajectory

// FundingType represents how the doctorate is funded
type FundingType string

const (
	FundingWorkContract      FundingType = "WORK_CONTRACT"
	FundingSearchScholarship FundingType = "SEARCH_SCHOLARSHIP"
	FundingSelfFunding       FundingType = "SELF_FUNDING"
)

// IsValid checks if the value is a known FundingType
func (t FundingType) IsValid() bool {
	switch t {
	case FundingWorkContract, FundingSearchScholarship, FundingSelfFunding:
		return true
	}
	return false
}

// PreviousDoctorate states whether a doctorate was already attempted
type PreviousDoctorate string

const (
	PreviousDoctorateYes     PreviousDoctorate = "YES"
	PreviousDoctoratePartial PreviousDoctorate = "PARTIAL"
	PreviousDoctorateNo      PreviousDoctorate = "NO"
)

// IsValid checks if the value is a known PreviousDoctorate
func (p PreviousDoctorate) IsValid() bool {
	switch p {
	case PreviousDoctorateYes, PreviousDoctoratePartial, PreviousDoctorateNo:
		return true
	}
	return false
}

// DefenceLanguage represents the language of the defence
type DefenceLanguage string

const (
	DefenceLanguageFrench    DefenceLanguage = "FRENCH"
	DefenceLanguageEnglish   DefenceLanguage = "ENGLISH"
	DefenceLanguageOther     DefenceLanguage = "OTHER"
	DefenceLanguageUndecided DefenceLanguage = "UNDECIDED"
)

// IsValid checks if the value is a known DefenceLanguage
func (l DefenceLanguage) IsValid() bool {
	switch l {
	case DefenceLanguageFrench, DefenceLanguageEnglish, DefenceLanguageOther, DefenceLanguageUndecided:
		return true
	}
	return false
}

// Proximity commissions, keyed on the entity managing the training.
// CDE/CLSM, CDSS and the science sub-domains form three disjoint sets.
var (
	proximityCommissionsCDE  = []string{"ECONOMY", "MANAGEMENT"}
	proximityCommissionsCDSS = []string{
		"ECLI", "GIM", "NRSC", "BCM", "SPSS", "DENT", "DFAR", "MOTR",
	}
	proximityCommissionsSciences = []string{
		"PHYSICS", "CHEMISTRY", "MATHEMATICS", "STATISTICS", "BIOLOGY", "GEOGRAPHY",
	}
)

// ProximityCommissionsFor returns the commissions valid for a training
// entity; entities without commissions get an empty set
func ProximityCommissionsFor(entityAcronym string) []string {
	switch entityAcronym {
	case "CDE", "CLSM":
		return proximityCommissionsCDE
	case "CDSS":
		return proximityCommissionsCDSS
	case "CDSC":
		return proximityCommissionsSciences
	}
	return nil
}

// IsProximityCommissionValid reports whether the commission belongs to the
// set allowed for the training entity
func IsProximityCommissionValid(entityAcronym, commission string) bool {
	for _, c := range ProximityCommissionsFor(entityAcronym) {
		if c == commission {
			return true
		}
	}
	return false
}
