package trajectory

import (
	"fmt"
	"strings"
)

// campusPrefixes maps enrolment-campus names to the reference level prefix.
// Unlisted campuses fall back to the Louvain-la-Neuve prefix.
var campusPrefixes = map[string]string{
	"Mons":             "M",
	"Bruxelles Woluwe": "B",
	"Charleroi":        "C",
	"Tournai":          "T",
	"Namur":            "N",
}

const defaultCampusPrefix = "L"

// FormatReference renders the externally visible trajectory reference as
// <level_prefix>-<entity_acronym><two_digit_year>-<numeric_reference>.
// The numeric part is allocated by the admission; the doctoral core never
// mints new ones.
func FormatReference(campusName, entityAcronym string, year, reference int) string {
	prefix := defaultCampusPrefix
	for campus, p := range campusPrefixes {
		if strings.EqualFold(campus, campusName) {
			prefix = p
			break
		}
	}
	return fmt.Sprintf("%s-%s%02d-%06d", prefix, strings.ToUpper(entityAcronym), year%100, reference)
}
