package catalog

import (
	"strings"

	"github.com/chicpic/backend/internal/domain/shared"
)

// Gender identifies the target audience of a category or product.
// Stored as a single character for compactness.
type Gender string

const (
	GenderWomen Gender = "W"
	GenderMen   Gender = "M"
)

// ParseGender resolves a gender from its stored value or display name,
// case-insensitively.
func ParseGender(value string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "w", "women":
		return GenderWomen, nil
	case "m", "men":
		return GenderMen, nil
	default:
		return "", shared.NewDomainError("INVALID_GENDER", "Gender must be Women or Men")
	}
}

// String returns the display name of the gender
func (g Gender) String() string {
	switch g {
	case GenderWomen:
		return "Women"
	case GenderMen:
		return "Men"
	default:
		return string(g)
	}
}

// IsValid reports whether the gender holds a known value
func (g Gender) IsValid() bool {
	return g == GenderWomen || g == GenderMen
}
