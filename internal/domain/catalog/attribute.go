package catalog

import (
	"strings"
	"unicode"

	"github.com/chicpic/backend/internal/domain/shared"
)

// Attribute is a named product option axis beyond color and size,
// such as Length or Fit. Attribute names are unique case-insensitively.
type Attribute struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(30);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Attribute) TableName() string {
	return "attributes"
}

// NewAttribute creates a new attribute with a capitalized name
func NewAttribute(name string) (*Attribute, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Attribute name cannot be empty")
	}
	if len(name) > 30 {
		return nil, shared.NewDomainError("INVALID_NAME", "Attribute name cannot exceed 30 characters")
	}

	return &Attribute{
		BaseEntity: shared.NewBaseEntity(),
		Name:       capitalize(name),
	}, nil
}

// capitalize upper-cases the first rune and lower-cases the rest
func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
