package catalog

import (
	"strings"

	"github.com/chicpic/backend/internal/domain/shared"
)

// Category is a canonical catalog category, qualified by gender.
// Categories are reference data seeded by migration; ingestion only
// resolves them, it never creates new ones.
type Category struct {
	shared.BaseEntity
	Title  string `gorm:"type:varchar(40);not null;uniqueIndex:idx_category_title_gender,priority:1"`
	Gender Gender `gorm:"type:varchar(1);not null;uniqueIndex:idx_category_title_gender,priority:2"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new canonical category
func NewCategory(title string, gender Gender) (*Category, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Category title cannot be empty")
	}
	if len(title) > 40 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Category title cannot exceed 40 characters")
	}
	if !gender.IsValid() {
		return nil, shared.NewDomainError("INVALID_GENDER", "Gender must be Women or Men")
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
		Gender:     gender,
	}, nil
}
