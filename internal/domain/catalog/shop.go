package catalog

import (
	"strings"

	"github.com/chicpic/backend/internal/domain/shared"
)

// Shop represents a retail source whose catalog is ingested.
// Shops are created on first encounter and never deleted.
type Shop struct {
	shared.BaseEntity
	Name    string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Website string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates a new shop
func NewShop(name, website string) (*Shop, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Shop name cannot be empty")
	}
	if strings.TrimSpace(website) == "" {
		return nil, shared.NewDomainError("INVALID_WEBSITE", "Shop website cannot be empty")
	}
	if !strings.HasSuffix(website, "/") {
		website += "/"
	}

	return &Shop{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Website:    website,
	}, nil
}
