package catalog

import (
	"context"
)

// AttributeRepository defines the persistence interface for attributes
type AttributeRepository interface {
	// FindByName finds an attribute by name, case-insensitively
	FindByName(ctx context.Context, name string) (*Attribute, error)

	// Save creates or updates an attribute
	Save(ctx context.Context, attribute *Attribute) error
}
