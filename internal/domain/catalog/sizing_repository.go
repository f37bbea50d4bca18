package catalog

import (
	"context"

	"github.com/google/uuid"
)

// SizingRepository defines the persistence interface for variant sizings
type SizingRepository interface {
	// FindByVariant returns all sizings of a variant
	FindByVariant(ctx context.Context, variantID uuid.UUID) ([]Sizing, error)

	// DeleteByVariant removes every sizing of a variant. Runs clear the
	// old set before writing the recomputed one.
	DeleteByVariant(ctx context.Context, variantID uuid.UUID) error

	// Save creates or updates a sizing
	Save(ctx context.Context, sizing *Sizing) error
}
