package catalog

import (
	"context"

	"github.com/google/uuid"
)

// VariantRepository defines the persistence interface for variants
type VariantRepository interface {
	// FindByOriginalID finds a variant by the source variant id
	FindByOriginalID(ctx context.Context, originalID int64) (*Variant, error)

	// FindByProduct returns all variants of a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Variant, error)

	// Save creates or updates a variant
	Save(ctx context.Context, variant *Variant) error
}
