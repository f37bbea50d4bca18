package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ShopRepository defines the persistence interface for shops
type ShopRepository interface {
	// FindByID finds a shop by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)

	// FindByName finds a shop by name, case-insensitively
	FindByName(ctx context.Context, name string) (*Shop, error)

	// Save creates or updates a shop
	Save(ctx context.Context, shop *Shop) error
}
