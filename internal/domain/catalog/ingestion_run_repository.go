package catalog

import (
	"context"
)

// IngestionRunRepository defines the persistence interface for run records
type IngestionRunRepository interface {
	// Save creates or updates a run record
	Save(ctx context.Context, run *IngestionRun) error

	// FindLatestByShop returns the most recently started run for a shop
	FindLatestByShop(ctx context.Context, shopName string) (*IngestionRun, error)
}
