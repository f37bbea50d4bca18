package catalog

import (
	"context"
)

// CategoryRepository defines the persistence interface for canonical categories
type CategoryRepository interface {
	// FindByTitleAndGender finds the canonical category with the given
	// title and gender. Returns shared.ErrNotFound when no such
	// category is seeded.
	FindByTitleAndGender(ctx context.Context, title string, gender Gender) (*Category, error)

	// FindAll returns every seeded category
	FindAll(ctx context.Context) ([]Category, error)

	// Save creates or updates a category. Ingestion never calls this;
	// it exists for seeding and tests.
	Save(ctx context.Context, category *Category) error
}
