package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	// FindByOriginalID finds a shop's product by the source listing id.
	// Soft-deleted products are included so a returning listing can be
	// restored instead of duplicated.
	FindByOriginalID(ctx context.Context, shopID uuid.UUID, originalID int64) (*Product, error)

	// FindActiveByShop returns the shop's products that are not soft-deleted
	FindActiveByShop(ctx context.Context, shopID uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// ReplaceCategories replaces the product's category set
	ReplaceCategories(ctx context.Context, product *Product, categories []Category) error

	// FindAttributeLinks returns the product's current attribute links
	FindAttributeLinks(ctx context.Context, productID uuid.UUID) ([]ProductAttribute, error)

	// ClearAttributes removes all attribute links of a product
	ClearAttributes(ctx context.Context, productID uuid.UUID) error

	// SaveAttribute creates or updates a product attribute link
	SaveAttribute(ctx context.Context, attribute *ProductAttribute) error

	// SoftDeleteAbsent soft-deletes the shop's active products whose
	// original id is not in keepOriginalIDs and returns how many rows
	// were affected. Other shops' products are never touched.
	SoftDeleteAbsent(ctx context.Context, shopID uuid.UUID, keepOriginalIDs []int64) (int64, error)
}
