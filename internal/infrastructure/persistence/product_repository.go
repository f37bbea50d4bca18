package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/chicpic/backend/internal/domain/catalog"
	"github.com/chicpic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByOriginalID finds a shop's product by the source listing id,
// including soft-deleted products.
func (r *GormProductRepository) FindByOriginalID(ctx context.Context, shopID uuid.UUID, originalID int64) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND original_id = ?", shopID, originalID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindActiveByShop returns the shop's products that are not soft-deleted
func (r *GormProductRepository) FindActiveByShop(ctx context.Context, shopID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND is_deleted = ?", shopID, false).
		Order("original_id ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Omit("Categories", "Attributes").Save(product).Error
}

// ReplaceCategories replaces the product's category set
func (r *GormProductRepository) ReplaceCategories(ctx context.Context, product *catalog.Product, categories []catalog.Category) error {
	refs := make([]catalog.Category, len(categories))
	copy(refs, categories)
	return r.db.WithContext(ctx).Model(product).Association("Categories").Replace(&refs)
}

// FindAttributeLinks returns the product's current attribute links
func (r *GormProductRepository) FindAttributeLinks(ctx context.Context, productID uuid.UUID) ([]catalog.ProductAttribute, error) {
	var links []catalog.ProductAttribute
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("position ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// ClearAttributes removes all attribute links of a product
func (r *GormProductRepository) ClearAttributes(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&catalog.ProductAttribute{}, "product_id = ?", productID).Error
}

// SaveAttribute creates or updates a product attribute link
func (r *GormProductRepository) SaveAttribute(ctx context.Context, attribute *catalog.ProductAttribute) error {
	return r.db.WithContext(ctx).Omit("Attribute").Save(attribute).Error
}

// SoftDeleteAbsent soft-deletes the shop's active products whose
// original id is not in keepOriginalIDs. Other shops are never touched.
func (r *GormProductRepository) SoftDeleteAbsent(ctx context.Context, shopID uuid.UUID, keepOriginalIDs []int64) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("shop_id = ? AND is_deleted = ?", shopID, false)

	if len(keepOriginalIDs) > 0 {
		query = query.Where("original_id NOT IN ?", keepOriginalIDs)
	}

	result := query.Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": time.Now(),
		"updated_at": time.Now(),
	})
	return result.RowsAffected, result.Error
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
