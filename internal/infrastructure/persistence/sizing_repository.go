package persistence

import (
	"context"

	"github.com/chicpic/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSizingRepository implements SizingRepository using GORM
type GormSizingRepository struct {
	db *gorm.DB
}

// NewGormSizingRepository creates a new GormSizingRepository
func NewGormSizingRepository(db *gorm.DB) *GormSizingRepository {
	return &GormSizingRepository{db: db}
}

// FindByVariant returns all sizings of a variant
func (r *GormSizingRepository) FindByVariant(ctx context.Context, variantID uuid.UUID) ([]catalog.Sizing, error) {
	var sizings []catalog.Sizing
	if err := r.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Order("option ASC").
		Find(&sizings).Error; err != nil {
		return nil, err
	}
	return sizings, nil
}

// DeleteByVariant removes every sizing of a variant
func (r *GormSizingRepository) DeleteByVariant(ctx context.Context, variantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&catalog.Sizing{}, "variant_id = ?", variantID).Error
}

// Save creates or updates a sizing
func (r *GormSizingRepository) Save(ctx context.Context, sizing *catalog.Sizing) error {
	return r.db.WithContext(ctx).Save(sizing).Error
}

// Ensure GormSizingRepository implements SizingRepository
var _ catalog.SizingRepository = (*GormSizingRepository)(nil)
