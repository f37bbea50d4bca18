package persistence

import (
	"context"
	"errors"

	"github.com/chicpic/backend/internal/domain/catalog"
	"github.com/chicpic/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormIngestionRunRepository implements IngestionRunRepository using GORM
type GormIngestionRunRepository struct {
	db *gorm.DB
}

// NewGormIngestionRunRepository creates a new GormIngestionRunRepository
func NewGormIngestionRunRepository(db *gorm.DB) *GormIngestionRunRepository {
	return &GormIngestionRunRepository{db: db}
}

// Save creates or updates a run record
func (r *GormIngestionRunRepository) Save(ctx context.Context, run *catalog.IngestionRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

// FindLatestByShop returns the most recently started run for a shop
func (r *GormIngestionRunRepository) FindLatestByShop(ctx context.Context, shopName string) (*catalog.IngestionRun, error) {
	var run catalog.IngestionRun
	if err := r.db.WithContext(ctx).
		Where("shop_name = ?", shopName).
		Order("started_at DESC").
		First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &run, nil
}

// Ensure GormIngestionRunRepository implements IngestionRunRepository
var _ catalog.IngestionRunRepository = (*GormIngestionRunRepository)(nil)
