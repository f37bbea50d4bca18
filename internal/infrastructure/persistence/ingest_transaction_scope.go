package persistence

import (
	"context"

	"github.com/chicpic/backend/internal/application/ingest"
	"github.com/chicpic/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormTransactionScope implements ingest.TransactionScope using GORM
// transactions. Every repository handed to the function is bound to
// the same transaction, so a returned error rolls all writes back.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a transaction scope over a database connection
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos ingest.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormTransactionalRepositories(tx))
	})
}

// GormTransactionalRepositories bundles repositories bound to one
// transaction (or, in tests, to a plain connection).
type GormTransactionalRepositories struct {
	shops      *GormShopRepository
	categories *GormCategoryRepository
	attributes *GormAttributeRepository
	products   *GormProductRepository
	variants   *GormVariantRepository
	sizings    *GormSizingRepository
}

// NewGormTransactionalRepositories creates the repository bundle over a connection
func NewGormTransactionalRepositories(db *gorm.DB) *GormTransactionalRepositories {
	return &GormTransactionalRepositories{
		shops:      NewGormShopRepository(db),
		categories: NewGormCategoryRepository(db),
		attributes: NewGormAttributeRepository(db),
		products:   NewGormProductRepository(db),
		variants:   NewGormVariantRepository(db),
		sizings:    NewGormSizingRepository(db),
	}
}

// Shops returns the shop repository bound to the transaction
func (r *GormTransactionalRepositories) Shops() catalog.ShopRepository {
	return r.shops
}

// Categories returns the category repository bound to the transaction
func (r *GormTransactionalRepositories) Categories() catalog.CategoryRepository {
	return r.categories
}

// Attributes returns the attribute repository bound to the transaction
func (r *GormTransactionalRepositories) Attributes() catalog.AttributeRepository {
	return r.attributes
}

// Products returns the product repository bound to the transaction
func (r *GormTransactionalRepositories) Products() catalog.ProductRepository {
	return r.products
}

// Variants returns the variant repository bound to the transaction
func (r *GormTransactionalRepositories) Variants() catalog.VariantRepository {
	return r.variants
}

// Sizings returns the sizing repository bound to the transaction
func (r *GormTransactionalRepositories) Sizings() catalog.SizingRepository {
	return r.sizings
}

// Ensure interface compliance
var (
	_ ingest.TransactionScope          = (*GormTransactionScope)(nil)
	_ ingest.TransactionalRepositories = (*GormTransactionalRepositories)(nil)
)
