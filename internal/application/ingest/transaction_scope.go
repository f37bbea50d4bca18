package ingest

import (
	"context"

	"github.com/chicpic/backend/internal/domain/catalog"
)

// TransactionalRepositories bundles the repositories a reconciliation
// run writes through. Inside a scope all of them share one transaction.
type TransactionalRepositories interface {
	// Shops returns the shop repository bound to the transaction
	Shops() catalog.ShopRepository

	// Categories returns the category repository bound to the transaction
	Categories() catalog.CategoryRepository

	// Attributes returns the attribute repository bound to the transaction
	Attributes() catalog.AttributeRepository

	// Products returns the product repository bound to the transaction
	Products() catalog.ProductRepository

	// Variants returns the variant repository bound to the transaction
	Variants() catalog.VariantRepository

	// Sizings returns the sizing repository bound to the transaction
	Sizings() catalog.SizingRepository
}

// TransactionScope executes a function within a database transaction.
// If the function returns an error every write inside it rolls back.
type TransactionScope interface {
	// Execute runs fn inside a transaction
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// NoOpTransactionScope runs the function against the given repositories
// without transactional guarantees. Used in tests.
type NoOpTransactionScope struct {
	repos TransactionalRepositories
}

// NewNoOpTransactionScope creates a pass-through scope over fixed repositories
func NewNoOpTransactionScope(repos TransactionalRepositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{repos: repos}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s.repos)
}
