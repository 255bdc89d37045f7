package persistence

import (
	"context"

	appinv "github.com/stocktier/backend/internal/application/inventory"
	"github.com/stocktier/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Every repository handed to the callback shares the same database
// transaction, so the stock delta, the batch mutations, and the status
// change commit or roll back as one unit.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides transaction-scoped repositories
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ItemRepo returns the item repository scoped to the current transaction
func (r *gormTransactionalRepositories) ItemRepo() inventory.ItemRepository {
	return NewGormItemRepository(r.tx)
}

// BatchRepo returns the batch repository scoped to the current transaction
func (r *gormTransactionalRepositories) BatchRepo() inventory.ItemBatchRepository {
	return NewGormItemBatchRepository(r.tx)
}

// TransactionRepo returns the ledger transaction repository scoped to the current transaction
func (r *gormTransactionalRepositories) TransactionRepo() inventory.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

var (
	_ appinv.TransactionScope          = (*GormTransactionScope)(nil)
	_ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
