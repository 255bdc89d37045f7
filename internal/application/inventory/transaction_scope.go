package inventory

import (
	"context"

	"github.com/stocktier/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to ledger repositories.
// When a function is executed within a transaction scope, all repository operations
// will be part of the same database transaction and will be committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories a completing
// transaction touches. All repositories returned share the same underlying
// database transaction, so the item delta, the batch reservations, and the
// status change commit or roll back as one unit.
type TransactionalRepositories interface {
	// ItemRepo returns the item repository scoped to the current transaction
	ItemRepo() inventory.ItemRepository
	// BatchRepo returns the batch repository scoped to the current transaction
	BatchRepo() inventory.ItemBatchRepository
	// TransactionRepo returns the ledger transaction repository scoped to the current transaction
	TransactionRepo() inventory.TransactionRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	itemRepo        inventory.ItemRepository
	batchRepo       inventory.ItemBatchRepository
	transactionRepo inventory.TransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	itemRepo inventory.ItemRepository,
	batchRepo inventory.ItemBatchRepository,
	transactionRepo inventory.TransactionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		itemRepo:        itemRepo,
		batchRepo:       batchRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute runs the function with the configured repositories, without a
// transaction boundary.
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ItemRepo returns the item repository
func (s *NoOpTransactionScope) ItemRepo() inventory.ItemRepository {
	return s.itemRepo
}

// BatchRepo returns the batch repository
func (s *NoOpTransactionScope) BatchRepo() inventory.ItemBatchRepository {
	return s.batchRepo
}

// TransactionRepo returns the ledger transaction repository
func (s *NoOpTransactionScope) TransactionRepo() inventory.TransactionRepository {
	return s.transactionRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
