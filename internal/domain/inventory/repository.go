package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocktier/backend/internal/domain/shared"
)

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindBySKU(ctx context.Context, sku string) (*Item, error)
	FindByBrand(ctx context.Context, brandID uuid.UUID, filter shared.Filter) ([]Item, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)
	FindBelowThreshold(ctx context.Context) ([]Item, error)
	// CountByBrand backs SKU sequence assignment
	CountByBrand(ctx context.Context, brandID uuid.UUID) (int64, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, item *Item) error
	// SaveWithLock saves with optimistic concurrency control on the version
	SaveWithLock(ctx context.Context, item *Item, expectedVersion int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItemBatchRepository defines the interface for batch persistence
type ItemBatchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemBatch, error)
	// FindActiveByItem returns batches with remaining stock, batch number ascending
	FindActiveByItem(ctx context.Context, itemID uuid.UUID) ([]ItemBatch, error)
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]ItemBatch, error)
	Save(ctx context.Context, batch *ItemBatch) error
	SaveAll(ctx context.Context, batches []*ItemBatch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository defines the interface for transaction persistence
type TransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindByReference(ctx context.Context, referenceNumber string) (*Transaction, error)
	FindByStatus(ctx context.Context, status TransactionStatus, filter shared.Filter) ([]Transaction, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Transaction, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Transaction, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// NextReferenceSequence returns the next document number for the year,
	// starting at 1
	NextReferenceSequence(ctx context.Context, year int) (int, error)
	Save(ctx context.Context, transaction *Transaction) error
	// SaveWithLock saves with optimistic concurrency control on the version
	SaveWithLock(ctx context.Context, transaction *Transaction, expectedVersion int) error
	Delete(ctx context.Context, id uuid.UUID) error
}
