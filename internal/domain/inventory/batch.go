package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktier/backend/internal/domain/shared"
)

// ItemBatch is one received lot of an item. Batch numbers are assigned per
// item, monotonic from 1, so ascending batch number approximates FIFO.
type ItemBatch struct {
	shared.BaseEntity
	ItemID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_item_batches_item_number"`
	BatchNumber       int             `gorm:"not null;uniqueIndex:idx_item_batches_item_number"`
	InitialQuantity   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	RemainingQuantity decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	ReceivedAt        time.Time       `gorm:"not null"`
	ExpiryDate        *time.Time
}

// TableName returns the table name for GORM
func (ItemBatch) TableName() string {
	return "item_batches"
}

// NewItemBatch creates a full batch
func NewItemBatch(itemID uuid.UUID, batchNumber int, quantity decimal.Decimal, expiryDate *time.Time) (*ItemBatch, error) {
	if itemID == uuid.Nil {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "item_id",
			"reason": "item is required",
		})
	}
	if batchNumber < 1 {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "batch_number",
			"reason": "batch numbers start at 1",
		})
	}
	if quantity.IsNegative() || quantity.IsZero() {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "quantity",
			"reason": "batch quantity must be positive",
		})
	}
	return &ItemBatch{
		BaseEntity:        shared.NewBaseEntity(),
		ItemID:            itemID,
		BatchNumber:       batchNumber,
		InitialQuantity:   quantity,
		RemainingQuantity: quantity,
		ReceivedAt:        time.Now(),
		ExpiryDate:        expiryDate,
	}, nil
}

// Reserve decrements the remaining quantity. A request above the remaining
// quantity fails whole: no partial reservation.
func (b *ItemBatch) Reserve(quantity decimal.Decimal) error {
	if quantity.IsNegative() || quantity.IsZero() {
		return shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "quantity",
			"reason": "reserve quantity must be positive",
		})
	}
	if quantity.GreaterThan(b.RemainingQuantity) {
		return NewInsufficientBatchStockError(b.ID, b.BatchNumber, quantity, b.RemainingQuantity)
	}
	b.RemainingQuantity = b.RemainingQuantity.Sub(quantity)
	b.UpdatedAt = time.Now()
	return nil
}

// Release returns quantity to the batch, capped at the initial quantity.
// Exceeding the cap means the ledger and the batch disagree.
func (b *ItemBatch) Release(quantity decimal.Decimal) error {
	if quantity.IsNegative() || quantity.IsZero() {
		return shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "quantity",
			"reason": "release quantity must be positive",
		})
	}
	restored := b.RemainingQuantity.Add(quantity)
	if restored.GreaterThan(b.InitialQuantity) {
		return NewBatchOverReleaseError(b.ID, b.BatchNumber, quantity, b.RemainingQuantity, b.InitialQuantity)
	}
	b.RemainingQuantity = restored
	b.UpdatedAt = time.Now()
	return nil
}

// IsActive reports whether the batch still has stock to allocate
func (b *ItemBatch) IsActive() bool {
	return b.RemainingQuantity.GreaterThan(decimal.Zero)
}

// IsExpired returns true if the batch has passed its expiry date
func (b *ItemBatch) IsExpired() bool {
	if b.ExpiryDate == nil {
		return false
	}
	return b.ExpiryDate.Before(time.Now())
}

// ConsumedQuantity returns how much of the batch has been used
func (b *ItemBatch) ConsumedQuantity() decimal.Decimal {
	return b.InitialQuantity.Sub(b.RemainingQuantity)
}
