package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktier/backend/internal/domain/shared"
)

// Event types for the inventory context
const (
	EventTypeTransactionCompleted = "inventory.transaction.completed"
	EventTypeTransactionCancelled = "inventory.transaction.cancelled"
	EventTypeStockAdjusted        = "inventory.stock.adjusted"
	EventTypeStockBelowThreshold  = "inventory.stock.below_threshold"
)

// TransactionCompletedEvent is emitted when a transaction reaches Completed
// and its stock delta has been applied.
type TransactionCompletedEvent struct {
	shared.BaseDomainEvent
	ReferenceNumber string                        `json:"reference_number"`
	TransactionType TransactionType               `json:"transaction_type"`
	StockDelta      map[uuid.UUID]decimal.Decimal `json:"stock_delta"`
}

// NewTransactionCompletedEvent creates a new TransactionCompletedEvent
func NewTransactionCompletedEvent(transactionID uuid.UUID, referenceNumber string, txType TransactionType, stockDelta map[uuid.UUID]decimal.Decimal) *TransactionCompletedEvent {
	return &TransactionCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionCompleted, "Transaction", transactionID),
		ReferenceNumber: referenceNumber,
		TransactionType: txType,
		StockDelta:      stockDelta,
	}
}

// TransactionCancelledEvent is emitted when a pending transaction is abandoned
type TransactionCancelledEvent struct {
	shared.BaseDomainEvent
	ReferenceNumber string          `json:"reference_number"`
	TransactionType TransactionType `json:"transaction_type"`
}

// NewTransactionCancelledEvent creates a new TransactionCancelledEvent
func NewTransactionCancelledEvent(transactionID uuid.UUID, referenceNumber string, txType TransactionType) *TransactionCancelledEvent {
	return &TransactionCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionCancelled, "Transaction", transactionID),
		ReferenceNumber: referenceNumber,
		TransactionType: txType,
	}
}

// StockAdjustedEvent is emitted whenever an item's on-hand quantity changes
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	SKU            string          `json:"sku"`
	TransactionID  uuid.UUID       `json:"transaction_id"`
	Delta          decimal.Decimal `json:"delta"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(itemID uuid.UUID, sku string, transactionID uuid.UUID, delta, before, after decimal.Decimal) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, "Item", itemID),
		SKU:             sku,
		TransactionID:   transactionID,
		Delta:           delta,
		QuantityBefore:  before,
		QuantityAfter:   after,
	}
}

// StockBelowThresholdEvent is emitted when stock crosses the alert level
// downward; an alerting collaborator turns it into a notification.
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	SKU       string          `json:"sku"`
	Quantity  decimal.Decimal `json:"quantity"`
	Threshold decimal.Decimal `json:"threshold"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(itemID uuid.UUID, sku string, quantity, threshold decimal.Decimal) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, "Item", itemID),
		SKU:             sku,
		Quantity:        quantity,
		Threshold:       threshold,
	}
}
