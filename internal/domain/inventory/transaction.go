package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktier/backend/internal/domain/pricing"
	"github.com/stocktier/backend/internal/domain/shared"
)

// TransactionType represents the kind of stock-affecting event
type TransactionType string

const (
	// TransactionTypeReceive brings new stock in, creating batches
	TransactionTypeReceive TransactionType = "RECEIVE"
	// TransactionTypeDispatch sells or ships stock out
	TransactionTypeDispatch TransactionType = "DISPATCH"
	// TransactionTypeReturn brings previously dispatched stock back
	TransactionTypeReturn TransactionType = "RETURN"
	// TransactionTypeReserve earmarks stock for a customer
	TransactionTypeReserve TransactionType = "RESERVE"
	// TransactionTypeManualCorrection fixes bookkeeping and completes immediately
	TransactionTypeManualCorrection TransactionType = "MANUAL_CORRECTION"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is known
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeReceive,
		TransactionTypeDispatch,
		TransactionTypeReturn,
		TransactionTypeReserve,
		TransactionTypeManualCorrection:
		return true
	}
	return false
}

// IsOutgoing returns true for types that take stock out
func (t TransactionType) IsOutgoing() bool {
	return t == TransactionTypeDispatch || t == TransactionTypeReserve
}

// IsIncoming returns true for types that bring stock in
func (t TransactionType) IsIncoming() bool {
	return t == TransactionTypeReceive || t == TransactionTypeReturn
}

// TransactionStatus represents the lifecycle state of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// TransactionPriority orders pending work for fulfilment
type TransactionPriority string

const (
	PriorityLow    TransactionPriority = "LOW"
	PriorityNormal TransactionPriority = "NORMAL"
	PriorityHigh   TransactionPriority = "HIGH"
)

// DefaultVATRate is the VAT applied to dispatch totals of VAT-classified brands
var DefaultVATRate = decimal.NewFromFloat(0.12)

// TransactionItem is one line of a transaction: a signed quantity change for
// an item, optionally bound to a batch and priced at a tier.
type TransactionItem struct {
	shared.BaseEntity
	TransactionID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuantityChange decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	BatchID        *uuid.UUID      `gorm:"type:uuid;index"`
	PricingTier    pricing.Tier    `gorm:"type:varchar(10)"`
	UnitPrice      *decimal.Decimal `gorm:"type:decimal(14,2)"`
}

// TableName returns the table name for GORM
func (TransactionItem) TableName() string {
	return "transaction_items"
}

// NewTransactionItem creates a transaction line
func NewTransactionItem(itemID uuid.UUID, quantityChange decimal.Decimal, batchID *uuid.UUID, tier pricing.Tier, unitPrice *decimal.Decimal) (*TransactionItem, error) {
	if itemID == uuid.Nil {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "item_id",
			"reason": "item is required",
		})
	}
	if quantityChange.IsZero() {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":   "quantity_change",
			"item_id": itemID.String(),
			"reason":  "quantity change cannot be zero",
		})
	}
	if tier != "" && !tier.IsValid() {
		return nil, pricing.NewInvalidTierError(string(tier))
	}
	if unitPrice != nil && unitPrice.IsNegative() {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":   "unit_price",
			"item_id": itemID.String(),
			"reason":  "unit price cannot be negative",
		})
	}
	return &TransactionItem{
		BaseEntity:     shared.NewBaseEntity(),
		ItemID:         itemID,
		QuantityChange: quantityChange,
		BatchID:        batchID,
		PricingTier:    tier,
		UnitPrice:      unitPrice,
	}, nil
}

// LineTotal returns the priced value of the line, zero when unpriced
func (ti *TransactionItem) LineTotal() decimal.Decimal {
	if ti.UnitPrice == nil {
		return decimal.Zero
	}
	return ti.QuantityChange.Abs().Mul(*ti.UnitPrice)
}

// IsOutgoing returns true when the line takes stock out
func (ti *TransactionItem) IsOutgoing() bool {
	return ti.QuantityChange.IsNegative()
}

// Transaction is a stock-affecting event moving through
// Pending -> Completed | Cancelled. Both end states are terminal. A pending
// transaction records intent only; stock moves exactly once, at completion.
type Transaction struct {
	shared.BaseAggregateRoot
	ReferenceNumber string              `gorm:"type:varchar(20);not null;uniqueIndex"`
	Type            TransactionType     `gorm:"type:varchar(30);not null;index"`
	Status          TransactionStatus   `gorm:"type:varchar(20);not null;index;default:'PENDING'"`
	CustomerID      *uuid.UUID          `gorm:"type:uuid;index"`
	CreatedBy       uuid.UUID           `gorm:"type:uuid;not null"`
	ActorTier       pricing.Tier        `gorm:"type:varchar(10)"`
	DueDate         *time.Time          `gorm:"index"`
	Priority        TransactionPriority `gorm:"type:varchar(10);not null;default:'NORMAL'"`
	Notes           string              `gorm:"type:text"`
	Items           []TransactionItem   `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
	CompletedAt     *time.Time
	CancelledAt     *time.Time
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// FormatReferenceNumber renders the YEAR-NNNN document number
func FormatReferenceNumber(year, sequence int) string {
	return fmt.Sprintf("%d-%04d", year, sequence)
}

// NewTransaction creates a transaction in Pending with validated lines.
// Incoming types require positive quantity changes, outgoing types negative
// ones; manual corrections accept either sign.
func NewTransaction(referenceNumber string, txType TransactionType, createdBy uuid.UUID, items []TransactionItem) (*Transaction, error) {
	if !txType.IsValid() {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "type",
			"reason": fmt.Sprintf("unknown transaction type %q", txType),
		})
	}
	if referenceNumber == "" {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "reference_number",
			"reason": "reference number is required",
		})
	}
	if createdBy == uuid.Nil {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "created_by",
			"reason": "creator identity is required",
		})
	}
	if len(items) == 0 {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "items",
			"reason": "a transaction needs at least one item",
		})
	}
	for _, item := range items {
		if item.QuantityChange.IsZero() {
			return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
				"field":   "quantity_change",
				"item_id": item.ItemID.String(),
				"reason":  "quantity change cannot be zero",
			})
		}
		if txType.IsIncoming() && item.QuantityChange.IsNegative() {
			return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
				"field":   "quantity_change",
				"item_id": item.ItemID.String(),
				"reason":  fmt.Sprintf("%s lines must have positive quantity changes", txType),
			})
		}
		if txType.IsOutgoing() && item.QuantityChange.IsPositive() {
			return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
				"field":   "quantity_change",
				"item_id": item.ItemID.String(),
				"reason":  fmt.Sprintf("%s lines must have negative quantity changes", txType),
			})
		}
	}

	tx := &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReferenceNumber:   referenceNumber,
		Type:              txType,
		Status:            TransactionStatusPending,
		CreatedBy:         createdBy,
		Priority:          PriorityNormal,
		Items:             make([]TransactionItem, len(items)),
	}
	copy(tx.Items, items)
	for idx := range tx.Items {
		tx.Items[idx].TransactionID = tx.ID
	}
	return tx, nil
}

// IsPending returns true while the transaction can still change state
func (t *Transaction) IsPending() bool {
	return t.Status == TransactionStatusPending
}

// Complete moves the transaction to its successful terminal state. Stock and
// batch mutations happen in the same unit of work, before this is persisted.
func (t *Transaction) Complete() error {
	if !t.IsPending() {
		return NewInvalidStateTransitionError(t.ID, t.Status, "complete")
	}
	now := time.Now()
	t.Status = TransactionStatusCompleted
	t.CompletedAt = &now
	t.IncrementVersion()

	t.AddDomainEvent(NewTransactionCompletedEvent(t.ID, t.ReferenceNumber, t.Type, t.stockDelta()))
	return nil
}

// Cancel moves the transaction to its abandoned terminal state. Pending
// transactions never touched stock, so nothing is reversed.
func (t *Transaction) Cancel() error {
	if !t.IsPending() {
		return NewInvalidStateTransitionError(t.ID, t.Status, "cancel")
	}
	now := time.Now()
	t.Status = TransactionStatusCancelled
	t.CancelledAt = &now
	t.IncrementVersion()

	t.AddDomainEvent(NewTransactionCancelledEvent(t.ID, t.ReferenceNumber, t.Type))
	return nil
}

// EnsureDeletable fails unless the transaction is still Pending
func (t *Transaction) EnsureDeletable() error {
	if !t.IsPending() {
		return NewOnlyPendingDeletableError(t.ID, t.Status)
	}
	return nil
}

// SetDueDate sets the fulfilment deadline
func (t *Transaction) SetDueDate(due time.Time) {
	t.DueDate = &due
}

// SetPriority overrides the default priority
func (t *Transaction) SetPriority(priority TransactionPriority) error {
	switch priority {
	case PriorityLow, PriorityNormal, PriorityHigh:
		t.Priority = priority
		return nil
	default:
		return shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "priority",
			"reason": fmt.Sprintf("unknown priority %q", priority),
		})
	}
}

// AttachCustomer links the transaction to the buying customer
func (t *Transaction) AttachCustomer(customerID uuid.UUID, actorTier pricing.Tier) {
	t.CustomerID = &customerID
	t.ActorTier = actorTier
}

// stockDelta sums the signed quantity changes of all lines per item
func (t *Transaction) stockDelta() map[uuid.UUID]decimal.Decimal {
	deltas := make(map[uuid.UUID]decimal.Decimal, len(t.Items))
	for _, item := range t.Items {
		deltas[item.ItemID] = deltas[item.ItemID].Add(item.QuantityChange)
	}
	return deltas
}

// Totals computes the priced value of the transaction. VAT is applied on top
// of the subtotal at the given rate; pass decimal.Zero for non-VAT brands.
func (t *Transaction) Totals(vatRate decimal.Decimal) (subtotal, vat, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range t.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	vat = subtotal.Mul(vatRate).Round(2)
	total = subtotal.Add(vat)
	return subtotal, vat, total
}
