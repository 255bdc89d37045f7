package inventory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktier/backend/internal/domain/shared"
)

// Item is the stock aggregate for one SKU. Its on-hand quantity only changes
// through completed ledger transactions; pending transactions record intent
// without touching it.
type Item struct {
	shared.BaseAggregateRoot
	BrandID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU           string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(200);not null"`
	UnitOfMeasure string          `gorm:"type:varchar(20);not null;default:'pc'"`
	Quantity      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	// ThresholdValue is the low-stock alert level; zero disables the alert
	ThresholdValue decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	// NextBatchNumber assigns per-item batch numbers, monotonic from 1
	NextBatchNumber int `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new item with zero stock
func NewItem(brandID uuid.UUID, sku, name, unitOfMeasure string, threshold decimal.Decimal) (*Item, error) {
	if brandID == uuid.Nil {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "brand_id",
			"reason": "brand is required",
		})
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "name",
			"reason": "item name is required",
		})
	}
	if sku == "" {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "sku",
			"reason": "SKU is required",
		})
	}
	if threshold.IsNegative() {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "threshold_value",
			"reason": "threshold cannot be negative",
		})
	}
	if unitOfMeasure == "" {
		unitOfMeasure = "pc"
	}
	return &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BrandID:           brandID,
		SKU:               sku,
		Name:              name,
		UnitOfMeasure:     unitOfMeasure,
		Quantity:          decimal.Zero,
		ThresholdValue:    threshold,
		NextBatchNumber:   1,
	}, nil
}

// ApplyDelta moves the on-hand quantity by a signed amount. Stock can never
// go negative. Crossing the threshold downward emits a low-stock event.
func (i *Item) ApplyDelta(delta decimal.Decimal, transactionID uuid.UUID) error {
	newQuantity := i.Quantity.Add(delta)
	if newQuantity.IsNegative() {
		return NewInsufficientStockError(i.ID, delta.Abs(), i.Quantity)
	}

	wasBelow := i.IsBelowThreshold()
	previous := i.Quantity
	i.Quantity = newQuantity
	i.IncrementVersion()

	i.AddDomainEvent(NewStockAdjustedEvent(i.ID, i.SKU, transactionID, delta, previous, newQuantity))
	if !wasBelow && i.IsBelowThreshold() {
		i.AddDomainEvent(NewStockBelowThresholdEvent(i.ID, i.SKU, newQuantity, i.ThresholdValue))
	}
	return nil
}

// AllocateBatchNumber hands out the next batch number for the item
func (i *Item) AllocateBatchNumber() int {
	n := i.NextBatchNumber
	i.NextBatchNumber++
	return n
}

// IsBelowThreshold reports whether stock has fallen under the alert level
func (i *Item) IsBelowThreshold() bool {
	if i.ThresholdValue.IsZero() {
		return false
	}
	return i.Quantity.LessThan(i.ThresholdValue)
}

// UpdateThreshold changes the low-stock alert level
func (i *Item) UpdateThreshold(threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "threshold_value",
			"reason": "threshold cannot be negative",
		})
	}
	i.ThresholdValue = threshold
	return nil
}

// Rename updates the display name
func (i *Item) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "name",
			"reason": "item name is required",
		})
	}
	i.Name = name
	return nil
}
