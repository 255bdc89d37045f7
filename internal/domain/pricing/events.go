package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktier/backend/internal/domain/shared"
)

// Event types for the pricing context
const (
	EventTypeSpecialPriceApproved = "pricing.special_price.approved"
)

// SpecialPriceApprovedEvent is emitted when a manager approves a
// customer-specific price.
type SpecialPriceApprovedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID       `json:"customer_id"`
	ItemID     uuid.UUID       `json:"item_id"`
	ApprovedBy uuid.UUID       `json:"approved_by"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// NewSpecialPriceApprovedEvent creates a new SpecialPriceApprovedEvent
func NewSpecialPriceApprovedEvent(specialPriceID, customerID, itemID, approvedBy uuid.UUID, unitPrice decimal.Decimal) *SpecialPriceApprovedEvent {
	return &SpecialPriceApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSpecialPriceApproved, "SpecialPrice", specialPriceID),
		CustomerID:      customerID,
		ItemID:          itemID,
		ApprovedBy:      approvedBy,
		UnitPrice:       unitPrice,
	}
}
