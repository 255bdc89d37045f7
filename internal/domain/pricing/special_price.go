package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktier/backend/internal/domain/shared"
)

// SpecialPrice is a customer-specific override price for one item.
// It starts unapproved and must never price a chargeable total until a
// manager approves it. Approval is one-way: re-approval is a no-op and
// rejection after approval is an invalid transition.
type SpecialPrice struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_special_prices_customer_item"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_special_prices_customer_item"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Approved   bool            `gorm:"not null;default:false"`
	ApprovedBy *uuid.UUID      `gorm:"type:uuid"`
	ApprovedAt *time.Time
	RequestedBy uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the database table name
func (SpecialPrice) TableName() string {
	return "special_prices"
}

// NewSpecialPrice creates an unapproved special price proposal.
func NewSpecialPrice(customerID, itemID, requestedBy uuid.UUID, unitPrice decimal.Decimal) (*SpecialPrice, error) {
	if unitPrice.IsNegative() || unitPrice.IsZero() {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"unit_price": unitPrice.String(),
			"reason":     "unit price must be positive",
		})
	}
	return &SpecialPrice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		ItemID:            itemID,
		UnitPrice:         unitPrice,
		Approved:          false,
		RequestedBy:       requestedBy,
	}, nil
}

// Approve marks the price usable for resolution. Approving an already
// approved price is a no-op.
func (sp *SpecialPrice) Approve(approverID uuid.UUID) error {
	if sp.Approved {
		return nil
	}
	now := time.Now()
	sp.Approved = true
	sp.ApprovedBy = &approverID
	sp.ApprovedAt = &now
	sp.IncrementVersion()

	sp.AddDomainEvent(NewSpecialPriceApprovedEvent(sp.ID, sp.CustomerID, sp.ItemID, approverID, sp.UnitPrice))
	return nil
}

// Reject discards an unapproved proposal. Rejecting after approval is not
// allowed: the price is already in use.
func (sp *SpecialPrice) Reject() error {
	if sp.Approved {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			"Special price is already approved and can no longer be rejected").
			WithDetails(map[string]interface{}{
				"special_price_id": sp.ID.String(),
			})
	}
	return nil
}
