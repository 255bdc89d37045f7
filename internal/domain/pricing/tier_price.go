package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktier/backend/internal/domain/shared"
)

// TierPrice maps one tier of one item to a unit price.
// At most one price may exist per (item, tier) pair.
type TierPrice struct {
	shared.BaseEntity
	ItemID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_tier_prices_item_tier"`
	Tier      Tier            `gorm:"type:varchar(10);not null;uniqueIndex:idx_tier_prices_item_tier"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// TableName returns the database table name
func (TierPrice) TableName() string {
	return "tier_prices"
}

// NewTierPrice creates a tier price for an item.
func NewTierPrice(itemID uuid.UUID, tier Tier, unitPrice decimal.Decimal) (*TierPrice, error) {
	if !tier.IsValid() {
		return nil, NewInvalidTierError(string(tier))
	}
	if unitPrice.IsNegative() || unitPrice.IsZero() {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"unit_price": unitPrice.String(),
			"reason":     "unit price must be positive",
		})
	}
	return &TierPrice{
		BaseEntity: shared.NewBaseEntity(),
		ItemID:     itemID,
		Tier:       tier,
		UnitPrice:  unitPrice,
	}, nil
}

// UpdatePrice replaces the unit price.
func (p *TierPrice) UpdatePrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() || unitPrice.IsZero() {
		return shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"unit_price": unitPrice.String(),
			"reason":     "unit price must be positive",
		})
	}
	p.UnitPrice = unitPrice
	return nil
}

// MonotonicityViolation records a pair of adjacent configured tiers whose
// prices are out of order: a cheaper tier priced above a more expensive one.
type MonotonicityViolation struct {
	HigherTier  Tier            `json:"higher_tier"`
	LowerTier   Tier            `json:"lower_tier"`
	HigherPrice decimal.Decimal `json:"higher_price"`
	LowerPrice  decimal.Decimal `json:"lower_price"`
}

func (v MonotonicityViolation) String() string {
	return fmt.Sprintf("%s price %s is below %s price %s", v.HigherTier, v.HigherPrice, v.LowerTier, v.LowerPrice)
}

// CheckMonotonicity flags tier prices that increase as the hierarchy descends.
// Prices should be non-increasing from RD down to SRP; violations are reported,
// never silently corrected. Unconfigured tiers are skipped.
func CheckMonotonicity(hierarchy *Hierarchy, prices []TierPrice) []MonotonicityViolation {
	byTier := make(map[Tier]decimal.Decimal, len(prices))
	for _, p := range prices {
		byTier[p.Tier] = p.UnitPrice
	}

	var violations []MonotonicityViolation
	var prevTier Tier
	var prevPrice decimal.Decimal
	havePrev := false
	for _, t := range hierarchy.Tiers() {
		price, ok := byTier[t]
		if !ok {
			continue
		}
		if havePrev && price.GreaterThan(prevPrice) {
			violations = append(violations, MonotonicityViolation{
				HigherTier:  prevTier,
				LowerTier:   t,
				HigherPrice: prevPrice,
				LowerPrice:  price,
			})
		}
		prevTier = t
		prevPrice = price
		havePrev = true
	}
	return violations
}
