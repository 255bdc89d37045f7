package pricing

import (
	"github.com/google/uuid"
	"github.com/stocktier/backend/internal/domain/shared"
)

// CustomerBrandTier records the default tier a customer buys at for one
// brand's items. At most one assignment may exist per (customer, brand).
type CustomerBrandTier struct {
	shared.BaseEntity
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_customer_brand_tiers"`
	BrandID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_customer_brand_tiers"`
	Tier       Tier      `gorm:"type:varchar(10);not null"`
}

// TableName returns the database table name
func (CustomerBrandTier) TableName() string {
	return "customer_brand_tiers"
}

// NewCustomerBrandTier assigns a default tier to a customer for a brand.
func NewCustomerBrandTier(customerID, brandID uuid.UUID, tier Tier) (*CustomerBrandTier, error) {
	if !tier.IsValid() {
		return nil, NewInvalidTierError(string(tier))
	}
	return &CustomerBrandTier{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		BrandID:    brandID,
		Tier:       tier,
	}, nil
}

// ChangeTier moves the customer to a different default tier for the brand.
func (c *CustomerBrandTier) ChangeTier(tier Tier) error {
	if !tier.IsValid() {
		return NewInvalidTierError(string(tier))
	}
	c.Tier = tier
	return nil
}
