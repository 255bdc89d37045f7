package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocktier/backend/internal/domain/shared"
)

// TierPriceRepository defines the interface for tier price persistence
type TierPriceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TierPrice, error)
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]TierPrice, error)
	FindByItemAndTier(ctx context.Context, itemID uuid.UUID, tier Tier) (*TierPrice, error)
	Save(ctx context.Context, price *TierPrice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SpecialPriceRepository defines the interface for special price persistence
type SpecialPriceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SpecialPrice, error)
	FindByCustomerAndItem(ctx context.Context, customerID, itemID uuid.UUID) (*SpecialPrice, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]SpecialPrice, error)
	FindPendingApproval(ctx context.Context, filter shared.Filter) ([]SpecialPrice, error)
	Save(ctx context.Context, price *SpecialPrice) error
	// SaveWithLock saves with optimistic concurrency control on the version
	SaveWithLock(ctx context.Context, price *SpecialPrice, expectedVersion int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerBrandTierRepository defines the interface for customer tier assignments
type CustomerBrandTierRepository interface {
	FindByCustomerAndBrand(ctx context.Context, customerID, brandID uuid.UUID) (*CustomerBrandTier, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]CustomerBrandTier, error)
	Save(ctx context.Context, assignment *CustomerBrandTier) error
	Delete(ctx context.Context, id uuid.UUID) error
}
