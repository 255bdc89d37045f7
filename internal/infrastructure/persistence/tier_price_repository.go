package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocktier/backend/internal/domain/pricing"
	"github.com/stocktier/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTierPriceRepository implements pricing.TierPriceRepository using GORM
type GormTierPriceRepository struct {
	db *gorm.DB
}

// NewGormTierPriceRepository creates a new GormTierPriceRepository
func NewGormTierPriceRepository(db *gorm.DB) *GormTierPriceRepository {
	return &GormTierPriceRepository{db: db}
}

// FindByID finds a tier price by its ID
func (r *GormTierPriceRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.TierPrice, error) {
	var price pricing.TierPrice
	if err := r.db.WithContext(ctx).First(&price, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &price, nil
}

// FindByItem returns all configured tier prices for an item
func (r *GormTierPriceRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]pricing.TierPrice, error) {
	var prices []pricing.TierPrice
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// FindByItemAndTier finds the price of one tier of one item
func (r *GormTierPriceRepository) FindByItemAndTier(ctx context.Context, itemID uuid.UUID, tier pricing.Tier) (*pricing.TierPrice, error) {
	var price pricing.TierPrice
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND tier = ?", itemID, tier).
		First(&price).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &price, nil
}

// Save creates or updates a tier price
func (r *GormTierPriceRepository) Save(ctx context.Context, price *pricing.TierPrice) error {
	return r.db.WithContext(ctx).Save(price).Error
}

// Delete deletes a tier price
func (r *GormTierPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&pricing.TierPrice{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormTierPriceRepository implements TierPriceRepository
var _ pricing.TierPriceRepository = (*GormTierPriceRepository)(nil)
