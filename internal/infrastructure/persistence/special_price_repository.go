package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocktier/backend/internal/domain/pricing"
	"github.com/stocktier/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSpecialPriceRepository implements pricing.SpecialPriceRepository using GORM
type GormSpecialPriceRepository struct {
	db *gorm.DB
}

// NewGormSpecialPriceRepository creates a new GormSpecialPriceRepository
func NewGormSpecialPriceRepository(db *gorm.DB) *GormSpecialPriceRepository {
	return &GormSpecialPriceRepository{db: db}
}

// FindByID finds a special price by its ID
func (r *GormSpecialPriceRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.SpecialPrice, error) {
	var price pricing.SpecialPrice
	if err := r.db.WithContext(ctx).First(&price, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &price, nil
}

// FindByCustomerAndItem finds the special price one customer holds for one item
func (r *GormSpecialPriceRepository) FindByCustomerAndItem(ctx context.Context, customerID, itemID uuid.UUID) (*pricing.SpecialPrice, error) {
	var price pricing.SpecialPrice
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND item_id = ?", customerID, itemID).
		First(&price).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &price, nil
}

// FindByCustomer lists all special prices held by a customer
func (r *GormSpecialPriceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]pricing.SpecialPrice, error) {
	var prices []pricing.SpecialPrice
	query := r.db.WithContext(ctx).
		Model(&pricing.SpecialPrice{}).
		Where("customer_id = ?", customerID)
	query = applyPagination(query, filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)

	if err := query.Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// FindPendingApproval lists proposals awaiting a manager decision, oldest first
func (r *GormSpecialPriceRepository) FindPendingApproval(ctx context.Context, filter shared.Filter) ([]pricing.SpecialPrice, error) {
	var prices []pricing.SpecialPrice
	query := r.db.WithContext(ctx).
		Model(&pricing.SpecialPrice{}).
		Where("approved = ?", false)
	query = applyPagination(query, filter.Page, filter.PageSize, "created_at", "asc")

	if err := query.Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// Save creates or updates a special price
func (r *GormSpecialPriceRepository) Save(ctx context.Context, price *pricing.SpecialPrice) error {
	return r.db.WithContext(ctx).Save(price).Error
}

// SaveWithLock saves with optimistic locking against the expected version
func (r *GormSpecialPriceRepository) SaveWithLock(ctx context.Context, price *pricing.SpecialPrice, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(price).
		Where("id = ? AND version = ?", price.ID, expectedVersion).
		Updates(map[string]interface{}{
			"unit_price":  price.UnitPrice,
			"approved":    price.Approved,
			"approved_by": price.ApprovedBy,
			"approved_at": price.ApprovedAt,
			"version":     price.Version,
			"updated_at":  price.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict.WithDetails(map[string]interface{}{
			"special_price_id": price.ID.String(),
			"expected_version": expectedVersion,
		})
	}
	return nil
}

// Delete deletes a special price
func (r *GormSpecialPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&pricing.SpecialPrice{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSpecialPriceRepository implements SpecialPriceRepository
var _ pricing.SpecialPriceRepository = (*GormSpecialPriceRepository)(nil)
