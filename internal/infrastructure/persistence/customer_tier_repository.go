package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocktier/backend/internal/domain/pricing"
	"github.com/stocktier/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCustomerBrandTierRepository implements pricing.CustomerBrandTierRepository using GORM
type GormCustomerBrandTierRepository struct {
	db *gorm.DB
}

// NewGormCustomerBrandTierRepository creates a new GormCustomerBrandTierRepository
func NewGormCustomerBrandTierRepository(db *gorm.DB) *GormCustomerBrandTierRepository {
	return &GormCustomerBrandTierRepository{db: db}
}

// FindByCustomerAndBrand finds the tier assignment for one customer-brand pair
func (r *GormCustomerBrandTierRepository) FindByCustomerAndBrand(ctx context.Context, customerID, brandID uuid.UUID) (*pricing.CustomerBrandTier, error) {
	var assignment pricing.CustomerBrandTier
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND brand_id = ?", customerID, brandID).
		First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// FindByCustomer lists all brand tier assignments of a customer
func (r *GormCustomerBrandTierRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]pricing.CustomerBrandTier, error) {
	var assignments []pricing.CustomerBrandTier
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// Save creates or updates a tier assignment
func (r *GormCustomerBrandTierRepository) Save(ctx context.Context, assignment *pricing.CustomerBrandTier) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

// Delete deletes a tier assignment
func (r *GormCustomerBrandTierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&pricing.CustomerBrandTier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCustomerBrandTierRepository implements CustomerBrandTierRepository
var _ pricing.CustomerBrandTierRepository = (*GormCustomerBrandTierRepository)(nil)
