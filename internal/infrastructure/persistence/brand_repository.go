package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocktier/backend/internal/domain/partner"
	"github.com/stocktier/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBrandRepository implements partner.BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// FindByID finds a brand by ID
func (r *GormBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Brand, error) {
	var brand partner.Brand
	if err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &brand, nil
}

// FindByCode finds a brand by its numeric code
func (r *GormBrandRepository) FindByCode(ctx context.Context, code int) (*partner.Brand, error) {
	var brand partner.Brand
	if err := r.db.WithContext(ctx).First(&brand, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &brand, nil
}

// FindAll lists brands
func (r *GormBrandRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Brand, error) {
	var brands []partner.Brand
	query := r.db.WithContext(ctx).Model(&partner.Brand{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	query = applyPagination(query, filter.Page, filter.PageSize, "code", "asc")

	if err := query.Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// NextCode returns the highest assigned brand code plus one, starting at 1
func (r *GormBrandRepository) NextCode(ctx context.Context) (int, error) {
	var maxCode *int
	if err := r.db.WithContext(ctx).
		Model(&partner.Brand{}).
		Select("MAX(code)").
		Scan(&maxCode).Error; err != nil {
		return 0, err
	}
	if maxCode == nil {
		return 1, nil
	}
	return *maxCode + 1, nil
}

// Save creates or updates a brand
func (r *GormBrandRepository) Save(ctx context.Context, brand *partner.Brand) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

// Delete deletes a brand
func (r *GormBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Brand{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormBrandRepository implements BrandRepository
var _ partner.BrandRepository = (*GormBrandRepository)(nil)
