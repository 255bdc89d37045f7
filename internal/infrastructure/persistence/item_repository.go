package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocktier/backend/internal/domain/inventory"
	"github.com/stocktier/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormItemRepository implements inventory.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindBySKU finds an item by its SKU
func (r *GormItemRepository) FindBySKU(ctx context.Context, sku string) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).First(&item, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByBrand finds all items belonging to a brand
func (r *GormItemRepository) FindByBrand(ctx context.Context, brandID uuid.UUID, filter shared.Filter) ([]inventory.Item, error) {
	var items []inventory.Item
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&inventory.Item{}).Where("brand_id = ?", brandID),
		filter,
	)
	query = applyPagination(query, filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindAll finds all items
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	var items []inventory.Item
	query := r.applyFilters(r.db.WithContext(ctx).Model(&inventory.Item{}), filter)
	query = applyPagination(query, filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindBelowThreshold finds items whose stock has fallen under their alert
// level. Items with a zero threshold never alert.
func (r *GormItemRepository) FindBelowThreshold(ctx context.Context) ([]inventory.Item, error) {
	var items []inventory.Item
	if err := r.db.WithContext(ctx).
		Where("threshold_value > 0 AND quantity < threshold_value").
		Order("sku ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountByBrand counts items belonging to a brand
func (r *GormItemRepository) CountByBrand(ctx context.Context, brandID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("brand_id = ?", brandID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count counts items matching the filter
func (r *GormItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(r.db.WithContext(ctx).Model(&inventory.Item{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// SaveWithLock saves with optimistic locking against the expected version
func (r *GormItemRepository) SaveWithLock(ctx context.Context, item *inventory.Item, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(item).
		Where("id = ? AND version = ?", item.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":              item.Name,
			"unit_of_measure":   item.UnitOfMeasure,
			"quantity":          item.Quantity,
			"threshold_value":   item.ThresholdValue,
			"next_batch_number": item.NextBatchNumber,
			"version":           item.Version,
			"updated_at":        item.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict.WithDetails(map[string]interface{}{
			"item_id":          item.ID.String(),
			"expected_version": expectedVersion,
		})
	}
	return nil
}

// Delete deletes an item
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilters applies item-specific filter keys to the query
func (r *GormItemRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR sku LIKE ?", like, like)
	}
	for key, value := range filter.Filters {
		switch key {
		case "brand_id":
			query = query.Where("brand_id = ?", value)
		case "below_threshold":
			if value == true {
				query = query.Where("threshold_value > 0 AND quantity < threshold_value")
			}
		case "has_stock":
			if value == true {
				query = query.Where("quantity > 0")
			}
		case "no_stock":
			if value == true {
				query = query.Where("quantity = 0")
			}
		}
	}
	return query
}

// Ensure GormItemRepository implements ItemRepository
var _ inventory.ItemRepository = (*GormItemRepository)(nil)
