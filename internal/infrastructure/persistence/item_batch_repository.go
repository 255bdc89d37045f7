package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocktier/backend/internal/domain/inventory"
	"github.com/stocktier/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormItemBatchRepository implements inventory.ItemBatchRepository using GORM
type GormItemBatchRepository struct {
	db *gorm.DB
}

// NewGormItemBatchRepository creates a new GormItemBatchRepository
func NewGormItemBatchRepository(db *gorm.DB) *GormItemBatchRepository {
	return &GormItemBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormItemBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.ItemBatch, error) {
	var batch inventory.ItemBatch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindActiveByItem returns batches with remaining stock for an item, oldest
// batch number first so allocation approximates FIFO.
func (r *GormItemBatchRepository) FindActiveByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.ItemBatch, error) {
	var batches []inventory.ItemBatch
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND remaining_quantity > 0", itemID).
		Order("batch_number ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindByItem returns all batches of an item, batch number ascending
func (r *GormItemBatchRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.ItemBatch, error) {
	var batches []inventory.ItemBatch
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("batch_number ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// Save creates or updates a batch
func (r *GormItemBatchRepository) Save(ctx context.Context, batch *inventory.ItemBatch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// SaveAll persists multiple batches
func (r *GormItemBatchRepository) SaveAll(ctx context.Context, batches []*inventory.ItemBatch) error {
	for _, batch := range batches {
		if err := r.db.WithContext(ctx).Save(batch).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes a batch
func (r *GormItemBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.ItemBatch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormItemBatchRepository implements ItemBatchRepository
var _ inventory.ItemBatchRepository = (*GormItemBatchRepository)(nil)
