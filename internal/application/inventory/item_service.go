package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktier/backend/internal/domain/inventory"
	"github.com/stocktier/backend/internal/domain/partner"
	"github.com/stocktier/backend/internal/domain/shared"
)

// ItemService handles item registration and read-side queries. Stock levels
// are never written here; only completed ledger transactions move them.
type ItemService struct {
	itemRepo  inventory.ItemRepository
	batchRepo inventory.ItemBatchRepository
	brandRepo partner.BrandRepository
}

// NewItemService creates a new ItemService
func NewItemService(
	itemRepo inventory.ItemRepository,
	batchRepo inventory.ItemBatchRepository,
	brandRepo partner.BrandRepository,
) *ItemService {
	return &ItemService{
		itemRepo:  itemRepo,
		batchRepo: batchRepo,
		brandRepo: brandRepo,
	}
}

// CreateItem registers a new item under a brand. The SKU is derived from the
// brand code and the item's sequence within the brand.
func (s *ItemService) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, req.BrandID)
	if err != nil {
		return nil, err
	}

	count, err := s.itemRepo.CountByBrand(ctx, brand.ID)
	if err != nil {
		return nil, err
	}

	item, err := inventory.NewItem(brand.ID, brand.FormatSKU(int(count)+1), req.Name, req.UnitOfMeasure, req.ThresholdValue)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToItemResponse(item)
	return &resp, nil
}

// GetItem returns one item by ID
func (s *ItemService) GetItem(ctx context.Context, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// GetItemBySKU returns one item by SKU
func (s *ItemService) GetItemBySKU(ctx context.Context, sku string) (*ItemResponse, error) {
	item, err := s.itemRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// ListItems returns items matching the filter, optionally scoped to a brand
func (s *ItemService) ListItems(ctx context.Context, brandID *uuid.UUID, filter shared.Filter) ([]ItemResponse, int64, error) {
	var (
		items []inventory.Item
		err   error
	)
	if brandID != nil {
		items, err = s.itemRepo.FindByBrand(ctx, *brandID, filter)
	} else {
		items, err = s.itemRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, 0, err
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out, total, nil
}

// ListBelowThreshold returns items whose stock sits at or under their alert
// level, for the reorder report
func (s *ItemService) ListBelowThreshold(ctx context.Context) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindBelowThreshold(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out, nil
}

// ListBatches returns the batches of an item, batch number ascending
func (s *ItemService) ListBatches(ctx context.Context, itemID uuid.UUID, activeOnly bool) ([]BatchResponse, error) {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	var (
		batches []inventory.ItemBatch
		err     error
	)
	if activeOnly {
		batches, err = s.batchRepo.FindActiveByItem(ctx, itemID)
	} else {
		batches, err = s.batchRepo.FindByItem(ctx, itemID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]BatchResponse, len(batches))
	for i := range batches {
		out[i] = ToBatchResponse(&batches[i])
	}
	return out, nil
}

// UpdateThreshold changes the low-stock alert level of an item
func (s *ItemService) UpdateThreshold(ctx context.Context, itemID uuid.UUID, threshold decimal.Decimal) (*ItemResponse, error) {
	if threshold.IsNegative() {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "threshold_value",
			"reason": "threshold cannot be negative",
		})
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item.ThresholdValue = threshold
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToItemResponse(item)
	return &resp, nil
}
