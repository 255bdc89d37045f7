package inventory

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchAllocation pairs a batch with the quantity drawn from it
type BatchAllocation struct {
	Batch    *ItemBatch
	Quantity decimal.Decimal
}

// BatchAllocator allocates outgoing quantities against item batches in FIFO
// order, approximated by ascending batch number.
type BatchAllocator struct{}

// NewBatchAllocator creates a new BatchAllocator
func NewBatchAllocator() *BatchAllocator {
	return &BatchAllocator{}
}

// ListActiveBatches returns the batches with remaining stock, oldest first
func (a *BatchAllocator) ListActiveBatches(batches []ItemBatch) []ItemBatch {
	active := make([]ItemBatch, 0, len(batches))
	for _, b := range batches {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].BatchNumber < active[j].BatchNumber
	})
	return active
}

// ReserveFromBatch takes quantity out of one specific batch
func (a *BatchAllocator) ReserveFromBatch(batch *ItemBatch, quantity decimal.Decimal) error {
	return batch.Reserve(quantity)
}

// ReleaseToBatch restores quantity to a batch, e.g. when reversing a
// completed movement
func (a *BatchAllocator) ReleaseToBatch(batch *ItemBatch, quantity decimal.Decimal) error {
	return batch.Release(quantity)
}

// AllocateFIFO plans how to satisfy an outgoing quantity across batches in
// FIFO order without mutating any of them. The caller applies the plan by
// reserving each allocation. Fails when the batches cannot cover the
// quantity, leaving everything untouched.
func (a *BatchAllocator) AllocateFIFO(itemID uuid.UUID, batches []*ItemBatch, quantity decimal.Decimal) ([]BatchAllocation, error) {
	ordered := make([]*ItemBatch, 0, len(batches))
	available := decimal.Zero
	for _, b := range batches {
		if b.IsActive() {
			ordered = append(ordered, b)
			available = available.Add(b.RemainingQuantity)
		}
	}
	if quantity.GreaterThan(available) {
		return nil, NewInsufficientStockError(itemID, quantity, available)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].BatchNumber < ordered[j].BatchNumber
	})

	var allocations []BatchAllocation
	remaining := quantity
	for _, b := range ordered {
		if remaining.IsZero() {
			break
		}
		take := decimal.Min(remaining, b.RemainingQuantity)
		allocations = append(allocations, BatchAllocation{Batch: b, Quantity: take})
		remaining = remaining.Sub(take)
	}
	return allocations, nil
}
