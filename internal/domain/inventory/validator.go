package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shortfall describes one transaction line that current stock cannot satisfy
type Shortfall struct {
	ItemID    uuid.UUID       `json:"item_id"`
	BatchID   *uuid.UUID      `json:"batch_id,omitempty"`
	Requested decimal.Decimal `json:"requested"`
	Available decimal.Decimal `json:"available"`
	Shortfall decimal.Decimal `json:"shortfall"`
}

// StockValidator recomputes whether a transaction's outgoing lines are still
// satisfiable. It is pure and read-only: the same check runs lock-free for
// UI indicators and again under the item locks at completion time.
type StockValidator struct{}

// NewStockValidator creates a new StockValidator
func NewStockValidator() *StockValidator {
	return &StockValidator{}
}

// CheckSufficiency compares the transaction's demand against current stock.
// Demand is aggregated before comparing, so two lines drawing from the same
// pool are judged by their combined quantity: per item, the net of all line
// deltas (batch-bound lines draw from the item aggregate too), and per batch,
// the total outgoing quantity of lines bound to it. An empty result means the
// transaction can complete.
func (v *StockValidator) CheckSufficiency(tx *Transaction, items map[uuid.UUID]*Item, batches map[uuid.UUID]*ItemBatch) []Shortfall {
	itemNet := make(map[uuid.UUID]decimal.Decimal)
	batchDraw := make(map[uuid.UUID]decimal.Decimal)
	batchItem := make(map[uuid.UUID]uuid.UUID)
	var itemOrder, batchOrder []uuid.UUID
	for _, line := range tx.Items {
		if _, seen := itemNet[line.ItemID]; !seen {
			itemOrder = append(itemOrder, line.ItemID)
		}
		itemNet[line.ItemID] = itemNet[line.ItemID].Add(line.QuantityChange)

		if line.BatchID != nil && line.IsOutgoing() {
			if _, seen := batchDraw[*line.BatchID]; !seen {
				batchOrder = append(batchOrder, *line.BatchID)
				batchItem[*line.BatchID] = line.ItemID
			}
			batchDraw[*line.BatchID] = batchDraw[*line.BatchID].Add(line.QuantityChange.Abs())
		}
	}

	var shortfalls []Shortfall
	for _, itemID := range itemOrder {
		net := itemNet[itemID]
		if !net.IsNegative() {
			continue
		}
		requested := net.Abs()

		var available decimal.Decimal
		if item, ok := items[itemID]; ok {
			available = item.Quantity
		}
		if requested.GreaterThan(available) {
			shortfalls = append(shortfalls, Shortfall{
				ItemID:    itemID,
				Requested: requested,
				Available: available,
				Shortfall: requested.Sub(available),
			})
		}
	}
	for _, batchID := range batchOrder {
		requested := batchDraw[batchID]

		var available decimal.Decimal
		if batch, ok := batches[batchID]; ok {
			available = batch.RemainingQuantity
		}
		if requested.GreaterThan(available) {
			id := batchID
			shortfalls = append(shortfalls, Shortfall{
				ItemID:    batchItem[batchID],
				BatchID:   &id,
				Requested: requested,
				Available: available,
				Shortfall: requested.Sub(available),
			})
		}
	}
	return shortfalls
}
