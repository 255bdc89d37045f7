package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktier/backend/internal/domain/inventory"
)

// CreateItemRequest is the input for registering a new item
type CreateItemRequest struct {
	BrandID        uuid.UUID       `json:"brand_id"`
	Name           string          `json:"name"`
	UnitOfMeasure  string          `json:"unit_of_measure"`
	ThresholdValue decimal.Decimal `json:"threshold_value"`
}

// TransactionLineRequest is one requested line of a new transaction
type TransactionLineRequest struct {
	ItemID         uuid.UUID        `json:"item_id"`
	QuantityChange decimal.Decimal  `json:"quantity_change"`
	BatchID        *uuid.UUID       `json:"batch_id,omitempty"`
	PricingTier    string           `json:"pricing_tier,omitempty"`
	UnitPrice      *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateTransactionRequest is the input for creating a ledger transaction
type CreateTransactionRequest struct {
	Type       string                   `json:"type"`
	CustomerID *uuid.UUID               `json:"customer_id,omitempty"`
	ActorTier  string                   `json:"actor_tier,omitempty"`
	CreatedBy  uuid.UUID                `json:"created_by"`
	DueDate    *time.Time               `json:"due_date,omitempty"`
	Priority   string                   `json:"priority,omitempty"`
	Notes      string                   `json:"notes,omitempty"`
	Items      []TransactionLineRequest `json:"items"`
}

// ReceiveStockRequest is the input for a receive transaction with new batches
type ReceiveStockRequest struct {
	CreatedBy uuid.UUID          `json:"created_by"`
	Notes     string             `json:"notes,omitempty"`
	Lines     []ReceiveStockLine `json:"lines"`
}

// ReceiveStockLine is one received lot
type ReceiveStockLine struct {
	ItemID     uuid.UUID       `json:"item_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
}

// TransactionItemResponse is one line of a transaction as returned to callers
type TransactionItemResponse struct {
	ID             uuid.UUID        `json:"id"`
	ItemID         uuid.UUID        `json:"item_id"`
	QuantityChange decimal.Decimal  `json:"quantity_change"`
	BatchID        *uuid.UUID       `json:"batch_id,omitempty"`
	PricingTier    string           `json:"pricing_tier,omitempty"`
	UnitPrice      *decimal.Decimal `json:"unit_price,omitempty"`
	LineTotal      decimal.Decimal  `json:"line_total"`
}

// TransactionResponse is a transaction as returned to callers
type TransactionResponse struct {
	ID              uuid.UUID                 `json:"id"`
	ReferenceNumber string                    `json:"reference_number"`
	Type            string                    `json:"type"`
	Status          string                    `json:"status"`
	CustomerID      *uuid.UUID                `json:"customer_id,omitempty"`
	CreatedBy       uuid.UUID                 `json:"created_by"`
	ActorTier       string                    `json:"actor_tier,omitempty"`
	DueDate         *time.Time                `json:"due_date,omitempty"`
	Priority        string                    `json:"priority"`
	Notes           string                    `json:"notes,omitempty"`
	Items           []TransactionItemResponse `json:"items"`
	Subtotal        decimal.Decimal           `json:"subtotal"`
	VAT             decimal.Decimal           `json:"vat"`
	Total           decimal.Decimal           `json:"total"`
	CreatedAt       time.Time                 `json:"created_at"`
	CompletedAt     *time.Time                `json:"completed_at,omitempty"`
	CancelledAt     *time.Time                `json:"cancelled_at,omitempty"`
}

// ItemResponse is an item as returned to callers
type ItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	BrandID        uuid.UUID       `json:"brand_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	UnitOfMeasure  string          `json:"unit_of_measure"`
	Quantity       decimal.Decimal `json:"quantity"`
	ThresholdValue decimal.Decimal `json:"threshold_value"`
	BelowThreshold bool            `json:"below_threshold"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// BatchResponse is a batch as returned to callers
type BatchResponse struct {
	ID                uuid.UUID       `json:"id"`
	ItemID            uuid.UUID       `json:"item_id"`
	BatchNumber       int             `json:"batch_number"`
	InitialQuantity   decimal.Decimal `json:"initial_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	ReceivedAt        time.Time       `json:"received_at"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
}

// ShortfallResponse reports one unsatisfiable line of a pending transaction
type ShortfallResponse struct {
	ItemID    uuid.UUID       `json:"item_id"`
	BatchID   *uuid.UUID      `json:"batch_id,omitempty"`
	Requested decimal.Decimal `json:"requested"`
	Available decimal.Decimal `json:"available"`
	Shortfall decimal.Decimal `json:"shortfall"`
}

// ToItemResponse converts a domain item to its response form
func ToItemResponse(item *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:             item.ID,
		BrandID:        item.BrandID,
		SKU:            item.SKU,
		Name:           item.Name,
		UnitOfMeasure:  item.UnitOfMeasure,
		Quantity:       item.Quantity,
		ThresholdValue: item.ThresholdValue,
		BelowThreshold: item.IsBelowThreshold(),
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

// ToBatchResponse converts a domain batch to its response form
func ToBatchResponse(batch *inventory.ItemBatch) BatchResponse {
	return BatchResponse{
		ID:                batch.ID,
		ItemID:            batch.ItemID,
		BatchNumber:       batch.BatchNumber,
		InitialQuantity:   batch.InitialQuantity,
		RemainingQuantity: batch.RemainingQuantity,
		ReceivedAt:        batch.ReceivedAt,
		ExpiryDate:        batch.ExpiryDate,
	}
}

// ToTransactionResponse converts a domain transaction to its response form
func ToTransactionResponse(tx *inventory.Transaction, vatRate decimal.Decimal) TransactionResponse {
	items := make([]TransactionItemResponse, len(tx.Items))
	for i, line := range tx.Items {
		items[i] = TransactionItemResponse{
			ID:             line.ID,
			ItemID:         line.ItemID,
			QuantityChange: line.QuantityChange,
			BatchID:        line.BatchID,
			PricingTier:    string(line.PricingTier),
			UnitPrice:      line.UnitPrice,
			LineTotal:      line.LineTotal(),
		}
	}
	subtotal, vat, total := tx.Totals(vatRate)
	return TransactionResponse{
		ID:              tx.ID,
		ReferenceNumber: tx.ReferenceNumber,
		Type:            string(tx.Type),
		Status:          string(tx.Status),
		CustomerID:      tx.CustomerID,
		CreatedBy:       tx.CreatedBy,
		ActorTier:       string(tx.ActorTier),
		DueDate:         tx.DueDate,
		Priority:        string(tx.Priority),
		Notes:           tx.Notes,
		Items:           items,
		Subtotal:        subtotal,
		VAT:             vat,
		Total:           total,
		CreatedAt:       tx.CreatedAt,
		CompletedAt:     tx.CompletedAt,
		CancelledAt:     tx.CancelledAt,
	}
}

// ToShortfallResponses converts validator shortfalls to their response form
func ToShortfallResponses(shortfalls []inventory.Shortfall) []ShortfallResponse {
	out := make([]ShortfallResponse, len(shortfalls))
	for i, s := range shortfalls {
		out[i] = ShortfallResponse{
			ItemID:    s.ItemID,
			BatchID:   s.BatchID,
			Requested: s.Requested,
			Available: s.Available,
			Shortfall: s.Shortfall,
		}
	}
	return out
}
