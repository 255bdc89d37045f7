package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryapp "github.com/stocktier/backend/internal/application/inventory"
	"github.com/stocktier/backend/internal/domain/inventory"
	"github.com/stocktier/backend/internal/interfaces/http/dto"
)

type noopLockManager struct{}

func (noopLockManager) AcquireAll(ctx context.Context, itemIDs []uuid.UUID) (func(), error) {
	return func() {}, nil
}

type ledgerFixture struct {
	items   *mockItemRepository
	batches *mockItemBatchRepository
	txs     *mockTransactionRepository
	service *inventoryapp.LedgerService
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		items:   newMockItemRepository(),
		batches: newMockItemBatchRepository(),
		txs:     newMockTransactionRepository(),
	}
	scope := inventoryapp.NewNoOpTransactionScope(f.items, f.batches, f.txs)
	f.service = inventoryapp.NewLedgerService(f.items, f.batches, f.txs, scope, noopLockManager{})
	return f
}

func (f *ledgerFixture) addItem(t *testing.T, sku string) *inventory.Item {
	t.Helper()
	item, err := inventory.NewItem(uuid.New(), sku, "Oil Filter", "pc", decimal.NewFromInt(5))
	require.NoError(t, err)
	require.NoError(t, f.items.Save(t.Context(), item))
	return item
}

func actorHeaders() map[string]string {
	return map[string]string{
		HeaderActorID:   uuid.NewString(),
		HeaderActorTier: "CD",
	}
}

func TestTransactionHandler_Receive(t *testing.T) {
	f := newLedgerFixture()
	engine := newTestRouter(NewTransactionHandler(f.service))
	item := f.addItem(t, "105-001")

	t.Run("receives stock into a new batch", func(t *testing.T) {
		w := performJSON(t, engine, http.MethodPost, "/api/v1/transactions/receive", gin.H{
			"lines": []gin.H{{"item_id": item.ID.String(), "quantity": 10}},
		}, actorHeaders())

		require.Equal(t, http.StatusCreated, w.Code)
		var tx inventoryapp.TransactionResponse
		remarshal(t, decodeResponse(t, w).Data, &tx)
		assert.Equal(t, "COMPLETED", tx.Status)
		assert.Equal(t, fmt.Sprintf("%d-0001", time.Now().Year()), tx.ReferenceNumber)

		stored, err := f.items.FindByID(t.Context(), item.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(10).Equal(stored.Quantity))

		batches, err := f.batches.FindActiveByItem(t.Context(), item.ID)
		require.NoError(t, err)
		require.Len(t, batches, 1)
		assert.Equal(t, 1, batches[0].BatchNumber)
	})

	t.Run("missing actor header is unauthorized", func(t *testing.T) {
		w := performJSON(t, engine, http.MethodPost, "/api/v1/transactions/receive", gin.H{
			"lines": []gin.H{{"item_id": item.ID.String(), "quantity": 10}},
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-positive quantity is 400", func(t *testing.T) {
		w := performJSON(t, engine, http.MethodPost, "/api/v1/transactions/receive", gin.H{
			"lines": []gin.H{{"item_id": item.ID.String(), "quantity": -1}},
		}, actorHeaders())
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTransactionHandler_DispatchLifecycle(t *testing.T) {
	f := newLedgerFixture()
	engine := newTestRouter(NewTransactionHandler(f.service))
	item := f.addItem(t, "105-001")

	receive := performJSON(t, engine, http.MethodPost, "/api/v1/transactions/receive", gin.H{
		"lines": []gin.H{{"item_id": item.ID.String(), "quantity": 10}},
	}, actorHeaders())
	require.Equal(t, http.StatusCreated, receive.Code)

	createDispatch := func(t *testing.T, qty float64) inventoryapp.TransactionResponse {
		t.Helper()
		w := performJSON(t, engine, http.MethodPost, "/api/v1/transactions", gin.H{
			"type": "DISPATCH",
			"items": []gin.H{{
				"item_id":         item.ID.String(),
				"quantity_change": -qty,
				"pricing_tier":    "RS",
				"unit_price":      120.0,
			}},
		}, actorHeaders())
		require.Equal(t, http.StatusCreated, w.Code)
		var tx inventoryapp.TransactionResponse
		remarshal(t, decodeResponse(t, w).Data, &tx)
		return tx
	}

	t.Run("create leaves stock untouched", func(t *testing.T) {
		tx := createDispatch(t, 3)
		assert.Equal(t, "PENDING", tx.Status)

		stored, err := f.items.FindByID(t.Context(), item.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(10).Equal(stored.Quantity))
	})

	t.Run("sufficiency check reports no shortfall", func(t *testing.T) {
		tx := createDispatch(t, 3)
		w := performJSON(t, engine, http.MethodGet, "/api/v1/transactions/"+tx.ID.String()+"/sufficiency", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var result struct {
			Sufficient bool                             `json:"sufficient"`
			Shortfalls []inventoryapp.ShortfallResponse `json:"shortfalls"`
		}
		remarshal(t, decodeResponse(t, w).Data, &result)
		assert.True(t, result.Sufficient)
	})

	t.Run("complete applies the delta once", func(t *testing.T) {
		tx := createDispatch(t, 3)
		w := performJSON(t, engine, http.MethodPost, "/api/v1/transactions/"+tx.ID.String()+"/complete", nil, actorHeaders())
		require.Equal(t, http.StatusOK, w.Code)
		var completed inventoryapp.TransactionResponse
		remarshal(t, decodeResponse(t, w).Data, &completed)
		assert.Equal(t, "COMPLETED", completed.Status)
		require.NotNil(t, completed.CompletedAt)

		stored, err := f.items.FindByID(t.Context(), item.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(7).Equal(stored.Quantity))

		// a second complete must not move stock again
		again := performJSON(t, engine, http.MethodPost, "/api/v1/transactions/"+tx.ID.String()+"/complete", nil, actorHeaders())
		require.Equal(t, http.StatusUnprocessableEntity, again.Code)
		assert.Equal(t, dto.CodeInvalidStateTransition, decodeResponse(t, again).Error.Code)
	})

	t.Run("overdraw is rejected with shortfall details", func(t *testing.T) {
		tx := createDispatch(t, 100)
		w := performJSON(t, engine, http.MethodPost, "/api/v1/transactions/"+tx.ID.String()+"/complete", nil, actorHeaders())
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.CodeInsufficientStock, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.Details)
	})

	t.Run("cancel then delete is refused", func(t *testing.T) {
		tx := createDispatch(t, 1)
		cancel := performJSON(t, engine, http.MethodPost, "/api/v1/transactions/"+tx.ID.String()+"/cancel", nil, actorHeaders())
		require.Equal(t, http.StatusOK, cancel.Code)
		var cancelled inventoryapp.TransactionResponse
		remarshal(t, decodeResponse(t, cancel).Data, &cancelled)
		assert.Equal(t, "CANCELLED", cancelled.Status)

		del := performJSON(t, engine, http.MethodDelete, "/api/v1/transactions/"+tx.ID.String(), nil, actorHeaders())
		require.Equal(t, http.StatusUnprocessableEntity, del.Code)
		assert.Equal(t, dto.CodeOnlyPendingDeletable, decodeResponse(t, del).Error.Code)
	})

	t.Run("pending transaction can be deleted", func(t *testing.T) {
		tx := createDispatch(t, 1)
		del := performJSON(t, engine, http.MethodDelete, "/api/v1/transactions/"+tx.ID.String(), nil, actorHeaders())
		require.Equal(t, http.StatusNoContent, del.Code)

		get := performJSON(t, engine, http.MethodGet, "/api/v1/transactions/"+tx.ID.String(), nil, nil)
		assert.Equal(t, http.StatusNotFound, get.Code)
	})
}

func TestTransactionHandler_Create_Validation(t *testing.T) {
	f := newLedgerFixture()
	engine := newTestRouter(NewTransactionHandler(f.service))
	item := f.addItem(t, "105-001")

	t.Run("unknown type is 400", func(t *testing.T) {
		w := performJSON(t, engine, http.MethodPost, "/api/v1/transactions", gin.H{
			"type":  "TELEPORT",
			"items": []gin.H{{"item_id": item.ID.String(), "quantity_change": -1}},
		}, actorHeaders())
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.CodeInvalidInput, decodeResponse(t, w).Error.Code)
	})

	t.Run("empty item list is 400", func(t *testing.T) {
		w := performJSON(t, engine, http.MethodPost, "/api/v1/transactions", gin.H{
			"type":  "DISPATCH",
			"items": []gin.H{},
		}, actorHeaders())
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get by reference", func(t *testing.T) {
		w := performJSON(t, engine, http.MethodPost, "/api/v1/transactions", gin.H{
			"type":  "RESERVE",
			"items": []gin.H{{"item_id": item.ID.String(), "quantity_change": -1}},
		}, actorHeaders())
		require.Equal(t, http.StatusCreated, w.Code)
		var tx inventoryapp.TransactionResponse
		remarshal(t, decodeResponse(t, w).Data, &tx)

		got := performJSON(t, engine, http.MethodGet, "/api/v1/transactions/reference/"+tx.ReferenceNumber, nil, nil)
		require.Equal(t, http.StatusOK, got.Code)
	})
}
