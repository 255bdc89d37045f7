package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktier/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T) *Item {
	t.Helper()
	item, err := NewItem(uuid.New(), "105-001", "Cooking Oil 1L", "pc", decimal.NewFromInt(10))
	require.NoError(t, err)
	return item
}

func TestNewItem(t *testing.T) {
	t.Run("creates item with zero stock", func(t *testing.T) {
		brandID := uuid.New()

		item, err := NewItem(brandID, "105-001", "Cooking Oil 1L", "pc", decimal.NewFromInt(10))

		require.NoError(t, err)
		assert.Equal(t, brandID, item.BrandID)
		assert.Equal(t, "105-001", item.SKU)
		assert.True(t, item.Quantity.IsZero())
		assert.Equal(t, 1, item.NextBatchNumber)
	})

	t.Run("rejects nil brand", func(t *testing.T) {
		_, err := NewItem(uuid.Nil, "105-001", "Cooking Oil 1L", "pc", decimal.Zero)

		require.Error(t, err)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewItem(uuid.New(), "105-001", "  ", "pc", decimal.Zero)

		require.Error(t, err)
	})

	t.Run("rejects negative threshold", func(t *testing.T) {
		_, err := NewItem(uuid.New(), "105-001", "Cooking Oil 1L", "pc", decimal.NewFromInt(-1))

		require.Error(t, err)
	})
}

func TestItem_ApplyDelta(t *testing.T) {
	t.Run("applies positive delta and emits StockAdjusted", func(t *testing.T) {
		item := newTestItem(t)
		txID := uuid.New()

		err := item.ApplyDelta(decimal.NewFromInt(100), txID)

		require.NoError(t, err)
		assert.True(t, item.Quantity.Equal(decimal.NewFromInt(100)))

		events := item.GetDomainEvents()
		require.Len(t, events, 1)
		adjusted, ok := events[0].(*StockAdjustedEvent)
		require.True(t, ok)
		assert.Equal(t, txID, adjusted.TransactionID)
		assert.True(t, adjusted.QuantityBefore.IsZero())
		assert.True(t, adjusted.QuantityAfter.Equal(decimal.NewFromInt(100)))
	})

	t.Run("rejects delta that would go negative", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(5), uuid.New()))
		item.ClearDomainEvents()

		err := item.ApplyDelta(decimal.NewFromInt(-6), uuid.New())

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInsufficientStock, domainErr.Code)
		assert.True(t, item.Quantity.Equal(decimal.NewFromInt(5)))
		assert.Empty(t, item.GetDomainEvents())
	})

	t.Run("emits low stock event when crossing the threshold", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(20), uuid.New()))
		item.ClearDomainEvents()

		err := item.ApplyDelta(decimal.NewFromInt(-12), uuid.New())

		require.NoError(t, err)
		events := item.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeStockAdjusted, events[0].EventType())
		assert.Equal(t, EventTypeStockBelowThreshold, events[1].EventType())
	})

	t.Run("no repeat alert while already below threshold", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(8), uuid.New()))
		item.ClearDomainEvents()

		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(-2), uuid.New()))

		events := item.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeStockAdjusted, events[0].EventType())
	})

	t.Run("increments version", func(t *testing.T) {
		item := newTestItem(t)

		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(1), uuid.New()))

		assert.Equal(t, 2, item.GetVersion())
	})
}

func TestItem_AllocateBatchNumber(t *testing.T) {
	item := newTestItem(t)

	assert.Equal(t, 1, item.AllocateBatchNumber())
	assert.Equal(t, 2, item.AllocateBatchNumber())
	assert.Equal(t, 3, item.AllocateBatchNumber())
	assert.Equal(t, 4, item.NextBatchNumber)
}

func TestItem_IsBelowThreshold(t *testing.T) {
	t.Run("zero threshold disables the alert", func(t *testing.T) {
		item, err := NewItem(uuid.New(), "105-002", "Soy Sauce", "pc", decimal.Zero)
		require.NoError(t, err)

		assert.False(t, item.IsBelowThreshold())
	})

	t.Run("at threshold is not below", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(10), uuid.New()))

		assert.False(t, item.IsBelowThreshold())
	})
}
