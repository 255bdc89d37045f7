package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktier/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBatch(t *testing.T, number int, quantity int64) *ItemBatch {
	t.Helper()
	batch, err := NewItemBatch(uuid.New(), number, decimal.NewFromInt(quantity), nil)
	require.NoError(t, err)
	return batch
}

func TestNewItemBatch(t *testing.T) {
	t.Run("creates full batch", func(t *testing.T) {
		itemID := uuid.New()

		batch, err := NewItemBatch(itemID, 1, decimal.NewFromInt(50), nil)

		require.NoError(t, err)
		assert.Equal(t, itemID, batch.ItemID)
		assert.Equal(t, 1, batch.BatchNumber)
		assert.True(t, batch.RemainingQuantity.Equal(batch.InitialQuantity))
		assert.True(t, batch.IsActive())
	})

	t.Run("rejects batch number below 1", func(t *testing.T) {
		_, err := NewItemBatch(uuid.New(), 0, decimal.NewFromInt(50), nil)

		require.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewItemBatch(uuid.New(), 1, decimal.Zero, nil)

		require.Error(t, err)
	})
}

func TestItemBatch_Reserve(t *testing.T) {
	t.Run("decrements remaining quantity", func(t *testing.T) {
		batch := newTestBatch(t, 1, 15)

		err := batch.Reserve(decimal.NewFromInt(10))

		require.NoError(t, err)
		assert.True(t, batch.RemainingQuantity.Equal(decimal.NewFromInt(5)))
		assert.True(t, batch.ConsumedQuantity().Equal(decimal.NewFromInt(10)))
	})

	t.Run("reserving everything empties the batch", func(t *testing.T) {
		batch := newTestBatch(t, 1, 15)

		require.NoError(t, batch.Reserve(decimal.NewFromInt(15)))

		assert.False(t, batch.IsActive())
	})

	t.Run("over-reservation fails whole and leaves state unchanged", func(t *testing.T) {
		batch := newTestBatch(t, 3, 15)

		err := batch.Reserve(decimal.NewFromInt(20))

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInsufficientBatchStock, domainErr.Code)
		assert.Equal(t, 3, domainErr.Details["batch_number"])
		assert.Equal(t, "20", domainErr.Details["requested"])
		assert.True(t, batch.RemainingQuantity.Equal(decimal.NewFromInt(15)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		batch := newTestBatch(t, 1, 15)

		require.Error(t, batch.Reserve(decimal.Zero))
		require.Error(t, batch.Reserve(decimal.NewFromInt(-1)))
	})
}

func TestItemBatch_Release(t *testing.T) {
	t.Run("restores reserved quantity", func(t *testing.T) {
		batch := newTestBatch(t, 1, 15)
		require.NoError(t, batch.Reserve(decimal.NewFromInt(10)))

		err := batch.Release(decimal.NewFromInt(10))

		require.NoError(t, err)
		assert.True(t, batch.RemainingQuantity.Equal(decimal.NewFromInt(15)))
	})

	t.Run("release past the initial quantity is a bookkeeping fault", func(t *testing.T) {
		batch := newTestBatch(t, 2, 15)
		require.NoError(t, batch.Reserve(decimal.NewFromInt(5)))

		err := batch.Release(decimal.NewFromInt(6))

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeBatchOverRelease, domainErr.Code)
		assert.True(t, batch.RemainingQuantity.Equal(decimal.NewFromInt(10)))
	})
}

func TestItemBatch_IsExpired(t *testing.T) {
	t.Run("no expiry date never expires", func(t *testing.T) {
		batch := newTestBatch(t, 1, 15)

		assert.False(t, batch.IsExpired())
	})

	t.Run("past expiry date", func(t *testing.T) {
		expired := time.Now().Add(-24 * time.Hour)
		batch, err := NewItemBatch(uuid.New(), 1, decimal.NewFromInt(10), &expired)
		require.NoError(t, err)

		assert.True(t, batch.IsExpired())
	})
}
