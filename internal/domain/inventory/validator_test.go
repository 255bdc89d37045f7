package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockValidator_CheckSufficiency(t *testing.T) {
	validator := NewStockValidator()

	t.Run("empty result when everything is satisfiable", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(50), uuid.New()))
		tx, err := NewTransaction("2026-0001", TransactionTypeDispatch, uuid.New(),
			[]TransactionItem{mustLine(t, item.ID, -10)})
		require.NoError(t, err)

		shortfalls := validator.CheckSufficiency(tx, map[uuid.UUID]*Item{item.ID: item}, nil)

		assert.Empty(t, shortfalls)
	})

	t.Run("reports shortfall against item stock", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(4), uuid.New()))
		tx, err := NewTransaction("2026-0002", TransactionTypeDispatch, uuid.New(),
			[]TransactionItem{mustLine(t, item.ID, -10)})
		require.NoError(t, err)

		shortfalls := validator.CheckSufficiency(tx, map[uuid.UUID]*Item{item.ID: item}, nil)

		require.Len(t, shortfalls, 1)
		assert.Equal(t, item.ID, shortfalls[0].ItemID)
		assert.True(t, shortfalls[0].Requested.Equal(decimal.NewFromInt(10)))
		assert.True(t, shortfalls[0].Available.Equal(decimal.NewFromInt(4)))
		assert.True(t, shortfalls[0].Shortfall.Equal(decimal.NewFromInt(6)))
	})

	t.Run("batch-bound line is limited by the batch remainder", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(100), uuid.New()))
		batch := newTestBatch(t, 1, 5)

		line, err := NewTransactionItem(item.ID, decimal.NewFromInt(-10), &batch.ID, "", nil)
		require.NoError(t, err)
		tx, err := NewTransaction("2026-0003", TransactionTypeDispatch, uuid.New(), []TransactionItem{*line})
		require.NoError(t, err)

		shortfalls := validator.CheckSufficiency(tx,
			map[uuid.UUID]*Item{item.ID: item},
			map[uuid.UUID]*ItemBatch{batch.ID: batch})

		require.Len(t, shortfalls, 1)
		require.NotNil(t, shortfalls[0].BatchID)
		assert.Equal(t, batch.ID, *shortfalls[0].BatchID)
		assert.True(t, shortfalls[0].Available.Equal(decimal.NewFromInt(5)))
	})

	t.Run("lines on the same item are summed before comparing", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(15), uuid.New()))
		tx, err := NewTransaction("2026-0006", TransactionTypeDispatch, uuid.New(),
			[]TransactionItem{mustLine(t, item.ID, -10), mustLine(t, item.ID, -10)})
		require.NoError(t, err)

		shortfalls := validator.CheckSufficiency(tx, map[uuid.UUID]*Item{item.ID: item}, nil)

		require.Len(t, shortfalls, 1)
		assert.Equal(t, item.ID, shortfalls[0].ItemID)
		assert.True(t, shortfalls[0].Requested.Equal(decimal.NewFromInt(20)))
		assert.True(t, shortfalls[0].Available.Equal(decimal.NewFromInt(15)))
		assert.True(t, shortfalls[0].Shortfall.Equal(decimal.NewFromInt(5)))
	})

	t.Run("batch-bound lines on the same batch are summed", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(100), uuid.New()))
		batch := newTestBatch(t, 1, 12)

		first, err := NewTransactionItem(item.ID, decimal.NewFromInt(-8), &batch.ID, "", nil)
		require.NoError(t, err)
		second, err := NewTransactionItem(item.ID, decimal.NewFromInt(-8), &batch.ID, "", nil)
		require.NoError(t, err)
		tx, err := NewTransaction("2026-0007", TransactionTypeDispatch, uuid.New(),
			[]TransactionItem{*first, *second})
		require.NoError(t, err)

		shortfalls := validator.CheckSufficiency(tx,
			map[uuid.UUID]*Item{item.ID: item},
			map[uuid.UUID]*ItemBatch{batch.ID: batch})

		require.Len(t, shortfalls, 1)
		require.NotNil(t, shortfalls[0].BatchID)
		assert.True(t, shortfalls[0].Requested.Equal(decimal.NewFromInt(16)))
		assert.True(t, shortfalls[0].Available.Equal(decimal.NewFromInt(12)))
	})

	t.Run("bound lines draw from the item aggregate as well", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(30), uuid.New()))
		batch := newTestBatch(t, 1, 20)

		bound, err := NewTransactionItem(item.ID, decimal.NewFromInt(-20), &batch.ID, "", nil)
		require.NoError(t, err)
		tx, err := NewTransaction("2026-0008", TransactionTypeDispatch, uuid.New(),
			[]TransactionItem{*bound, mustLine(t, item.ID, -30)})
		require.NoError(t, err)

		shortfalls := validator.CheckSufficiency(tx,
			map[uuid.UUID]*Item{item.ID: item},
			map[uuid.UUID]*ItemBatch{batch.ID: batch})

		// The batch covers its 20, but the item only holds 30 against a
		// combined draw of 50.
		require.Len(t, shortfalls, 1)
		assert.Nil(t, shortfalls[0].BatchID)
		assert.True(t, shortfalls[0].Requested.Equal(decimal.NewFromInt(50)))
		assert.True(t, shortfalls[0].Available.Equal(decimal.NewFromInt(30)))
	})

	t.Run("incoming lines are ignored", func(t *testing.T) {
		tx, err := NewTransaction("2026-0004", TransactionTypeReceive, uuid.New(),
			[]TransactionItem{mustLine(t, uuid.New(), 100)})
		require.NoError(t, err)

		shortfalls := validator.CheckSufficiency(tx, nil, nil)

		assert.Empty(t, shortfalls)
	})

	t.Run("unknown item counts as zero available", func(t *testing.T) {
		tx, err := NewTransaction("2026-0005", TransactionTypeDispatch, uuid.New(),
			[]TransactionItem{mustLine(t, uuid.New(), -1)})
		require.NoError(t, err)

		shortfalls := validator.CheckSufficiency(tx, nil, nil)

		require.Len(t, shortfalls, 1)
		assert.True(t, shortfalls[0].Available.IsZero())
	})
}
