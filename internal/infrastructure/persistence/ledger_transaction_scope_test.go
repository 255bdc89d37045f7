package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appinv "github.com/stocktier/backend/internal/application/inventory"
	"github.com/stocktier/backend/internal/domain/inventory"
	"github.com/stocktier/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTransactionScope_Execute(t *testing.T) {
	t.Run("commits all writes on success", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormTransactionScope(db)
		ctx := context.Background()

		item := newTestItem(t, uuid.New(), "105-001")
		err := scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
			if err := repos.ItemRepo().Save(ctx, item); err != nil {
				return err
			}
			batch, err := inventory.NewItemBatch(item.ID, item.AllocateBatchNumber(), decimal.NewFromInt(10), nil)
			if err != nil {
				return err
			}
			return repos.BatchRepo().Save(ctx, batch)
		})
		require.NoError(t, err)

		found, err := NewGormItemRepository(db).FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "105-001", found.SKU)

		batches, err := NewGormItemBatchRepository(db).FindByItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Len(t, batches, 1)
	})

	t.Run("rolls back every write on error", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormTransactionScope(db)
		ctx := context.Background()

		item := newTestItem(t, uuid.New(), "105-001")
		boom := errors.New("allocation failed")
		err := scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
			if err := repos.ItemRepo().Save(ctx, item); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = NewGormItemRepository(db).FindByID(ctx, item.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("repositories inside share one transaction", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormTransactionScope(db)
		ctx := context.Background()

		tx := newDispatchTransaction(t, "2026-0001", uuid.New())
		require.NoError(t, NewGormTransactionRepository(db).Save(ctx, tx))

		// a failed completion must leave the transaction pending
		err := scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
			fresh, err := repos.TransactionRepo().FindByID(ctx, tx.ID)
			if err != nil {
				return err
			}
			expected := fresh.GetVersion()
			if err := fresh.Complete(); err != nil {
				return err
			}
			if err := repos.TransactionRepo().SaveWithLock(ctx, fresh, expected); err != nil {
				return err
			}
			return errors.New("stock check failed")
		})
		require.Error(t, err)

		found, err := NewGormTransactionRepository(db).FindByID(ctx, tx.ID)
		require.NoError(t, err)
		assert.Equal(t, inventory.TransactionStatusPending, found.Status)
	})
}
