package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/stocktier/backend/internal/domain/inventory"
	"github.com/stocktier/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTransactionRepository implements inventory.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByID finds a transaction with its lines by ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Transaction, error) {
	var tx inventory.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindByReference finds a transaction by its document number
func (r *GormTransactionRepository) FindByReference(ctx context.Context, referenceNumber string) (*inventory.Transaction, error) {
	var tx inventory.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&tx, "reference_number = ?", referenceNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindByStatus lists transactions in a lifecycle state
func (r *GormTransactionRepository) FindByStatus(ctx context.Context, status inventory.TransactionStatus, filter shared.Filter) ([]inventory.Transaction, error) {
	var txs []inventory.Transaction
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&inventory.Transaction{}).Where("status = ?", status),
		filter,
	)
	query = applyPagination(query, filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)

	if err := query.Preload("Items").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByCustomer lists transactions attached to a customer
func (r *GormTransactionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]inventory.Transaction, error) {
	var txs []inventory.Transaction
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&inventory.Transaction{}).Where("customer_id = ?", customerID),
		filter,
	)
	query = applyPagination(query, filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)

	if err := query.Preload("Items").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindAll lists all transactions
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Transaction, error) {
	var txs []inventory.Transaction
	query := r.applyFilters(r.db.WithContext(ctx).Model(&inventory.Transaction{}), filter)
	query = applyPagination(query, filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)

	if err := query.Preload("Items").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Count counts transactions matching the filter
func (r *GormTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(r.db.WithContext(ctx).Model(&inventory.Transaction{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextReferenceSequence returns the next document number for a year.
// Sequences restart at 1 each year. The zero-padded suffix keeps the
// lexicographic maximum equal to the numeric maximum.
func (r *GormTransactionRepository) NextReferenceSequence(ctx context.Context, year int) (int, error) {
	var maxRef sql.NullString
	if err := r.db.WithContext(ctx).
		Model(&inventory.Transaction{}).
		Select("MAX(reference_number)").
		Where("reference_number LIKE ?", fmt.Sprintf("%d-%%", year)).
		Scan(&maxRef).Error; err != nil {
		return 0, err
	}
	if !maxRef.Valid || maxRef.String == "" {
		return 1, nil
	}

	idx := strings.LastIndex(maxRef.String, "-")
	if idx < 0 {
		return 0, fmt.Errorf("malformed reference number %q", maxRef.String)
	}
	seq, err := strconv.Atoi(maxRef.String[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("malformed reference number %q: %w", maxRef.String, err)
	}
	return seq + 1, nil
}

// Save creates or updates a transaction together with its lines
func (r *GormTransactionRepository) Save(ctx context.Context, transaction *inventory.Transaction) error {
	return r.db.WithContext(ctx).Save(transaction).Error
}

// SaveWithLock persists a state change with optimistic locking against the
// expected version. Lines are immutable after creation and are not touched.
func (r *GormTransactionRepository) SaveWithLock(ctx context.Context, transaction *inventory.Transaction, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(transaction).
		Where("id = ? AND version = ?", transaction.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":       transaction.Status,
			"due_date":     transaction.DueDate,
			"priority":     transaction.Priority,
			"notes":        transaction.Notes,
			"completed_at": transaction.CompletedAt,
			"cancelled_at": transaction.CancelledAt,
			"version":      transaction.Version,
			"updated_at":   transaction.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.staleWriteError(ctx, transaction, expectedVersion)
	}

	// Batch bindings assigned during completion live on the lines.
	for i := range transaction.Items {
		line := &transaction.Items[i]
		if line.BatchID == nil {
			continue
		}
		if err := r.db.WithContext(ctx).
			Model(&inventory.TransactionItem{}).
			Where("id = ?", line.ID).
			Update("batch_id", line.BatchID).Error; err != nil {
			return err
		}
	}
	return nil
}

// staleWriteError classifies a version mismatch. A row that reached a
// terminal status in the meantime lost a Cancel-vs-Complete race, and the
// loser gets the state-transition error; any other stale write is an
// ordinary concurrency conflict.
func (r *GormTransactionRepository) staleWriteError(ctx context.Context, transaction *inventory.Transaction, expectedVersion int) error {
	var current inventory.Transaction
	err := r.db.WithContext(ctx).
		Select("status").
		First(&current, "id = ?", transaction.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if err != nil {
		return err
	}
	if current.Status != inventory.TransactionStatusPending {
		action := "update"
		switch transaction.Status {
		case inventory.TransactionStatusCompleted:
			action = "complete"
		case inventory.TransactionStatusCancelled:
			action = "cancel"
		}
		return inventory.NewInvalidStateTransitionError(transaction.ID, current.Status, action)
	}
	return shared.ErrConcurrencyConflict.WithDetails(map[string]interface{}{
		"transaction_id":   transaction.ID.String(),
		"expected_version": expectedVersion,
	})
}

// Delete deletes a transaction and its lines
func (r *GormTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&inventory.TransactionItem{}, "transaction_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&inventory.Transaction{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyFilters applies transaction-specific filter keys to the query
func (r *GormTransactionRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("reference_number LIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "priority":
			query = query.Where("priority = ?", value)
		case "due_before":
			query = query.Where("due_date IS NOT NULL AND due_date < ?", value)
		case "overdue":
			if value == true {
				query = query.Where("status = ? AND due_date IS NOT NULL AND due_date < CURRENT_TIMESTAMP",
					inventory.TransactionStatusPending)
			}
		}
	}
	return query
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ inventory.TransactionRepository = (*GormTransactionRepository)(nil)
