package inventory

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktier/backend/internal/domain/shared"
)

// NewInsufficientStockError creates an error naming the item and quantities
// that made an outgoing movement unsatisfiable.
func NewInsufficientStockError(itemID uuid.UUID, requested, available decimal.Decimal) *shared.DomainError {
	return &shared.DomainError{
		Code: shared.CodeInsufficientStock,
		Message: fmt.Sprintf("Insufficient stock for item %s: requested %s, available %s",
			itemID, requested, available),
		Details: map[string]interface{}{
			"item_id":   itemID.String(),
			"requested": requested.String(),
			"available": available.String(),
		},
	}
}

// NewInsufficientBatchStockError creates an error for a reservation exceeding
// a batch's remaining quantity. No partial reservation is made.
func NewInsufficientBatchStockError(batchID uuid.UUID, batchNumber int, requested, remaining decimal.Decimal) *shared.DomainError {
	return &shared.DomainError{
		Code: shared.CodeInsufficientBatchStock,
		Message: fmt.Sprintf("Insufficient stock in batch %d: requested %s, remaining %s",
			batchNumber, requested, remaining),
		Details: map[string]interface{}{
			"batch_id":     batchID.String(),
			"batch_number": batchNumber,
			"requested":    requested.String(),
			"remaining":    remaining.String(),
		},
	}
}

// NewBatchOverReleaseError creates an error for a release that would push a
// batch past its initial quantity. This indicates inconsistent bookkeeping,
// not a user mistake.
func NewBatchOverReleaseError(batchID uuid.UUID, batchNumber int, release, remaining, initial decimal.Decimal) *shared.DomainError {
	return &shared.DomainError{
		Code: shared.CodeBatchOverRelease,
		Message: fmt.Sprintf("Releasing %s to batch %d would exceed its initial quantity %s (remaining %s)",
			release, batchNumber, initial, remaining),
		Details: map[string]interface{}{
			"batch_id":     batchID.String(),
			"batch_number": batchNumber,
			"release":      release.String(),
			"remaining":    remaining.String(),
			"initial":      initial.String(),
		},
	}
}

// NewInvalidStateTransitionError creates an error for a transaction operation
// attempted outside the Pending state.
func NewInvalidStateTransitionError(transactionID uuid.UUID, from TransactionStatus, action string) *shared.DomainError {
	return &shared.DomainError{
		Code:    shared.CodeInvalidStateTransition,
		Message: fmt.Sprintf("Cannot %s transaction %s in status %s", action, transactionID, from),
		Details: map[string]interface{}{
			"transaction_id": transactionID.String(),
			"status":         string(from),
			"action":         action,
		},
	}
}

// NewOnlyPendingDeletableError creates an error for deleting a transaction
// that already left the Pending state.
func NewOnlyPendingDeletableError(transactionID uuid.UUID, status TransactionStatus) *shared.DomainError {
	return &shared.DomainError{
		Code:    shared.CodeOnlyPendingDeletable,
		Message: fmt.Sprintf("Only pending transactions can be deleted; transaction %s is %s", transactionID, status),
		Details: map[string]interface{}{
			"transaction_id": transactionID.String(),
			"status":         string(status),
		},
	}
}
