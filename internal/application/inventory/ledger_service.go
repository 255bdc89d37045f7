package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktier/backend/internal/domain/inventory"
	"github.com/stocktier/backend/internal/domain/pricing"
	"github.com/stocktier/backend/internal/domain/shared"
)

// LedgerService drives the transaction state machine. Pending transactions
// record intent only; stock and batch quantities move exactly once, inside
// Complete, under the item locks and a single database transaction.
type LedgerService struct {
	itemRepo       inventory.ItemRepository
	batchRepo      inventory.ItemBatchRepository
	txRepo         inventory.TransactionRepository
	scope          TransactionScope
	locks          ItemLockManager
	validator      *inventory.StockValidator
	allocator      *inventory.BatchAllocator
	eventPublisher shared.EventPublisher
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	itemRepo inventory.ItemRepository,
	batchRepo inventory.ItemBatchRepository,
	txRepo inventory.TransactionRepository,
	scope TransactionScope,
	locks ItemLockManager,
) *LedgerService {
	return &LedgerService{
		itemRepo:  itemRepo,
		batchRepo: batchRepo,
		txRepo:    txRepo,
		scope:     scope,
		locks:     locks,
		validator: inventory.NewStockValidator(),
		allocator: inventory.NewBatchAllocator(),
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LedgerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create builds a transaction in Pending from the requested lines. Manual
// corrections are completed immediately in the same call; every other type
// waits for an explicit Complete.
func (s *LedgerService) Create(ctx context.Context, req CreateTransactionRequest) (*TransactionResponse, error) {
	txType := inventory.TransactionType(req.Type)
	if !txType.IsValid() {
		return nil, shared.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":  "type",
			"reason": "unknown transaction type",
			"value":  req.Type,
		})
	}

	lines := make([]inventory.TransactionItem, 0, len(req.Items))
	for _, lr := range req.Items {
		var tier pricing.Tier
		if lr.PricingTier != "" {
			parsed, err := pricing.ParseTier(lr.PricingTier)
			if err != nil {
				return nil, err
			}
			tier = parsed
		}
		line, err := inventory.NewTransactionItem(lr.ItemID, lr.QuantityChange, lr.BatchID, tier, lr.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}

	year := time.Now().Year()
	seq, err := s.txRepo.NextReferenceSequence(ctx, year)
	if err != nil {
		return nil, err
	}

	tx, err := inventory.NewTransaction(inventory.FormatReferenceNumber(year, seq), txType, req.CreatedBy, lines)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != nil {
		var actorTier pricing.Tier
		if req.ActorTier != "" {
			actorTier, err = pricing.ParseTier(req.ActorTier)
			if err != nil {
				return nil, err
			}
		}
		tx.AttachCustomer(*req.CustomerID, actorTier)
	}
	if req.DueDate != nil {
		tx.SetDueDate(*req.DueDate)
	}
	if req.Priority != "" {
		if err := tx.SetPriority(inventory.TransactionPriority(req.Priority)); err != nil {
			return nil, err
		}
	}
	tx.Notes = req.Notes

	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, err
	}

	if txType == inventory.TransactionTypeManualCorrection {
		return s.Complete(ctx, tx.ID)
	}

	resp := ToTransactionResponse(tx, inventory.DefaultVATRate)
	return &resp, nil
}

// Receive creates a receive transaction for new lots and completes it in one
// call, creating one batch per line.
func (s *LedgerService) Receive(ctx context.Context, req ReceiveStockRequest) (*TransactionResponse, error) {
	items := make([]TransactionLineRequest, 0, len(req.Lines))
	for _, line := range req.Lines {
		items = append(items, TransactionLineRequest{
			ItemID:         line.ItemID,
			QuantityChange: line.Quantity,
		})
	}
	created, err := s.Create(ctx, CreateTransactionRequest{
		Type:      string(inventory.TransactionTypeReceive),
		CreatedBy: req.CreatedBy,
		Notes:     req.Notes,
		Items:     items,
	})
	if err != nil {
		return nil, err
	}
	return s.complete(ctx, created.ID, req.Lines)
}

// Complete moves a pending transaction to Completed, applying its stock
// delta and batch reservations atomically. The transaction stays Pending
// when validation fails; there is no partial completion.
func (s *LedgerService) Complete(ctx context.Context, transactionID uuid.UUID) (*TransactionResponse, error) {
	return s.complete(ctx, transactionID, nil)
}

func (s *LedgerService) complete(ctx context.Context, transactionID uuid.UUID, receiveLines []ReceiveStockLine) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	release, err := s.locks.AcquireAll(ctx, transactionItemIDs(tx))
	if err != nil {
		return nil, err
	}
	defer release()

	expiryByItem := make(map[uuid.UUID]*time.Time, len(receiveLines))
	for _, line := range receiveLines {
		expiryByItem[line.ItemID] = line.ExpiryDate
	}

	var events []shared.DomainEvent
	var completed *inventory.Transaction

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Re-fetch under the database transaction: state may have moved
		// since the unlocked read.
		fresh, err := repos.TransactionRepo().FindByID(ctx, transactionID)
		if err != nil {
			return err
		}
		if !fresh.IsPending() {
			return inventory.NewInvalidStateTransitionError(fresh.ID, fresh.Status, "complete")
		}

		items := make(map[uuid.UUID]*inventory.Item)
		for _, itemID := range transactionItemIDs(fresh) {
			item, err := repos.ItemRepo().FindByID(ctx, itemID)
			if err != nil {
				return err
			}
			items[itemID] = item
		}
		batches := make(map[uuid.UUID]*inventory.ItemBatch)
		for _, line := range fresh.Items {
			if line.BatchID == nil {
				continue
			}
			batch, err := repos.BatchRepo().FindByID(ctx, *line.BatchID)
			if err != nil {
				return err
			}
			batches[*line.BatchID] = batch
		}

		// Check-then-act is revalidated here, under the locks.
		if shortfalls := s.validator.CheckSufficiency(fresh, items, batches); len(shortfalls) > 0 {
			return insufficientStockError(shortfalls)
		}

		touched := make(map[uuid.UUID]*inventory.ItemBatch)
		for i := range fresh.Items {
			line := &fresh.Items[i]
			switch {
			case line.BatchID != nil && line.IsOutgoing():
				batch := batches[*line.BatchID]
				if err := s.allocator.ReserveFromBatch(batch, line.QuantityChange.Abs()); err != nil {
					return err
				}
				touched[batch.ID] = batch
			case line.BatchID != nil:
				batch := batches[*line.BatchID]
				if err := s.allocator.ReleaseToBatch(batch, line.QuantityChange); err != nil {
					return err
				}
				touched[batch.ID] = batch
			case fresh.Type == inventory.TransactionTypeReceive:
				item := items[line.ItemID]
				batch, err := inventory.NewItemBatch(item.ID, item.AllocateBatchNumber(), line.QuantityChange, expiryByItem[line.ItemID])
				if err != nil {
					return err
				}
				if err := repos.BatchRepo().Save(ctx, batch); err != nil {
					return err
				}
				line.BatchID = &batch.ID
			}
		}

		deltas := make(map[uuid.UUID]decimal.Decimal)
		for _, line := range fresh.Items {
			deltas[line.ItemID] = deltas[line.ItemID].Add(line.QuantityChange)
		}
		for itemID, delta := range deltas {
			item := items[itemID]
			expected := item.GetVersion()
			if err := item.ApplyDelta(delta, fresh.ID); err != nil {
				return err
			}
			if err := repos.ItemRepo().SaveWithLock(ctx, item, expected); err != nil {
				return err
			}
			events = append(events, item.GetDomainEvents()...)
			item.ClearDomainEvents()
		}
		for _, batch := range touched {
			if err := repos.BatchRepo().Save(ctx, batch); err != nil {
				return err
			}
		}

		expected := fresh.GetVersion()
		if err := fresh.Complete(); err != nil {
			return err
		}
		if err := repos.TransactionRepo().SaveWithLock(ctx, fresh, expected); err != nil {
			return err
		}
		events = append(events, fresh.GetDomainEvents()...)
		fresh.ClearDomainEvents()
		completed = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	resp := ToTransactionResponse(completed, inventory.DefaultVATRate)
	return &resp, nil
}

// Cancel abandons a pending transaction. Nothing is reversed because a
// pending transaction never touched stock. Racing a concurrent Complete on
// the same transaction, the first committed transition wins and the loser
// gets an invalid-transition error.
func (s *LedgerService) Cancel(ctx context.Context, transactionID uuid.UUID) (*TransactionResponse, error) {
	var events []shared.DomainEvent
	var cancelled *inventory.Transaction

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		fresh, err := repos.TransactionRepo().FindByID(ctx, transactionID)
		if err != nil {
			return err
		}
		expected := fresh.GetVersion()
		if err := fresh.Cancel(); err != nil {
			return err
		}
		if err := repos.TransactionRepo().SaveWithLock(ctx, fresh, expected); err != nil {
			return err
		}
		events = append(events, fresh.GetDomainEvents()...)
		fresh.ClearDomainEvents()
		cancelled = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	resp := ToTransactionResponse(cancelled, inventory.DefaultVATRate)
	return &resp, nil
}

// Delete removes a transaction outright. Only pending transactions may be
// deleted; completed and cancelled ones are history.
func (s *LedgerService) Delete(ctx context.Context, transactionID uuid.UUID) error {
	tx, err := s.txRepo.FindByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := tx.EnsureDeletable(); err != nil {
		return err
	}
	return s.txRepo.Delete(ctx, transactionID)
}

// CheckSufficiency reruns the stock check for a pending transaction without
// taking locks. It backs UI indicators; Complete revalidates under the locks.
func (s *LedgerService) CheckSufficiency(ctx context.Context, transactionID uuid.UUID) ([]ShortfallResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	items := make(map[uuid.UUID]*inventory.Item)
	for _, itemID := range transactionItemIDs(tx) {
		item, err := s.itemRepo.FindByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		items[itemID] = item
	}
	batches := make(map[uuid.UUID]*inventory.ItemBatch)
	for _, line := range tx.Items {
		if line.BatchID == nil {
			continue
		}
		batch, err := s.batchRepo.FindByID(ctx, *line.BatchID)
		if err != nil {
			return nil, err
		}
		batches[*line.BatchID] = batch
	}

	return ToShortfallResponses(s.validator.CheckSufficiency(tx, items, batches)), nil
}

// Get returns one transaction by ID
func (s *LedgerService) Get(ctx context.Context, transactionID uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(tx, inventory.DefaultVATRate)
	return &resp, nil
}

// GetByReference returns one transaction by its document number
func (s *LedgerService) GetByReference(ctx context.Context, referenceNumber string) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByReference(ctx, referenceNumber)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(tx, inventory.DefaultVATRate)
	return &resp, nil
}

// List returns transactions matching the filter, newest first
func (s *LedgerService) List(ctx context.Context, status string, customerID *uuid.UUID, filter shared.Filter) ([]TransactionResponse, int64, error) {
	var (
		txs []inventory.Transaction
		err error
	)
	switch {
	case status != "":
		txs, err = s.txRepo.FindByStatus(ctx, inventory.TransactionStatus(status), filter)
	case customerID != nil:
		txs, err = s.txRepo.FindByCustomer(ctx, *customerID, filter)
	default:
		txs, err = s.txRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, 0, err
	}
	total, err := s.txRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]TransactionResponse, len(txs))
	for i := range txs {
		out[i] = ToTransactionResponse(&txs[i], inventory.DefaultVATRate)
	}
	return out, total, nil
}

func (s *LedgerService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Publish events (errors are logged by the event bus, not propagated)
	_ = s.eventPublisher.Publish(ctx, events...)
}

// transactionItemIDs returns the distinct item IDs of a transaction
func transactionItemIDs(tx *inventory.Transaction) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(tx.Items))
	ids := make([]uuid.UUID, 0, len(tx.Items))
	for _, line := range tx.Items {
		if _, ok := seen[line.ItemID]; ok {
			continue
		}
		seen[line.ItemID] = struct{}{}
		ids = append(ids, line.ItemID)
	}
	return ids
}

// insufficientStockError folds the full shortfall list into one structured
// error so a UI can highlight every offending line.
func insufficientStockError(shortfalls []inventory.Shortfall) *shared.DomainError {
	first := shortfalls[0]
	err := inventory.NewInsufficientStockError(first.ItemID, first.Requested, first.Available)
	err.Details["shortfalls"] = ToShortfallResponses(shortfalls)
	return err
}
