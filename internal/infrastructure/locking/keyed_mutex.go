package locking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	appinv "github.com/stocktier/backend/internal/application/inventory"
	"github.com/stocktier/backend/internal/domain/shared"
)

// KeyedMutexManager serializes stock mutation per item with in-process
// mutexes. Suitable for a single-instance deployment; multi-instance
// deployments need the Redis-backed manager.
type KeyedMutexManager struct {
	mu          sync.Mutex
	semaphores  map[uuid.UUID]chan struct{}
	waitTimeout time.Duration
}

// NewKeyedMutexManager creates a manager with the given acquisition timeout
func NewKeyedMutexManager(waitTimeout time.Duration) *KeyedMutexManager {
	return &KeyedMutexManager{
		semaphores:  make(map[uuid.UUID]chan struct{}),
		waitTimeout: waitTimeout,
	}
}

// AcquireAll locks every item ID and returns a single release function.
// IDs are locked in sorted order so two callers competing for overlapping
// sets can never deadlock. On failure nothing stays locked.
func (m *KeyedMutexManager) AcquireAll(ctx context.Context, itemIDs []uuid.UUID) (func(), error) {
	ids := canonicalOrder(itemIDs)

	deadline := time.NewTimer(m.waitTimeout)
	defer deadline.Stop()

	acquired := make([]chan struct{}, 0, len(ids))
	releaseAcquired := func() {
		for _, sem := range acquired {
			<-sem
		}
	}

	for _, id := range ids {
		sem := m.semaphore(id)
		select {
		case sem <- struct{}{}:
			acquired = append(acquired, sem)
		case <-deadline.C:
			releaseAcquired()
			return nil, shared.ErrLockTimeout.WithDetails(map[string]interface{}{
				"item_id": id.String(),
				"timeout": m.waitTimeout.String(),
			})
		case <-ctx.Done():
			releaseAcquired()
			return nil, ctx.Err()
		}
	}

	var once sync.Once
	return func() { once.Do(releaseAcquired) }, nil
}

// semaphore returns the one-slot channel guarding an item
func (m *KeyedMutexManager) semaphore(id uuid.UUID) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	sem, ok := m.semaphores[id]
	if !ok {
		sem = make(chan struct{}, 1)
		m.semaphores[id] = sem
	}
	return sem
}

// canonicalOrder returns the IDs deduplicated and sorted by their string form
func canonicalOrder(itemIDs []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(itemIDs))
	ids := make([]uuid.UUID, 0, len(itemIDs))
	for _, id := range itemIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

var _ appinv.ItemLockManager = (*KeyedMutexManager)(nil)
