package locking

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	appinv "github.com/stocktier/backend/internal/application/inventory"
	"github.com/stocktier/backend/internal/domain/shared"
)

const lockKeyPrefix = "stocktier:item-lock:"

// RedisLockManager serializes stock mutation per item across service
// instances using Redis locks. The TTL bounds how long a crashed holder
// can block other writers.
type RedisLockManager struct {
	locker        *redislock.Client
	waitTimeout   time.Duration
	ttl           time.Duration
	retryInterval time.Duration
}

// NewRedisLockManager creates a manager on top of a Redis client
func NewRedisLockManager(client redis.UniversalClient, waitTimeout, ttl, retryInterval time.Duration) *RedisLockManager {
	return &RedisLockManager{
		locker:        redislock.New(client),
		waitTimeout:   waitTimeout,
		ttl:           ttl,
		retryInterval: retryInterval,
	}
}

// AcquireAll obtains a Redis lock per item, in sorted order, within the
// configured wait timeout. On failure every obtained lock is released.
func (m *RedisLockManager) AcquireAll(ctx context.Context, itemIDs []uuid.UUID) (func(), error) {
	ids := canonicalOrder(itemIDs)

	acquireCtx, cancel := context.WithTimeout(ctx, m.waitTimeout)
	defer cancel()

	locks := make([]*redislock.Lock, 0, len(ids))
	releaseAcquired := func() {
		// release against a fresh context: the acquisition context may
		// already be expired
		releaseCtx, releaseCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer releaseCancel()
		for _, lock := range locks {
			_ = lock.Release(releaseCtx)
		}
	}

	retries := int(m.waitTimeout / m.retryInterval)
	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(m.retryInterval), retries),
	}

	for _, id := range ids {
		lock, err := m.locker.Obtain(acquireCtx, lockKeyPrefix+id.String(), m.ttl, opts)
		if err != nil {
			releaseAcquired()
			if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) {
				return nil, shared.ErrLockTimeout.WithDetails(map[string]interface{}{
					"item_id": id.String(),
					"timeout": m.waitTimeout.String(),
				})
			}
			return nil, err
		}
		locks = append(locks, lock)
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		releaseAcquired()
	}, nil
}

var _ appinv.ItemLockManager = (*RedisLockManager)(nil)
