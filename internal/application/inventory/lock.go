package inventory

import (
	"context"

	"github.com/google/uuid"
)

// ItemLockManager serializes stock mutation per item. Implementations must
// acquire locks in a canonical order to stay deadlock-free and must bound
// the wait: a caller that cannot get all locks within the configured timeout
// receives shared.ErrLockTimeout, which is safe to retry.
type ItemLockManager interface {
	// AcquireAll locks every item ID and returns a release function for all
	// of them. On failure nothing stays locked.
	AcquireAll(ctx context.Context, itemIDs []uuid.UUID) (release func(), err error)
}
