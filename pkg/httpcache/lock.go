package httpcache

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/spalepin/http-cache-store/pkg/backend"
)

// lockMarker is the value stored under a lock key. Only presence matters.
var lockMarker = []byte("locked")

// LockManager provides a per-cache-key advisory lock, used to serialize
// concurrent population of the same resource. The lock is a single-attempt,
// non-blocking primitive: there is no queueing, no fairness, and no ownership
// token — any cooperating caller that knows the key may unlock it.
//
// No expiry is applied at this layer. A holder that crashes leaves the marker
// behind; callers that need liveness must wrap acquisition with a backend TTL
// or an equivalent timeout of their own.
type LockManager struct {
	backend backend.Store
	logger  zerolog.Logger
}

// NewLockManager creates a lock manager on top of the given backend.
func NewLockManager(store backend.Store, logger zerolog.Logger) *LockManager {
	if store == nil {
		panic("backend store cannot be nil")
	}
	return &LockManager{
		backend: store,
		logger:  logger,
	}
}

// Lock attempts to create the lock marker for key. It returns true when this
// call created the marker (the caller now holds the lock) and false when a
// marker already existed, including one the caller itself created earlier:
// re-acquiring is not supported and reports failure instead of blocking.
func (l *LockManager) Lock(ctx context.Context, key string) (bool, error) {
	created, err := l.backend.SetIfAbsent(ctx, lockKey(key), lockMarker)
	if err != nil {
		BackendErrors.WithLabelValues("lock").Inc()
		return false, fmt.Errorf("acquire lock: %w", err)
	}
	if !created {
		LockContention.Inc()
		l.logger.Debug().Str("key", key).Msg("lock already held")
	}
	return created, nil
}

// Unlock removes the lock marker for key, reporting whether one existed.
func (l *LockManager) Unlock(ctx context.Context, key string) (bool, error) {
	removed, err := l.backend.Delete(ctx, lockKey(key))
	if err != nil {
		BackendErrors.WithLabelValues("unlock").Inc()
		return false, fmt.Errorf("release lock: %w", err)
	}
	return removed, nil
}

// IsLocked reports whether a lock marker currently exists for key.
func (l *LockManager) IsLocked(ctx context.Context, key string) (bool, error) {
	_, ok, err := l.backend.Get(ctx, lockKey(key))
	if err != nil {
		BackendErrors.WithLabelValues("is_locked").Inc()
		return false, fmt.Errorf("check lock: %w", err)
	}
	return ok, nil
}
