package backend

import "context"

// Store is a byte-transparent key-value store. Implementations must be safe
// for concurrent use and must return from Get exactly the bytes previously
// passed to Set for the same key.
type Store interface {
	// Get returns (value, true, nil) when the key exists and
	// (nil, false, nil) when it does not. Errors are reserved for
	// genuine I/O faults.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. It reports whether a value was present.
	Delete(ctx context.Context, key string) (bool, error)

	// SetIfAbsent atomically stores value under key only if the key does
	// not already exist. It reports whether this call created the key.
	SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error)

	// FlushAll removes every key in the store. Test and ops use only.
	FlushAll(ctx context.Context) error
}
