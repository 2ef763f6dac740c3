// Package backend defines the key-value storage abstraction used by the
// cache store, plus the two bundled implementations.
//
// The Store interface is a minimal byte store: values round-trip unchanged,
// absence is reported as (nil, false, nil) rather than an error, and
// SetIfAbsent gives the atomic create-if-absent primitive the lock manager
// is built on.
//
// # Implementations
//
//   - Redis: the production backend, wrapping a *redis.Client. SetIfAbsent
//     maps to SETNX, so lock acquisition is atomic even across processes
//     sharing the same Redis instance.
//   - Memory: a mutex-guarded map for unit tests and single-process use.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//	store := backend.NewRedis(redisClient)
//
//	if err := store.Set(ctx, "key", []byte("value")); err != nil {
//		return err
//	}
//
//	value, ok, err := store.Get(ctx, "key")
//	if err != nil {
//		return err
//	}
//	if !ok {
//		// key absent
//	}
package backend
