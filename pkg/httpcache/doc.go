// Package httpcache implements an HTTP response cache store with Vary-aware
// variant selection and per-key advisory locking.
//
// The store keeps two kinds of state in the backend, deliberately separate:
//
//   - Metadata records: per cache key, an ordered list of variant entries,
//     each holding the request headers that produced a response and the
//     response headers to replay. Small, rewritten on every write.
//   - Entity bodies: response bodies stored content-addressed under their
//     digest. Large, immutable, written once per distinct content.
//
// A metadata entry references its body through the X-Content-Digest response
// header, so metadata and bodies cannot drift: a dangling reference simply
// degrades the lookup to a miss.
//
// # Basic Usage
//
//	store := httpcache.New(backend.NewRedis(redisClient))
//
//	// Try the cache first.
//	cached, err := store.Lookup(ctx, req)
//	if err != nil {
//		return err
//	}
//	if cached != nil {
//		return serve(cached)
//	}
//
//	// Miss: fetch from origin, then store.
//	resp, err := fetchOrigin(req)
//	if err != nil {
//		return err
//	}
//	if _, err := store.Write(ctx, req, resp); err != nil {
//		return err
//	}
//
// # Serializing producers
//
// Metadata writes are last-write-wins. Callers that want a single producer
// per resource (and protection against thundering herds on a popular miss)
// bracket regeneration with the lock primitive:
//
//	if ok, _ := store.Lock(ctx, req); ok {
//		defer store.Unlock(ctx, req)
//		// fetch and Write
//	} else {
//		// someone else is regenerating; serve stale or wait
//	}
//
// The lock is advisory, non-blocking and has no expiry; a crashed holder
// leaves the marker behind unless the caller wraps acquisition with a TTL in
// the backend.
package httpcache
