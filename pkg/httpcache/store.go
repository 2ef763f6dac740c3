package httpcache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/spalepin/http-cache-store/pkg/backend"
	"github.com/spalepin/http-cache-store/pkg/logging"
)

// Store composes the entity, metadata and lock layers into the cache store
// surface: lookup, write, invalidate, purge and per-key locking.
type Store struct {
	entities *EntityStore
	metadata *MetadataStore
	locks    *LockManager
	backend  backend.Store
	logger   zerolog.Logger
}

// Option configures a Store.
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

// WithLogger overrides the default component logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a cache store on top of the given backend.
func New(store backend.Store, opts ...Option) *Store {
	if store == nil {
		panic("backend store cannot be nil")
	}

	o := options{
		logger: logging.NewLogger("httpcache"),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store{
		entities: NewEntityStore(store, o.logger),
		metadata: NewMetadataStore(store, o.logger),
		locks:    NewLockManager(store, o.logger),
		backend:  store,
		logger:   o.logger,
	}
}

// Metadata exposes the metadata layer, primarily so callers and tests can
// inspect the raw variant record for a key without reaching into internals.
func (s *Store) Metadata() *MetadataStore {
	return s.metadata
}

// Entities exposes the entity layer.
func (s *Store) Entities() *EntityStore {
	return s.entities
}

// Lookup returns the cached response matching the request, or nil when there
// is none. An entry matches when every request header named by its Vary
// declaration agrees with the incoming request. A metadata entry whose body
// has gone missing from the entity store degrades to a miss rather than an
// error.
func (s *Store) Lookup(ctx context.Context, r *http.Request) (*http.Response, error) {
	key := RequestKey(r)

	entries, err := s.metadata.Read(ctx, key)
	if err != nil {
		return nil, err
	}

	entry, ok := matchEntry(entries, r.Header)
	if !ok {
		LookupMisses.Inc()
		s.logger.Debug().Str("key", key).Msg("lookup miss")
		return nil, nil
	}

	digest := entry.ResponseHeaders.Get(HeaderContentDigest)
	body, found, err := s.entities.Get(ctx, digest)
	if err != nil {
		return nil, err
	}
	if !found {
		LookupMisses.Inc()
		s.logger.Warn().
			Str("key", key).
			Str("digest", digest).
			Msg("metadata references missing entity, degrading to miss")
		return nil, nil
	}

	LookupHits.Inc()
	s.logger.Debug().
		Str("key", key).
		Str("digest", digest).
		Msg("lookup hit")

	return restoreResponse(entry, body), nil
}

// Write stores the response as a variant for the request's cache key and
// returns that key. The response body is drained, stored content-addressed,
// and restored on the response; X-Content-Digest and Content-Length are set
// on the response headers, overwriting anything the caller supplied.
//
// Write does not serialize concurrent producers for the same key; callers
// that need that wrap it with Lock and Unlock.
func (s *Store) Write(ctx context.Context, r *http.Request, resp *http.Response) (string, error) {
	key := RequestKey(r)

	body, err := readBody(resp)
	if err != nil {
		return "", err
	}

	digest, err := s.entities.Put(ctx, body)
	if err != nil {
		return "", err
	}

	resp.Header.Set(HeaderContentDigest, digest)
	resp.Header.Set("Content-Length", strconv.Itoa(len(body)))

	responseHeaders := resp.Header.Clone()
	responseHeaders.Set(headerStatus, strconv.Itoa(resp.StatusCode))

	entry := Entry{
		RequestHeaders:  r.Header.Clone(),
		ResponseHeaders: responseHeaders,
	}
	if entry.RequestHeaders == nil {
		entry.RequestHeaders = make(http.Header)
	}

	if _, err := s.metadata.Write(ctx, key, entry); err != nil {
		return "", err
	}

	Writes.Inc()
	s.logger.Debug().
		Str("key", key).
		Str("digest", digest).
		Int("bytes", len(body)).
		Msg("response written")

	return key, nil
}

// Invalidate marks every variant stored for the request's key as stale.
// It is a silent no-op when nothing is stored.
func (s *Store) Invalidate(ctx context.Context, r *http.Request) error {
	return s.metadata.Invalidate(ctx, RequestKey(r))
}

// Purge removes the whole metadata record for a URL or an already-computed
// cache key, reporting whether anything was removed. Entity bodies are left
// in place: they are content-addressed and may back other keys.
func (s *Store) Purge(ctx context.Context, urlOrKey string) (bool, error) {
	key := urlOrKey
	if computed, err := URLKey(urlOrKey); err == nil {
		key = computed
	}
	return s.metadata.Purge(ctx, key)
}

// Lock attempts to acquire the advisory lock for the request's cache key.
func (s *Store) Lock(ctx context.Context, r *http.Request) (bool, error) {
	return s.locks.Lock(ctx, RequestKey(r))
}

// Unlock releases the advisory lock for the request's cache key.
func (s *Store) Unlock(ctx context.Context, r *http.Request) (bool, error) {
	return s.locks.Unlock(ctx, RequestKey(r))
}

// IsLocked reports whether the request's cache key is currently locked.
func (s *Store) IsLocked(ctx context.Context, r *http.Request) (bool, error) {
	return s.locks.IsLocked(ctx, RequestKey(r))
}

// Flush clears the entire backend, metadata, entities and locks alike.
// Test and ops use only.
func (s *Store) Flush(ctx context.Context) error {
	if err := s.backend.FlushAll(ctx); err != nil {
		BackendErrors.WithLabelValues("flush").Inc()
		return fmt.Errorf("flush store: %w", err)
	}
	return nil
}

// matchEntry returns the first entry whose Vary declaration matches the
// request headers. Entries are scanned in stored order; because Write keeps
// at most one entry per Vary signature, the first match is the most recent
// one for that signature.
func matchEntry(entries []Entry, requestHeaders http.Header) (Entry, bool) {
	for _, entry := range entries {
		if entry.matchesRequest(requestHeaders) {
			return entry, true
		}
	}
	return Entry{}, false
}

// restoreResponse assembles an http.Response from a stored entry and its
// body. The stored status header is consumed and Content-Length is recomputed
// from the actual body.
func restoreResponse(entry Entry, body []byte) *http.Response {
	headers := entry.ResponseHeaders.Clone()
	if headers == nil {
		headers = make(http.Header)
	}

	status := http.StatusOK
	if code, err := strconv.Atoi(headers.Get(headerStatus)); err == nil {
		status = code
	}
	headers.Del(headerStatus)
	headers.Set("Content-Length", strconv.Itoa(len(body)))

	return &http.Response{
		StatusCode:    status,
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:        headers,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}

// readBody drains a response body and restores it for the caller.
func readBody(resp *http.Response) ([]byte, error) {
	if resp.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}
