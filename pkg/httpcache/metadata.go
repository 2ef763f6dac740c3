package httpcache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/spalepin/http-cache-store/pkg/backend"
)

// MetadataStore maps a cache key to its ordered list of variant entries.
// Records are serialized as JSON and kept separate from entity bodies, so
// the (small, frequently rewritten) header metadata never drags the (large,
// immutable) bodies through the backend on every update.
//
// Write is read-modify-write with no concurrency token: two unserialized
// concurrent writers for the same key race and the last one wins. Callers
// that need a single producer per key serialize with the LockManager.
type MetadataStore struct {
	backend backend.Store
	logger  zerolog.Logger
}

// NewMetadataStore creates a metadata store on top of the given backend.
func NewMetadataStore(store backend.Store, logger zerolog.Logger) *MetadataStore {
	if store == nil {
		panic("backend store cannot be nil")
	}
	return &MetadataStore{
		backend: store,
		logger:  logger,
	}
}

// Read returns the variant entries stored for key, in stored order. A key
// with no record yields an empty slice. A record that fails to decode is
// treated as absent rather than failing the lookup path.
func (s *MetadataStore) Read(ctx context.Context, key string) ([]Entry, error) {
	data, ok, err := s.backend.Get(ctx, metadataKey(key))
	if err != nil {
		BackendErrors.WithLabelValues("metadata_read").Inc()
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn().
			Str("key", key).
			Err(err).
			Msg("discarding undecodable metadata record")
		return nil, nil
	}
	return entries, nil
}

// Write inserts entry into the record for key. An existing entry whose Vary
// signature matches the new one (same Vary header-name set, identical stored
// request header values for those names) is replaced in place; otherwise the
// new entry is appended. The updated record is persisted and returned.
func (s *MetadataStore) Write(ctx context.Context, key string, entry Entry) ([]Entry, error) {
	entries, err := s.Read(ctx, key)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i := range entries {
		if entry.sameVarySignature(entries[i]) {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	if err := s.persist(ctx, key, entries); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("key", key).
		Int("variants", len(entries)).
		Bool("replaced", replaced).
		Msg("metadata written")

	return entries, nil
}

// Invalidate marks every entry for key as stale by rewriting its Expires
// header to the epoch. Entries are kept, not deleted: a later lookup still
// finds the response, it just evaluates as non-fresh (stale-if-error reuse).
// A key with no record is a silent no-op.
func (s *MetadataStore) Invalidate(ctx context.Context, key string) error {
	entries, err := s.Read(ctx, key)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	expired := time.Unix(0, 0).UTC().Format(http.TimeFormat)
	for i := range entries {
		if entries[i].ResponseHeaders == nil {
			entries[i].ResponseHeaders = make(http.Header)
		}
		entries[i].ResponseHeaders.Set("Expires", expired)
	}

	if err := s.persist(ctx, key, entries); err != nil {
		return err
	}

	Invalidations.Inc()
	s.logger.Debug().
		Str("key", key).
		Int("variants", len(entries)).
		Msg("metadata invalidated")

	return nil
}

// Purge removes the entire record for key, reporting whether one existed.
func (s *MetadataStore) Purge(ctx context.Context, key string) (bool, error) {
	removed, err := s.backend.Delete(ctx, metadataKey(key))
	if err != nil {
		BackendErrors.WithLabelValues("metadata_purge").Inc()
		return false, fmt.Errorf("purge metadata: %w", err)
	}
	if removed {
		Purges.Inc()
	}
	return removed, nil
}

func (s *MetadataStore) persist(ctx context.Context, key string, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal metadata record: %w", err)
	}
	if err := s.backend.Set(ctx, metadataKey(key), data); err != nil {
		BackendErrors.WithLabelValues("metadata_write").Inc()
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}
