package httpcache

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/spalepin/http-cache-store/pkg/backend"
)

// EntityStore is content-addressed blob storage for response bodies. Bodies
// are keyed by their digest, so identical content is stored once and an entry
// is immutable for as long as it exists. Reference counting and garbage
// collection are left to the metadata layer's callers.
type EntityStore struct {
	backend backend.Store
	logger  zerolog.Logger
}

// NewEntityStore creates an entity store on top of the given backend.
func NewEntityStore(store backend.Store, logger zerolog.Logger) *EntityStore {
	if store == nil {
		panic("backend store cannot be nil")
	}
	return &EntityStore{
		backend: store,
		logger:  logger,
	}
}

// Put stores body under its content digest and returns the digest. Writing
// content that is already stored is a no-op success: content addressing makes
// the write idempotent, so concurrent writers of the same body never conflict.
func (s *EntityStore) Put(ctx context.Context, body []byte) (string, error) {
	digest := Digest(body)

	created, err := s.backend.SetIfAbsent(ctx, digest, body)
	if err != nil {
		BackendErrors.WithLabelValues("entity_put").Inc()
		return "", fmt.Errorf("store entity: %w", err)
	}

	s.logger.Debug().
		Str("digest", digest).
		Int("bytes", len(body)).
		Bool("created", created).
		Msg("entity stored")

	return digest, nil
}

// Get retrieves the body stored under digest. A missing body is
// (nil, false, nil), not an error.
func (s *EntityStore) Get(ctx context.Context, digest string) ([]byte, bool, error) {
	body, ok, err := s.backend.Get(ctx, digest)
	if err != nil {
		BackendErrors.WithLabelValues("entity_get").Inc()
		return nil, false, fmt.Errorf("load entity: %w", err)
	}
	return body, ok, nil
}

// Delete removes the body stored under digest, reporting whether one existed.
func (s *EntityStore) Delete(ctx context.Context, digest string) (bool, error) {
	removed, err := s.backend.Delete(ctx, digest)
	if err != nil {
		BackendErrors.WithLabelValues("entity_delete").Inc()
		return false, fmt.Errorf("delete entity: %w", err)
	}
	return removed, nil
}
