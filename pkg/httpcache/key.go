package httpcache

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// Backend keyspace prefixes. Metadata records and lock markers live in their
// own namespaces; entity bodies are self-namespacing via the digest prefix.
const (
	metadataKeyPrefix = "meta:"
	lockKeyPrefix     = "lock:"
)

// RequestKey returns the canonical cache key for a request. Two requests for
// the same resource produce the same key regardless of query parameter order.
func RequestKey(r *http.Request) string {
	u := *r.URL
	if u.Host == "" {
		u.Host = r.Host
	}
	return canonicalKey(&u)
}

// URLKey returns the canonical cache key for a raw URL string. It is used by
// purge, which operates on URLs rather than full requests.
func URLKey(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	return canonicalKey(u), nil
}

// canonicalKey builds the key from scheme, host, path and the canonicalized
// query string: parameter names sorted, duplicate values kept in sorted order.
func canonicalKey(u *url.URL) string {
	scheme := u.Scheme
	if scheme == "" {
		scheme = "http"
	}

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	b.WriteString(u.Host)
	b.WriteString(u.EscapedPath())

	if query := canonicalQuery(u.Query()); query != "" {
		b.WriteString("?")
		b.WriteString(query)
	}
	return b.String()
}

func canonicalQuery(values url.Values) string {
	for _, vs := range values {
		sort.Strings(vs)
	}
	// Encode sorts parameter names.
	return values.Encode()
}

func metadataKey(key string) string {
	return metadataKeyPrefix + key
}

func lockKey(key string) string {
	return lockKeyPrefix + key
}
