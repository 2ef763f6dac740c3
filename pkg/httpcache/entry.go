package httpcache

import (
	"net/http"
	"strings"
)

// Store-managed response headers. Callers must not supply these themselves;
// Write overwrites both.
const (
	// HeaderContentDigest carries the entity store key of the body.
	HeaderContentDigest = "X-Content-Digest"

	// headerStatus carries the response status code inside the stored
	// headers, so the metadata record stays a pure header mapping. It is
	// stripped again when a response is restored on lookup.
	headerStatus = "X-Status"
)

// Entry is one stored variant for a cache key: the request headers that
// produced it and the response headers to replay. The response headers always
// include Content-Length and X-Content-Digest, both set at write time.
type Entry struct {
	RequestHeaders  http.Header `json:"request_headers"`
	ResponseHeaders http.Header `json:"response_headers"`
}

// varyNames extracts the request header names declared by the Vary response
// header: a comma- or space-separated list, compared case-insensitively.
// A missing or unparsable Vary yields an empty set, which matches every
// request.
func varyNames(responseHeaders http.Header) []string {
	raw := strings.Join(responseHeaders.Values("Vary"), ",")
	if raw == "" {
		return nil
	}

	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	seen := make(map[string]bool, len(fields))
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		name := strings.ToLower(field)
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// matchesRequest reports whether the entry's stored request headers agree
// with the given request headers on every header its Vary declares. Names
// compare case-insensitively, values case-sensitively; a header absent on
// both sides counts as equal.
func (e Entry) matchesRequest(requestHeaders http.Header) bool {
	for _, name := range varyNames(e.ResponseHeaders) {
		if headerValue(e.RequestHeaders, name) != headerValue(requestHeaders, name) {
			return false
		}
	}
	return true
}

// sameVarySignature reports whether other was stored under the same Vary
// header-name set as e, with identical stored request header values for each
// of those names. Write replaces entries in place when the signature matches.
func (e Entry) sameVarySignature(other Entry) bool {
	names := varyNames(e.ResponseHeaders)
	otherNames := varyNames(other.ResponseHeaders)
	if len(names) != len(otherNames) {
		return false
	}

	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	for _, name := range otherNames {
		if !set[name] {
			return false
		}
	}

	for _, name := range names {
		if headerValue(e.RequestHeaders, name) != headerValue(other.RequestHeaders, name) {
			return false
		}
	}
	return true
}

// headerValue joins all values of a header into a single comparable string.
// Empty string means the header is absent.
func headerValue(h http.Header, name string) string {
	return strings.Join(h.Values(name), ", ")
}
