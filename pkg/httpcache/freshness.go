package httpcache

import (
	"net/http"
	"time"
)

// IsFresh reports whether response headers carry an Expires timestamp in the
// future. It is the minimal freshness check needed to observe invalidation;
// full freshness computation (Cache-Control, heuristics, age) belongs to the
// caller's HTTP layer.
func IsFresh(responseHeaders http.Header) bool {
	raw := responseHeaders.Get("Expires")
	if raw == "" {
		return false
	}
	expires, err := http.ParseTime(raw)
	if err != nil {
		return false
	}
	return expires.After(time.Now())
}
