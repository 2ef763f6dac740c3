package httpcache

import (
	"crypto/sha1"
	"encoding/hex"
)

// digestPrefix tags digests with the algorithm so the scheme can be rotated
// without colliding with previously stored bodies.
const digestPrefix = "en"

// Digest computes the content address of a response body: the algorithm tag
// followed by the hex-encoded SHA-1 of the raw bytes. It is deterministic
// across processes and restarts, which is what makes it usable as a stable
// storage key.
func Digest(body []byte) string {
	sum := sha1.Sum(body)
	return digestPrefix + hex.EncodeToString(sum[:])
}
