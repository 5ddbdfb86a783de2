package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ClassificationKey keys a cached classification by the content hash of the
// email it was produced from.
func ClassificationKey(subject, body string) string {
	h := sha256.Sum256([]byte(subject + "\x00" + body))
	return fmt.Sprintf("classify:%s", hex.EncodeToString(h[:]))
}

// RateLimitKey keys the per-client request counter.
func RateLimitKey(clientID string) string {
	return fmt.Sprintf("ratelimit:%s", clientID)
}
