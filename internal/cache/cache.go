package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores fetched article bodies so repeated enrichment runs over
// the same working set do not refetch unchanged sources.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a source URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "doppel:v1:" + hex.EncodeToString(hash[:])
}
