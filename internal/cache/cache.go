// Package cache stores generation collaborator responses so re-running a
// batch never pays for the same prompt twice.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a generation prompt.
func Key(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return "loreweave:v1:" + hex.EncodeToString(hash[:])
}
