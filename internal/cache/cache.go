package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
)

// keyPrefix versions the cache layout; bump it when the stored verdict
// format changes
const keyPrefix = "chemscreen:v1:"

// Cache is a byte-oriented store with per-entry expiry
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key hashes the JSON encoding of parts into a cache key. Callers pass the
// formula together with every option that can change the verdict.
func Key(parts ...interface{}) (string, error) {
	data, err := json.Marshal(parts)
	if err != nil {
		return "", errors.Wrap(err, "encode cache key")
	}
	hash := sha256.Sum256(data)
	return keyPrefix + hex.EncodeToString(hash[:]), nil
}
