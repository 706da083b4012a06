// Package cache provides a small byte cache used to reuse generated
// graph edge lists between benchmark runs. Generating and shuffling
// a dense random DAG dominates experiment setup time, so the gen
// command stores encoded edge lists keyed by their full generation
// parameters and replays them on later runs with the same key.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores opaque byte values under string keys with optional
// expiry. Implementations must be safe for sequential use; the
// harness never shares one instance across goroutines.
type Cache interface {
	// Get retrieves a value, reporting whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// EdgeListKey derives the cache key for a generated edge list from
// its full generation parameters. Two runs with identical
// parameters share a key; any difference misses.
func EdgeListKey(v, e, ngraphs int, acyclic bool, seed uint64) string {
	return hashKey("edgelist", v, e, ngraphs, acyclic, seed)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
