package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// AssetKey generates the cache key for a fetched asset URL.
func AssetKey(url string) string {
	return hashKey("asset", url)
}

// RenderKey generates the cache key for a rendered graphic. requestJSON is
// the canonical JSON encoding of the full render request, so any input
// change produces a different key.
func RenderKey(requestJSON []byte) string {
	return "render:" + Hash(requestJSON)
}
