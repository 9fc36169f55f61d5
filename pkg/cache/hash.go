package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash returns a short hex digest of the given parts, suitable for use
// as a cache key component. Parts are joined with a separator so that
// ("ab","c") and ("a","bc") hash differently.
func Hash(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])[:16]
}

// Key builds a namespaced cache key from a prefix and hashed parts.
func Key(prefix string, parts ...string) string {
	return prefix + ":" + Hash(parts...)
}
