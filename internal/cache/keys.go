package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// GenerateKey builds a stable content-addressed cache key from an arbitrary
// set of named parts, canonicalizing by sorting keys before hashing so the
// result does not depend on map iteration order. This mirrors the original
// implementation's generate_cache_key(**kwargs) contract.
func GenerateKey(parts map[string]any) string {
	keys := make([]string, 0, len(parts))
	for k := range parts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		fmt.Fprintf(h, "%s=%v;", k, parts[k])
	}
	return hex.EncodeToString(h.Sum(nil))
}
