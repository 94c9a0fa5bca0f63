package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ManifestDigest returns the xxhash64 of a manifest payload as fixed-width hex.
func ManifestDigest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
