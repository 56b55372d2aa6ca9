package trace

import (
	"crypto/sha256"
	"encoding/hex"
)

// ComputeHash returns the sha256 hex digest of an encoded journal, or "" for
// empty input.
func ComputeHash(encoding []byte) string {
	if len(encoding) == 0 {
		return ""
	}
	sum := sha256.Sum256(encoding)
	return hex.EncodeToString(sum[:])
}
