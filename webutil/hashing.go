package webutil

import (
	"crypto/sha256"
	"encoding/hex"
)

// GenerateHash returns the SHA-256 digest of the input as a hex string
// (64 characters). Callers that need a shorter key truncate the result.
func GenerateHash(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
