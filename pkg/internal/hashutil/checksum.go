package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
)

// ShortSum returns the first n bytes of the SHA256 of s, hex encoded. n is
// clamped to the digest size.
func ShortSum(s string, n int) string {
	sum := sha256.Sum256([]byte(s))
	if n <= 0 || n > len(sum) {
		n = len(sum)
	}
	return hex.EncodeToString(sum[:n])
}
