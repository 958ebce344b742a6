// Package cryptox holds hashing helpers for secrets kept by the server.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken returns the hex SHA-256 of token. Refresh tokens are stored
// only in this form.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
