package common

import (
	"crypto/rand"
	"encoding/hex"
	"slices"
	"strings"
)

// MakeRandHexString generates size random bytes and returns them hex
// encoded, so the result is twice as long as size.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// WipeByteArray overwrites b with zeros. Used for passwords read from the
// terminal. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// IsAllowedImageType reports whether contentType (parameters ignored) is one
// of AllowedImageTypes.
func IsAllowedImageType(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return slices.Contains(AllowedImageTypes, strings.ToLower(strings.TrimSpace(mediaType)))
}
