package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	require.NoError(t, err)
	assert.Len(t, s, n*2)
	_, err = hex.DecodeString(s)
	assert.NoError(t, err)
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, buf)

	WipeByteArray(nil)
}

func TestIsAllowedImageType(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"image/png", true},
		{"image/jpeg", true},
		{"IMAGE/WEBP", true},
		{"image/tiff; charset=binary", true},
		{"image/gif", false},
		{"application/pdf", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowedImageType(tt.contentType))
		})
	}
}
