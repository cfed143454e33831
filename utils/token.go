package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateToken returns a 64-character hex string built from 32 bytes of
// crypto/rand output, used as an opaque bearer token.
func GenerateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
