package common

import (
	"crypto/rand"
	"encoding/hex"
)

// Persisted storage keys.
const (
	StorageKeyAuthToken     = "auth_token"
	StorageKeyTheme         = "theme"
	StorageKeySessionSecret = "session_secret"
)

// RequestIDHeaderName carries the per-request correlation id on backend calls.
const RequestIDHeaderName = "X-Request-ID"

// MakeRandHexString returns size random bytes encoded as hex (2*size chars).
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateRandByteArray returns size bytes from crypto/rand.
// It panics if the system random source fails.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray zeroes b in place. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
