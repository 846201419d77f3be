package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString returns 2*size hex characters built from size random bytes.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateRandByteArray returns size random bytes. It panics if the system
// random source fails, which crypto/rand documents as unrecoverable.
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
