// Package cryptox derives login material from a password. The server never
// sees the password: the client sends a verifier computed from the derived
// master key, and the server stores and compares verifiers only.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of a freshly generated per-user salt.
const SaltSize = 16

// DeriveMasterKey runs argon2id over password and salt. The result is 32 bytes.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// VerifierMatches compares two verifiers in constant time.
func VerifierMatches(stored, presented []byte) bool {
	return len(stored) > 0 && subtle.ConstantTimeCompare(stored, presented) == 1
}
