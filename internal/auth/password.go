// Package auth implements password hashing for EcoTrama accounts using
// scrypt with a random per-user salt. The stored format is "hash.salt",
// both hex-encoded, which keeps records portable across store backends.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	keyLength    = 64
	saltLength   = 16
	storedFields = 2
)

// HashPassword derives a scrypt hash from the password with a fresh random
// salt and returns the "hash.salt" storage form.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	derived, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return "", fmt.Errorf("deriving key: %w", err)
	}

	return hex.EncodeToString(derived) + "." + hex.EncodeToString(salt), nil
}

// ComparePasswords reports whether the supplied password matches the stored
// "hash.salt" record. The comparison is constant-time.
func ComparePasswords(supplied, stored string) (bool, error) {
	parts := strings.Split(stored, ".")
	if len(parts) != storedFields {
		return false, fmt.Errorf("malformed password record")
	}

	storedHash, err := hex.DecodeString(parts[0])
	if err != nil {
		return false, fmt.Errorf("malformed password hash: %w", err)
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, fmt.Errorf("malformed password salt: %w", err)
	}

	derived, err := scrypt.Key([]byte(supplied), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return false, fmt.Errorf("deriving key: %w", err)
	}

	return subtle.ConstantTimeCompare(storedHash, derived) == 1, nil
}
