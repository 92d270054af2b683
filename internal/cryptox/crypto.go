// Package cryptox contains password hashing helpers built on Argon2id.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
)

const saltSize = 16

// ErrMalformedHash is returned when a stored password hash cannot be decoded.
var ErrMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches password with salt into a 32-byte key.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashPassword derives a key from password with a fresh random salt and
// returns both encoded as "<salt hex>$<key hex>".
func HashPassword(password []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := DeriveKey(password, salt)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(key), nil
}

// VerifyPassword reports whether password matches the encoded hash produced
// by HashPassword. Comparison is constant-time.
func VerifyPassword(encoded string, password []byte) (bool, error) {
	saltHex, keyHex, ok := strings.Cut(encoded, "$")
	if !ok {
		return false, ErrMalformedHash
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false, ErrMalformedHash
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return false, ErrMalformedHash
	}

	candidate := DeriveKey(password, salt)
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}
