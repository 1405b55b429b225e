// Package cryptox implements password hashing for the local credential
// check. Hashes are argon2id keys stored as "argon2id$<salt>$<key>" with
// both parts in unpadded standard base64.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/magiceditor/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	hashScheme = "argon2id"
	saltSize   = 16
	keySize    = 32
)

var ErrMalformedHash = errors.New("malformed password hash")

var b64 = base64.RawStdEncoding

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keySize)
}

// HashPassword derives a key from password with a fresh random salt and
// returns its encoded form.
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(saltSize)
	return encode(salt, DeriveKey(password, salt))
}

// VerifyPassword reports whether password matches an encoded hash. The key
// comparison is constant time.
func VerifyPassword(encoded string, password []byte) (bool, error) {
	salt, key, err := decode(encoded)
	if err != nil {
		return false, err
	}
	candidate := DeriveKey(password, salt)
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(candidate, key) == 1, nil
}

func encode(salt, key []byte) string {
	return strings.Join([]string{hashScheme, b64.EncodeToString(salt), b64.EncodeToString(key)}, "$")
}

func decode(encoded string) (salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != hashScheme {
		return nil, nil, ErrMalformedHash
	}
	salt, err = b64.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return nil, nil, fmt.Errorf("%w: salt", ErrMalformedHash)
	}
	key, err = b64.DecodeString(parts[2])
	if err != nil || len(key) != keySize {
		return nil, nil, fmt.Errorf("%w: key", ErrMalformedHash)
	}
	return salt, key, nil
}
