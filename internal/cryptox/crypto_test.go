package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")
	a := DeriveKey([]byte("password"), salt)
	b := DeriveKey([]byte("password"), salt)
	require.Len(t, a, 32)
	assert.Equal(t, a, b)

	c := DeriveKey([]byte("password"), []byte("fedcba9876543210"))
	assert.NotEqual(t, a, c)
}

func TestHashAndVerify(t *testing.T) {
	encoded := HashPassword([]byte("password"))
	assert.True(t, strings.HasPrefix(encoded, "argon2id$"))

	ok, err := VerifyPassword(encoded, []byte("password"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(encoded, []byte("Password"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	assert.NotEqual(t, HashPassword([]byte("x")), HashPassword([]byte("x")))
}

func TestVerifyPassword_Malformed(t *testing.T) {
	for _, in := range []string{
		"",
		"bcrypt$abc$def",
		"argon2id$only-two",
		"argon2id$!!!$AAAA",
		"argon2id$c2FsdA$c2hvcnQ",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := VerifyPassword(in, []byte("x"))
			require.ErrorIs(t, err, ErrMalformedHash)
		})
	}
}
