package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_CorrectPassword(t *testing.T) {
	hash, err := HashPassword("hello")
	require.NoError(t, err)

	verifier, err := NewVerifier(hash)
	require.NoError(t, err)

	assert.True(t, verifier.Verify("hello"))
}

func TestVerifier_WrongPassword(t *testing.T) {
	hash, err := HashPassword("hello")
	require.NoError(t, err)

	verifier, err := NewVerifier(hash)
	require.NoError(t, err)

	assert.False(t, verifier.Verify("hullo"))
	assert.False(t, verifier.Verify("hello "))
	assert.False(t, verifier.Verify(""))
}

func TestVerifier_EmptyPasswordIsHashable(t *testing.T) {
	// Пустой пароль - легальный ввод для Verify, но хешируется как любой другой
	hash, err := HashPassword("")
	require.NoError(t, err)

	verifier, err := NewVerifier(hash)
	require.NoError(t, err)

	assert.True(t, verifier.Verify(""))
	assert.False(t, verifier.Verify("anything"))
}

func TestVerifier_UniqueSalt(t *testing.T) {
	first, err := HashPassword("hello")
	require.NoError(t, err)

	second, err := HashPassword("hello")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewVerifier_RejectsMalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"plaintext", "hello"},
		{"wrong algorithm", "$argon2i$v=19$m=8192,t=3,p=4$c2FsdA$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=8192,t=3,p=4$c2FsdA"},
		{"bad base64 salt", "$argon2id$v=19$m=8192,t=3,p=4$!!!$aGFzaA"},
		{"bad version", "$argon2id$v=12$m=8192,t=3,p=4$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVerifier(tt.hash)
			assert.ErrorIs(t, err, ErrInvalidHash)
		})
	}
}

func TestVerifier_NilFailsClosed(t *testing.T) {
	var verifier *Verifier
	assert.False(t, verifier.Verify("hello"))
}

func TestHashPassword_EncodedFormat(t *testing.T) {
	hash, err := HashPassword("hello")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=3,p=4$"))
}
