package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("student123")
	require.NoError(t, err)
	assert.NotEqual(t, "student123", hash)

	assert.True(t, CheckPasswordHash("student123", hash))
	assert.False(t, CheckPasswordHash("student124", hash))
	assert.False(t, CheckPasswordHash("student123", "not-a-hash"))
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword("12345"), ErrPasswordTooShort)
	assert.NoError(t, ValidatePassword("123456"))
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("a", MaxPasswordBytes+1)), ErrPasswordTooLong)
	assert.EqualError(t, ErrPasswordTooShort, "password must be at least 6 characters long")
}
