package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter42x")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter42x", hash)

	assert.True(t, CheckPasswordHash("hunter42x", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestDefaultPasswordPolicy(t *testing.T) {
	assert.NoError(t, DefaultPasswordPolicy("abcdef12"))
	assert.NoError(t, DefaultPasswordPolicy("longer-passw0rd"))

	assert.Error(t, DefaultPasswordPolicy("ab1"), "too short")
	assert.Error(t, DefaultPasswordPolicy("abcdefgh"), "no digit")
	assert.Error(t, DefaultPasswordPolicy("12345678"), "no letter")
}
