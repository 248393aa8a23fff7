package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-secret")

	token, err := GenerateToken("vera@example.com", "Vera")
	require.NoError(t, err)

	identity, err := verifyLocalToken(token)
	require.NoError(t, err)
	assert.Equal(t, "vera@example.com", identity.Email)
	assert.Equal(t, "Vera", identity.Name)
}

func TestGenerateTokenWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateToken("vera@example.com", "Vera")
	assert.Error(t, err)
}

func TestVerifyLocalTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-secret")

	_, err := verifyLocalToken("not-a-jwt")
	assert.Error(t, err)
}

func TestVerifyLocalTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateToken("vera@example.com", "Vera")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = verifyLocalToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("other", hash))
}
