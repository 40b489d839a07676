package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	userID := uuid.New()
	secret := "test-secret"

	token, err := GenerateToken(userID, "kim@example.com", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "kim@example.com", claims.Email)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "kim@example.com", "secret-a", time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken(token, "secret-b")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "kim@example.com", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, "secret")
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	_, err := VerifyToken("not.a.token", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
