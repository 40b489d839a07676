package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestCreate_RejectsWeakPassword(t *testing.T) {
	_, err := Create(nil, CreateInput{
		Name:          "김철수",
		Email:         "kim@example.com",
		Password:      "short",
		LicenseNumber: "12345",
	})

	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestComparePassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	usr := User{PasswordHash: string(hash)}
	assert.True(t, usr.ComparePassword("secret1"))
	assert.False(t, usr.ComparePassword("wrong"))
	assert.False(t, usr.ComparePassword(""))
}
