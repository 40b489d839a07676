package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister_RejectsMissingFields(t *testing.T) {
	cfg := TokenConfig{JWTSecret: "secret"}

	inputs := []RegisterInput{
		{},
		{Name: "김철수", Email: "kim@example.com", Password: "secret1"},            // no license
		{Name: "김철수", Email: "kim@example.com", LicenseNumber: "12345"},         // no password
		{Email: "kim@example.com", Password: "secret1", LicenseNumber: "12345"}, // no name
	}

	for _, input := range inputs {
		_, err := Register(nil, input, cfg)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}

func TestRegister_RejectsInvalidEmail(t *testing.T) {
	_, err := Register(nil, RegisterInput{
		Name:          "김철수",
		Email:         "not-an-email",
		Password:      "secret1",
		LicenseNumber: "12345",
	}, TokenConfig{JWTSecret: "secret"})

	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestLogin_RejectsMissingFields(t *testing.T) {
	_, err := Login(nil, LoginInput{}, TokenConfig{JWTSecret: "secret"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = Login(nil, LoginInput{Email: "kim@example.com"}, TokenConfig{JWTSecret: "secret"})
	assert.ErrorIs(t, err, ErrMissingFields)
}
