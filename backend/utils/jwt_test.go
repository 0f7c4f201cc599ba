package utils

import (
	"testing"

	"learnhub/backend/config"

	"github.com/stretchr/testify/assert"
)

func TestTokenCarriesUserAndRole(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	token, err := GenerateJWTToken(42, "admin", cfg)
	assert.NoError(t, err)

	claims, err := ParseToken(token, cfg)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWTToken(42, "student", &config.Config{JWTSecret: "one"})
	assert.NoError(t, err)

	_, err = ParseToken(token, &config.Config{JWTSecret: "two"})
	assert.Error(t, err)
}
