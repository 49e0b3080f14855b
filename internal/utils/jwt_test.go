package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(42, "secret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseJWT(token, "secret")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, "secret")
	assert.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT("not.a.token", "secret")
	assert.Error(t, err)
}

func TestTokenValidityWindow(t *testing.T) {
	token, err := GenerateJWT(1, "secret")
	assert.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	assert.NoError(t, err)

	expected := time.Now().Add(TokenValidity)
	assert.WithinDuration(t, expected, claims.ExpiresAt.Time, time.Minute)
}
