package core_test

import (
	"testing"

	"authgate/core"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testConfig() *core.Config {
	return &core.Config{
		JWTSecret:           "test-secret-key-for-testing-purposes-only",
		AccessTokenDuration: 14400,
	}
}

func TestAccessToken_Roundtrip(t *testing.T) {
	config := testConfig()
	id := uuid.New()

	token, err := core.GenerateAccessToken(id, "client-alpha", config)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := core.ValidateAccessToken(token, config)
	assert.NoError(t, err)
	assert.Equal(t, id, claims.ID)
	assert.Equal(t, "client-alpha", claims.UUID)
	assert.NotNil(t, claims.IssuedAt)
	assert.NotNil(t, claims.ExpiresAt)

	// Expiry is fixed at the configured lifetime from issuance.
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, float64(14400), lifetime.Seconds())
}

func TestValidateAccessToken_ForgedSignature(t *testing.T) {
	config := testConfig()
	otherConfig := &core.Config{
		JWTSecret:           "a-different-signing-secret",
		AccessTokenDuration: 14400,
	}

	token, err := core.GenerateAccessToken(uuid.New(), "client-alpha", otherConfig)
	assert.NoError(t, err)

	_, err = core.ValidateAccessToken(token, config)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	config := testConfig()
	expiredConfig := &core.Config{
		JWTSecret:           config.JWTSecret,
		AccessTokenDuration: -60,
	}

	token, err := core.GenerateAccessToken(uuid.New(), "client-alpha", expiredConfig)
	assert.NoError(t, err)

	_, err = core.ValidateAccessToken(token, config)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestValidateAccessToken_Malformed(t *testing.T) {
	config := testConfig()

	for _, tokenString := range []string{
		"",
		"garbage",
		"a.b.c",
		"eyJhbGciOiJIUzI1NiJ9.notjson.sig",
	} {
		_, err := core.ValidateAccessToken(tokenString, config)
		assert.ErrorIs(t, err, core.ErrInvalidToken, "token %q", tokenString)
	}
}
