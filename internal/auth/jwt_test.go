package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tollroute/tollroute/internal/auth"
)

func TestJWTService_GenerateAndValidateAccessToken(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "https://api.tollroute.eu",
		Audience:   "tollroute-api",
	})

	// Generate token
	token, expiresAt, err := svc.GenerateAccessToken("pricing-updater", []string{auth.ScopePricingWrite})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	// Validate token
	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "pricing-updater", claims.Subject)
	assert.Equal(t, "https://api.tollroute.eu", claims.Issuer)
	assert.True(t, claims.HasScope(auth.ScopePricingWrite))
	assert.False(t, claims.HasScope(auth.ScopeOpsRead))
}

func TestJWTService_RequireScope(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "https://api.tollroute.eu",
		Audience:   "tollroute-api",
	})

	token, _, err := svc.GenerateAccessToken("ops-reader", []string{auth.ScopeOpsRead})
	require.NoError(t, err)

	_, err = svc.RequireScope(token, auth.ScopeOpsRead)
	assert.NoError(t, err)

	_, err = svc.RequireScope(token, auth.ScopePricingWrite)
	assert.ErrorIs(t, err, auth.ErrMissingScope)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "https://api.tollroute.eu",
		Audience:   "tollroute-api",
	})

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"malformed token", "not.a.valid.jwt"},
		{"invalid base64", "xxx.yyy.zzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestJWTService_WrongSigningKey(t *testing.T) {
	// Generate with one key
	svc1 := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "key-one",
		Issuer:     "https://api.tollroute.eu",
		Audience:   "tollroute-api",
	})

	token, _, err := svc1.GenerateAccessToken("pricing-updater", []string{auth.ScopePricingWrite})
	require.NoError(t, err)

	// Validate with different key
	svc2 := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "key-two",
		Issuer:     "https://api.tollroute.eu",
		Audience:   "tollroute-api",
	})

	_, err = svc2.ValidateAccessToken(token)
	assert.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrInvalidAccessToken)
}

func TestJWTService_WrongIssuer(t *testing.T) {
	// Generate with one issuer
	svc1 := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-key",
		Issuer:     "issuer-one",
		Audience:   "tollroute-api",
	})

	token, _, err := svc1.GenerateAccessToken("pricing-updater", nil)
	require.NoError(t, err)

	// Validate with different issuer
	svc2 := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-key",
		Issuer:     "issuer-two",
		Audience:   "tollroute-api",
	})

	_, err = svc2.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_WrongAudience(t *testing.T) {
	// Generate with one audience
	svc1 := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-key",
		Issuer:     "https://api.tollroute.eu",
		Audience:   "audience-one",
	})

	token, _, err := svc1.GenerateAccessToken("pricing-updater", nil)
	require.NoError(t, err)

	// Validate with different audience
	svc2 := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-key",
		Issuer:     "https://api.tollroute.eu",
		Audience:   "audience-two",
	})

	_, err = svc2.ValidateAccessToken(token)
	assert.Error(t, err)
}
