package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("secret", "1h")
	companyID := "3f1c5a4e-5b63-4a5e-9b55-2c1f2f0d7a11"

	before := time.Now()
	token, expiresAt, err := svc.GenerateAccessToken("user-1", &companyID)
	require.NoError(t, err)
	assert.InDelta(t, before.Add(time.Hour).Unix(), expiresAt, 2)

	parsed, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := parsed.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
	assert.Equal(t, companyID, claims["company_id"])
}

func TestGenerateAccessTokenWithoutCompany(t *testing.T) {
	svc := NewJWTService("secret", "15m")

	token, _, err := svc.GenerateAccessToken("user-2", nil)
	require.NoError(t, err)

	parsed, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	_, ok := parsed.Get("company_id")
	assert.False(t, ok)
}

func TestGenerateAccessTokenRejectsBadExpiry(t *testing.T) {
	_, _, err := NewJWTService("secret", "forever").GenerateAccessToken("user-1", nil)
	assert.Error(t, err)
}

func TestForeignSignatureRejected(t *testing.T) {
	token, _, err := NewJWTService("one", "1h").GenerateAccessToken("user-1", nil)
	require.NoError(t, err)

	_, err = NewJWTService("two", "1h").JWTAuth().Decode(token)
	assert.Error(t, err)
}
