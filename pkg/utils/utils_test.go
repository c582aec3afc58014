package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "pool-bar", Slugify("Pool Bar"))
	assert.Equal(t, "main-restaurant", Slugify("  Main   Restaurant  "))
	assert.Equal(t, "suite-21", Slugify("Suite #21!"))
}

func TestFormatReference(t *testing.T) {
	day := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "POS-20260828-0004", FormatReference("POS-", day, 4))
	assert.Equal(t, "FOL-20260828-0100", FormatReference("FOL-", day, 100))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestGenerateTokenString(t *testing.T) {
	token := GenerateTokenString()
	assert.Len(t, token, 64)
	assert.NotEqual(t, token, GenerateTokenString())
}

func TestJWTAccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	userID := NewUUID()
	token, err := manager.GenerateAccessToken(userID, "cashier@example.com", []string{"cashier"}, []string{"record-sales"})
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "cashier@example.com", claims.Email)
	assert.Contains(t, claims.Permissions, "record-sales")
}

func TestJWTRejectsRefreshTokenAsAccess(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	refresh, err := manager.GenerateRefreshToken(NewUUID())
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager("secret-a", time.Hour, 24*time.Hour)
	other := NewJWTManager("secret-b", time.Hour, 24*time.Hour)

	token, err := manager.GenerateAccessToken(NewUUID(), "x@example.com", nil, nil)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}
