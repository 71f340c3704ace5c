package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUtil() *JWTUtil {
	return NewJWTUtil(&JWTConfig{
		SigningKey:             "test-signing-key",
		ExpirationHours:        1,
		RefreshExpirationHours: 24,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	u := testUtil()
	token, err := u.GenerateAccessToken(1000, 20000, "owner")
	require.NoError(t, err)

	claims, err := u.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1000), claims.EmpID)
	assert.Equal(t, uint(20000), claims.BusinessID)
	assert.Equal(t, "owner", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestValidateTokenWrongKey(t *testing.T) {
	token, err := testUtil().GenerateAccessToken(1000, 20000, "owner")
	require.NoError(t, err)

	other := NewJWTUtil(&JWTConfig{SigningKey: "different-key", ExpirationHours: 1})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRefreshTokenRejectsAccessToken(t *testing.T) {
	u := testUtil()
	access, err := u.GenerateAccessToken(1000, 20000, "admin")
	require.NoError(t, err)
	_, err = u.ValidateRefreshToken(access)
	assert.Error(t, err)

	refresh, err := u.GenerateRefreshToken(1000, 20000, "admin")
	require.NoError(t, err)
	claims, err := u.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestPasswordResetToken(t *testing.T) {
	u := testUtil()
	token, err := u.GeneratePasswordResetToken(1000, time.Hour)
	require.NoError(t, err)

	claims, err := u.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypePasswordReset, claims.TokenType)
	assert.Equal(t, uint(1000), claims.EmpID)
}

func TestExpiredTokenRejected(t *testing.T) {
	u := testUtil()
	token, err := u.GeneratePasswordResetToken(1000, -time.Minute)
	require.NoError(t, err)

	_, err = u.ValidateToken(token)
	assert.Error(t, err)
}
