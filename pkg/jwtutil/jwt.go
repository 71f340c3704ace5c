package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Token types carried in the claims. Refresh tokens cannot be used on
// protected routes and reset tokens are only accepted by the password
// reset endpoint.
const (
	TokenTypeAccess        = "access"
	TokenTypeRefresh       = "refresh"
	TokenTypePasswordReset = "password_reset"
)

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey             string
	ExpirationHours        int
	RefreshExpirationHours int
}

// EmployeeClaims represents the JWT claims for an authenticated employee
type EmployeeClaims struct {
	EmpID      uint   `json:"emp_id"`
	BusinessID uint   `json:"business_id"`
	Role       string `json:"role"`
	TokenType  string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTUtil is a utility for JWT token operations
type JWTUtil struct {
	config *JWTConfig
}

// NewJWTUtil creates a new JWT utility with the given configuration
func NewJWTUtil(config *JWTConfig) *JWTUtil {
	return &JWTUtil{
		config: config,
	}
}

// GenerateAccessToken creates a short-lived token for API access
func (j *JWTUtil) GenerateAccessToken(empID, businessID uint, role string) (string, error) {
	expiry := time.Duration(j.config.ExpirationHours) * time.Hour
	return j.generate(empID, businessID, role, TokenTypeAccess, expiry)
}

// GenerateRefreshToken creates a long-lived token used only to mint new access tokens
func (j *JWTUtil) GenerateRefreshToken(empID, businessID uint, role string) (string, error) {
	expiry := time.Duration(j.config.RefreshExpirationHours) * time.Hour
	return j.generate(empID, businessID, role, TokenTypeRefresh, expiry)
}

// GeneratePasswordResetToken creates a token accepted only by the reset-password endpoint
func (j *JWTUtil) GeneratePasswordResetToken(empID uint, expiry time.Duration) (string, error) {
	return j.generate(empID, 0, "", TokenTypePasswordReset, expiry)
}

func (j *JWTUtil) generate(empID, businessID uint, role, tokenType string, expiry time.Duration) (string, error) {
	if j.config == nil {
		return "", errors.New("JWT configuration not provided")
	}

	claims := EmployeeClaims{
		EmpID:      empID,
		BusinessID: businessID,
		Role:       role,
		TokenType:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", empID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.config.SigningKey))
}

// ValidateToken validates and parses the JWT token
func (j *JWTUtil) ValidateToken(tokenString string) (*EmployeeClaims, error) {
	if j.config == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&EmployeeClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(j.config.SigningKey), nil
		},
	)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*EmployeeClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// ValidateRefreshToken validates a token and checks it is a refresh token
func (j *JWTUtil) ValidateRefreshToken(tokenString string) (*EmployeeClaims, error) {
	claims, err := j.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, errors.New("not a refresh token")
	}
	return claims, nil
}
