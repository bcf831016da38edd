package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims are the identity claims carried by a session token
type JWTClaims struct {
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Role  string  `json:"role"`
	jwt.RegisteredClaims
}

// JWTUtil provides session token generation and validation
type JWTUtil struct {
	secretKey string
	expiry    time.Duration
}

// NewJWTUtil creates a new JWTUtil
func NewJWTUtil(secretKey string, expiry time.Duration) *JWTUtil {
	return &JWTUtil{secretKey: secretKey, expiry: expiry}
}

// GenerateToken signs a token for the given user identity. The user id
// travels in the registered subject claim; email/phone/role are informational
// only and are never trusted on verification.
func (ju *JWTUtil) GenerateToken(userID string, email, phone *string, role string) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		Email: email,
		Phone: phone,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ju.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ju.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken checks signature and expiry and returns the claims
func (ju *JWTUtil) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ju.secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
