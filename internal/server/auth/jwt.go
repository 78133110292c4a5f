// Package auth signs and verifies the API's JWTs and hashes admin passwords.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the "type" claim. An access token is never
// accepted where a refresh token is expected and vice versa.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var ErrWrongTokenType = errors.New("invalid token type")

// Claims are the registered claims plus the admin email and token type.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Type  string `json:"type"`
}

// GenerateToken signs a token for email. Every token gets its own jti, so
// two tokens issued in the same second still differ.
func GenerateToken(email, tokenType string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Email: email,
		Type:  tokenType,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString and returns the email it was issued to.
// Expired tokens yield common.ErrTokenExpired, a type mismatch yields
// ErrWrongTokenType, and anything else common.ErrInvalidToken.
func ParseToken(tokenString, tokenType string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}
	if claims.Type != tokenType {
		return "", ErrWrongTokenType
	}

	return claims.Email, nil
}
