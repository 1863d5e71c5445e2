// Package auth issues and validates the stateless bearer credentials used on
// all mutating endpoints, and holds the role/ownership predicates consumed by
// the handlers.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is the lifetime of a session token.
const TokenValidity = 2 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the subject's identity and role. Nothing else goes into the
// token; every other fact is looked up in the store.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Role   string `json:"role"`
}

// GenerateToken signs a session token for the given user with a 2-hour
// validity window.
func GenerateToken(userID, role string, secret []byte) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
		},
		UserID: userID,
		Role:   role,
	})
	return token.SignedString(secret)
}

// ParseToken validates the signature and expiry and returns the claims.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
