package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("user-1", "admin", testSecret)
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", "user", testSecret)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		UserID: "user-1",
		Role:   "user",
	})
	tokenString, err := expired.SignedString(testSecret)
	require.NoError(t, err)

	_, err = ParseToken(tokenString, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
