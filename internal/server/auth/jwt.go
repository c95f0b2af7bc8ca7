// Package auth mints and verifies the signed session tokens (HS256 JWTs).
// A verified signature alone does not authenticate a request: the token must
// also still be present in the owner's live-token set.
package auth

import (
	"time"

	"github.com/Shikhar-srivastav/task-manager/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the standard claims plus the owning user's id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken signs a new token bound to userID. A random jti makes every
// issued token unique, so two logins in the same instant still produce
// distinct tokens that can be revoked independently. A non-positive validity
// omits the expiry claim; revocation is then the only way a token dies.
func GenerateToken(userID string, secretKey []byte, validity time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	}
	if validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies the signature (and expiry, when present) and
// returns the user id the token claims to belong to.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
