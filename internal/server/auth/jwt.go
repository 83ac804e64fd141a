// Package auth issues and validates the stateless signed tokens used by the
// account lifecycle: short-lived verification tokens and longer-lived
// session tokens. Tokens are HS256 JWTs; expiry lives inside the token and
// is checked at parse time, never looked up in storage.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lifelike-app/backend/internal/common"
)

// Token purposes. A token minted for one purpose is rejected when presented
// for another, so a verification token cannot stand in for a session.
const (
	PurposeVerify  = "verify"
	PurposeSession = "session"
)

// Claims carries the registered claim set plus the token purpose. The
// account email travels in the Subject claim.
type Claims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
}

// GenerateToken mints a signed token for the given email and purpose,
// expiring ttl from now.
func GenerateToken(email, purpose string, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Purpose: purpose,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates the signature, expiry, and purpose of a token and
// returns the embedded email. Expired tokens yield common.ErrTokenExpired;
// any other defect yields common.ErrInvalidToken.
func ParseToken(tokenString, wantPurpose string, secretKey []byte) (string, error) {
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

	if !token.Valid || claims.Purpose != wantPurpose || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
