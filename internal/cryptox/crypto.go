// Package cryptox wraps the one-way credential hashing used for stored
// passwords. Hashes are produced with bcrypt; the plaintext is never
// persisted or logged anywhere in the system.
package cryptox

import (
	"errors"

	"github.com/lifelike-app/backend/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword generates a bcrypt hash of the given plaintext at the given
// cost. A cost below bcrypt.MinCost falls back to bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", common.ErrorValidation
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// ComparePasswordAndHash validates the given plaintext password against a
// stored bcrypt hash. A mismatch yields common.ErrorInvalidCredentials.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return common.ErrorInvalidCredentials
		}
		return err
	}
	return nil
}
