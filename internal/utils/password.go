package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyPassword = errors.New("password must not be empty")
	ErrBcryptCost    = errors.New("bcrypt cost out of range")
)

// HashPassword returns the bcrypt hash of plain for an AUTH_USERS entry.
// Unlike bcrypt.GenerateFromPassword it refuses costs outside
// [bcrypt.MinCost, bcrypt.MaxCost] instead of silently using the default.
func HashPassword(plain string, cost int) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("%w: %d", ErrBcryptCost, cost)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// CheckAccountHash returns an error when hash is not a bcrypt hash or was
// made with a cost below minCost (BCRYPT_COST).
func CheckAccountHash(hash string, minCost int) error {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return err
	}
	if cost < minCost {
		return fmt.Errorf("%w: hash cost %d below %d", ErrBcryptCost, cost, minCost)
	}
	return nil
}
