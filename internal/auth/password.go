package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned for every verification failure, whether the
// password is wrong or the stored hash is malformed. Callers must not be able
// to tell the two apart.
var ErrPasswordMismatch = errors.New("password does not match")

// DefaultBcryptCost is used when configuration supplies no cost.
const DefaultBcryptCost = 10

// HashPassword hashes a plaintext password with the given cost. bcrypt
// generates a fresh random salt per call, so hashing the same password twice
// yields different strings.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks a plaintext password against its stored hash using
// bcrypt's own constant-time comparison.
func VerifyPassword(hashed, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
