package auth

import (
	"golang.org/x/crypto/bcrypt"

	"gohoras/internal/errors"
)

// HashPassword derives a bcrypt hash for storage
func HashPassword(password string) (string, error) {
	if len(password) < 6 {
		return "", errors.ValidationError("password must be at least 6 characters")
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a candidate password against a stored hash
func CheckPassword(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return errors.Unauthorized("invalid credentials")
	}
	return nil
}
