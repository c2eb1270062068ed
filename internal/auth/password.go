package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the bcrypt input limit.
const MaxPasswordBytes = 72

// ErrHashingFailure is returned when bcrypt rejects its input: cost out of
// range, an over-long password, or a stored hash that is not a bcrypt hash.
var ErrHashingFailure = errors.New("password hashing failed")

// HashPassword creates a bcrypt hash of the password.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("%w: cost %d outside [%d, %d]", ErrHashingFailure, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if len(password) > MaxPasswordBytes {
		return "", fmt.Errorf("%w: password exceeds %d bytes", ErrHashingFailure, MaxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashingFailure, err)
	}
	return string(hash), nil
}

// CheckPassword compares a password with its hash. A mismatch returns
// false with a nil error; only a malformed hash is an error.
//
// bcrypt ignores input past MaxPasswordBytes, so longer passwords never
// match: HashPassword refuses them and a stored hash cannot stand for one.
func CheckPassword(password, hash string) (bool, error) {
	if len(password) > MaxPasswordBytes {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrHashingFailure, err)
	}
}
