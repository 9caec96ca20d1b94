package password

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// ErrPolicy is returned when a plain-text password does not meet the
// complexity policy: at least 8 characters, only latin letters and
// digits, with at least one lower-case letter, one upper-case letter
// and one digit.
var ErrPolicy = errors.New("password must be at least 8 latin letters and digits, with a lower-case letter, an upper-case letter and a digit")

func Validate(plain string) error {
	var lower, upper, digit bool

	if len(plain) < 8 {
		return ErrPolicy
	}

	for _, r := range plain {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case unicode.IsDigit(r) && r < 128:
			digit = true
		default:
			return ErrPolicy
		}
	}

	if !lower || !upper || !digit {
		return ErrPolicy
	}

	return nil
}

func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}

// Verify reports whether plain matches the stored hash.
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
