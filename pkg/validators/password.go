package validators

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrPasswordEmpty    = errors.New("no password provided")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes long")
	ErrPasswordNoUpper  = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoLower  = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoNumber = errors.New("password must contain at least one number")
)

// MaxPasswordBytes is the longest input bcrypt accepts
const MaxPasswordBytes = 72

// PasswordValidator returns the first rule p breaks. Length is counted in
// bytes since bcrypt refuses anything over MaxPasswordBytes
func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) < 8 {
		return ErrPasswordTooShort
	}

	if len(p) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}

	if !strings.ContainsFunc(p, unicode.IsUpper) {
		return ErrPasswordNoUpper
	}

	if !strings.ContainsFunc(p, unicode.IsLower) {
		return ErrPasswordNoLower
	}

	if !strings.ContainsFunc(p, unicode.IsDigit) {
		return ErrPasswordNoNumber
	}

	return nil
}
