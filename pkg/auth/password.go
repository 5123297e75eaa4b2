package auth

import (
	"strings"
	"unicode/utf8"

	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
)

// BcryptCost is a variable so tests can drop it to bcrypt.MinCost.
var BcryptCost = 12

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

// CheckPasswordHash checks if a password matches a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidateCredentials checks a registration request and returns the
// trimmed username.
func ValidateCredentials(username, password string) (string, error) {
	username = strings.TrimSpace(username)

	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return "", domain.ErrInvalidUsername
	}
	if domain.IsReservedName(username) {
		return "", domain.ErrReservedUsername
	}
	if len(password) < MinPasswordLength {
		return "", domain.ErrWeakPassword
	}
	return username, nil
}
