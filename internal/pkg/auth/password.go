package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for new password hashes
var BcryptCost = bcrypt.DefaultCost

// HashPassword returns a salted bcrypt hash of password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword reports whether password matches the stored hash.
// Malformed hashes never match.
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
