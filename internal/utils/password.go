package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest input bcrypt reads. Longer passwords are
// truncated before hashing and comparing, so they are accepted rather than
// rejected with bcrypt.ErrPasswordTooLong.
const maxPasswordBytes = 72

// HashPassword hashes a plaintext password using bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, bcrypt.DefaultCost)
}

// HashPasswordWithCost hashes a plaintext password using bcrypt.
// The generated salt is embedded in the returned hash.
// Costs outside bcrypt's accepted range fall back to the default cost.
func HashPasswordWithCost(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(passwordBytes(password), cost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordBytes(password)) == nil
}

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
