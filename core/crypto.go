package core

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost the stored hashes were generated with.
const bcryptCost = 10

// HashSecretKey hashes a client secret key with bcrypt. A fresh random salt
// is generated on every call and embedded in the returned string.
func HashSecretKey(secretKey string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secretKey), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret key: %w", err)
	}
	return string(hash), nil
}

// VerifySecretKey reports whether secretKey matches the stored hash. The
// comparison is constant time; a mismatch is false, never an error.
func VerifySecretKey(secretKey, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secretKey)) == nil
}
