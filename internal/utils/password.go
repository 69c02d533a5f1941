package utils

import "golang.org/x/crypto/bcrypt"

// passwordCost is the bcrypt work factor for newly stored credentials.
const passwordCost = bcrypt.DefaultCost

// HashPassword derives a bcrypt hash suitable for storage from a plaintext
// password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext password matches the stored
// bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
