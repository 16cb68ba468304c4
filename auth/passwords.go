package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword salts and hashes a plain text password with the given bcrypt cost.
func HashPassword(plain string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("unable to hash password: %v", err)
	}
	return string(hashed), nil
}

// ComparePassword reports whether plain matches the hashed password.
func ComparePassword(hashed string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
