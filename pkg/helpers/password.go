package helpers

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is used when the configured cost is outside bcrypt's range
const DefaultBcryptCost = 12

// MaxPasswordBytes is the longest input bcrypt will hash
const MaxPasswordBytes = 72

// NormalizeCost returns cost when bcrypt accepts it, DefaultBcryptCost otherwise
func NormalizeCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return DefaultBcryptCost
	}
	return cost
}

// HashPassword hashes the plain text password using bcrypt with a random per-call salt
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), NormalizeCost(cost))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
