package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for the credential store.
// PasswordHash holds a bcrypt hash; the plaintext is never kept.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail returns the lookup and uniqueness key for an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
