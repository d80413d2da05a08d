// Package memory provides process-local repositories for development and tests.
// Uniqueness and status transitions are enforced under a single mutex per
// store, which gives the same guarantees the postgres unique index does.
package memory

import (
	"time"

	"github.com/google/uuid"
)

// Store bundles the in-memory repositories.
type Store struct {
	Users     *UserRepository
	Resources *ResourceRepository
	Audit     *AuditRepository
}

func NewStore() *Store {
	return &Store{
		Users:     NewUserRepository(),
		Resources: NewResourceRepository(),
		Audit:     NewAuditRepository(),
	}
}

func newID() string { return uuid.NewString() }

func now() time.Time { return time.Now().UTC() }
