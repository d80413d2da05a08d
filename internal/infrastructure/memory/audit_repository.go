package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/relief-directory/internal/domain/entity"
	"github.com/oksasatya/relief-directory/internal/domain/repository"
)

type AuditRepository struct {
	mu      sync.Mutex
	entries []entity.AuditEntry
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

func (r *AuditRepository) Insert(_ context.Context, e entity.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now()
	}
	r.entries = append(r.entries, e)
	return nil
}

// Entries returns a snapshot of everything recorded so far
func (r *AuditRepository) Entries() []entity.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.AuditEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

var _ repository.AuditRepository = (*AuditRepository)(nil)
