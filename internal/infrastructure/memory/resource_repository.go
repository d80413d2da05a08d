package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/oksasatya/relief-directory/internal/domain/entity"
	"github.com/oksasatya/relief-directory/internal/domain/repository"
)

type ResourceRepository struct {
	mu    sync.RWMutex
	items map[string]*entity.Resource
	seq   []string // insertion order
}

func NewResourceRepository() *ResourceRepository {
	return &ResourceRepository{items: make(map[string]*entity.Resource)}
}

func (r *ResourceRepository) Create(_ context.Context, res *entity.Resource) error {
	if _, ok := entity.ParseResourceType(string(res.Type)); !ok {
		return repository.ErrConstraint
	}
	if _, ok := entity.ParseStatus(string(res.Status)); !ok {
		return repository.ErrConstraint
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	ts := now()
	res.ID = newID()
	res.CreatedAt, res.UpdatedAt = ts, ts

	cp := *res
	r.items[res.ID] = &cp
	r.seq = append(r.seq, res.ID)
	return nil
}

func (r *ResourceRepository) ListVerified(_ context.Context, typeFilter *entity.ResourceType) ([]entity.ResourceSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.ResourceSummary, 0)
	for _, id := range r.seq {
		res := r.items[id]
		if res.Status != entity.StatusVerified {
			continue
		}
		if typeFilter != nil && res.Type != *typeFilter {
			continue
		}
		out = append(out, res.Summary())
	}
	return out, nil
}

func (r *ResourceRepository) ListByStatus(_ context.Context, status entity.Status) ([]entity.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Resource, 0)
	for _, id := range r.seq {
		if res := r.items[id]; res.Status == status {
			out = append(out, *res)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ResourceRepository) UpdateStatus(_ context.Context, id string, status entity.Status) (*entity.Resource, error) {
	if _, ok := entity.ParseStatus(string(status)); !ok {
		return nil, repository.ErrConstraint
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	res.Status = status
	res.UpdatedAt = now()
	cp := *res
	return &cp, nil
}

var _ repository.ResourceRepository = (*ResourceRepository)(nil)
