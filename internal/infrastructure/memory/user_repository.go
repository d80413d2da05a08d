package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/relief-directory/internal/domain/entity"
	"github.com/oksasatya/relief-directory/internal/domain/repository"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	byEmail map[string]string
	roles   map[string]map[string]struct{}
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]string),
		roles:   make(map[string]map[string]struct{}),
	}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.Email]; taken {
		return repository.ErrDuplicateEmail
	}
	ts := now()
	u.ID = newID()
	u.CreatedAt, u.UpdatedAt = ts, ts

	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) HasRole(_ context.Context, userID, role string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.roles[userID][role]
	return ok, nil
}

func (r *UserRepository) AssignRole(_ context.Context, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[userID]; !ok {
		return repository.ErrNotFound
	}
	if r.roles[userID] == nil {
		r.roles[userID] = make(map[string]struct{})
	}
	r.roles[userID][role] = struct{}{}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
