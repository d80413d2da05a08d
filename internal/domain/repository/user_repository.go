package repository

import (
	"context"

	"github.com/oksasatya/relief-directory/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Create must fail with ErrDuplicateEmail when the normalized email is taken;
// that check belongs to the store, not the caller.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	HasRole(ctx context.Context, userID, role string) (bool, error)
	AssignRole(ctx context.Context, userID, role string) error
}
