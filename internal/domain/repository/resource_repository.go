package repository

import (
	"context"

	"github.com/oksasatya/relief-directory/internal/domain/entity"
)

// ResourceRepository persists resources and their moderation status.
type ResourceRepository interface {
	Create(ctx context.Context, r *entity.Resource) error
	// ListVerified returns verified resources only; a nil filter matches every type.
	ListVerified(ctx context.Context, typeFilter *entity.ResourceType) ([]entity.ResourceSummary, error)
	ListByStatus(ctx context.Context, status entity.Status) ([]entity.Resource, error)
	UpdateStatus(ctx context.Context, id string, status entity.Status) (*entity.Resource, error)
}
