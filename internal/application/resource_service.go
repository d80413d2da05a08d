package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/relief-directory/internal/domain/entity"
	repo "github.com/oksasatya/relief-directory/internal/domain/repository"
	"github.com/oksasatya/relief-directory/pkg/helpers"
)

// ListCache is an optional read-through cache for the public list. Entries
// live under a generation; Invalidate moves to a new one so a list read before
// a status change can never be served after it. Status writes that bypass
// ResourceService are only bounded by the cache TTL.
type ListCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64, typeFilter *entity.ResourceType) ([]entity.ResourceSummary, bool, error)
	Set(ctx context.Context, gen int64, typeFilter *entity.ResourceType, items []entity.ResourceSummary) error
	Invalidate(ctx context.Context) error
}

// SubmitInput holds a raw submission. Lat and Lng stay untyped so that an
// absent coordinate (nil) can be told apart from zero.
type SubmitInput struct {
	Type        string
	Name        string
	Address     string
	Description string
	Lat         any
	Lng         any
}

type ResourceService struct {
	Resources repo.ResourceRepository
	Users     repo.UserRepository
	Audit     repo.AuditRepository
	Cache     ListCache
	Logger    *logrus.Logger
}

func NewResourceService(resources repo.ResourceRepository, users repo.UserRepository, audit repo.AuditRepository, cache ListCache, logger *logrus.Logger) *ResourceService {
	return &ResourceService{
		Resources: resources,
		Users:     users,
		Audit:     audit,
		Cache:     cache,
		Logger:    logger,
	}
}

// Submit validates and stores a new pending resource for the caller.
func (s *ResourceService) Submit(ctx context.Context, caller *Identity, in SubmitInput, meta RequestMeta) (string, error) {
	if caller == nil || caller.UserID == "" {
		return "", ErrUnauthorized
	}

	name := strings.TrimSpace(in.Name)
	address := strings.TrimSpace(in.Address)
	typ := strings.TrimSpace(in.Type)
	if name == "" || address == "" || typ == "" || in.Lat == nil || in.Lng == nil {
		return "", invalid("Missing required location or resource data.")
	}

	lat, err := entity.ParseCoordinate(in.Lat)
	if err != nil {
		return "", invalid("Invalid latitude or longitude values.")
	}
	lng, err := entity.ParseCoordinate(in.Lng)
	if err != nil {
		return "", invalid("Invalid latitude or longitude values.")
	}
	point, err := entity.NewPoint(lat, lng)
	if err != nil {
		return "", invalid("Invalid latitude or longitude values.")
	}

	rt, ok := entity.ParseResourceType(typ)
	if !ok {
		return "", invalid("Invalid resource type.")
	}

	res := &entity.Resource{
		Type:        rt,
		Name:        name,
		Address:     address,
		Description: strings.TrimSpace(in.Description),
		Location:    point,
		Status:      entity.StatusPending,
		SubmittedBy: caller.UserID,
	}
	if err := s.Resources.Create(ctx, res); err != nil {
		if errors.Is(err, repo.ErrConstraint) {
			return "", invalid("Invalid resource data.")
		}
		return "", internalErr("Internal server error during resource submission.", err)
	}

	recordAudit(ctx, s.Audit, s.Logger, entity.AuditEntry{
		UserID:    caller.UserID,
		Email:     caller.Email,
		Action:    entity.AuditResourceSubmit,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Metadata:  map[string]any{"resource_id": res.ID, "type": string(rt)},
	})
	return res.ID, nil
}

// List returns verified resources, optionally restricted to one type.
// "" and "all" mean no restriction; an unknown type matches nothing.
func (s *ResourceService) List(ctx context.Context, typeFilter string) ([]entity.ResourceSummary, error) {
	var filter *entity.ResourceType
	if typeFilter != "" && typeFilter != entity.TypeFilterAll {
		rt, ok := entity.ParseResourceType(typeFilter)
		if !ok {
			return []entity.ResourceSummary{}, nil
		}
		filter = &rt
	}

	// generation is read before storage so a concurrent SetStatus orphans our write
	useCache := s.Cache != nil
	var gen int64
	if useCache {
		var err error
		if gen, err = s.Cache.Generation(ctx); err != nil {
			helpers.LogError(s.Logger, "list cache generation read failed", err, nil)
			useCache = false
		}
	}
	if useCache {
		items, hit, err := s.Cache.Get(ctx, gen, filter)
		if err != nil {
			helpers.LogError(s.Logger, "list cache read failed", err, nil)
		} else if hit {
			return items, nil
		}
	}

	items, err := s.Resources.ListVerified(ctx, filter)
	if err != nil {
		return nil, internalErr("Internal server error during resource fetching.", err)
	}
	if items == nil {
		items = []entity.ResourceSummary{}
	}

	if useCache {
		if err := s.Cache.Set(ctx, gen, filter, items); err != nil {
			helpers.LogError(s.Logger, "list cache write failed", err, nil)
		}
	}
	return items, nil
}

func (s *ResourceService) requireModerator(ctx context.Context, caller *Identity) error {
	if caller == nil || caller.UserID == "" {
		return ErrUnauthorized
	}
	ok, err := s.Users.HasRole(ctx, caller.UserID, entity.RoleModerator)
	if err != nil {
		return internalErr("Internal server error.", err)
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// ListForModeration returns full records in the given status, pending when empty.
func (s *ResourceService) ListForModeration(ctx context.Context, caller *Identity, status string) ([]entity.Resource, error) {
	if err := s.requireModerator(ctx, caller); err != nil {
		return nil, err
	}
	if status == "" {
		status = string(entity.StatusPending)
	}
	st, ok := entity.ParseStatus(status)
	if !ok {
		return nil, invalid("Invalid status.")
	}
	items, err := s.Resources.ListByStatus(ctx, st)
	if err != nil {
		return nil, internalErr("Internal server error.", err)
	}
	return items, nil
}

// SetStatus moves a resource to a new moderation status and retires cached lists.
func (s *ResourceService) SetStatus(ctx context.Context, caller *Identity, id, status string, meta RequestMeta) (*entity.Resource, error) {
	if err := s.requireModerator(ctx, caller); err != nil {
		return nil, err
	}
	st, ok := entity.ParseStatus(strings.TrimSpace(status))
	if !ok {
		return nil, invalid("Invalid status.")
	}

	res, err := s.Resources.UpdateStatus(ctx, id, st)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErr("Internal server error.", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			helpers.LogError(s.Logger, "list cache invalidation failed", err, logrus.Fields{"resource_id": id})
		}
	}
	recordAudit(ctx, s.Audit, s.Logger, entity.AuditEntry{
		UserID:    caller.UserID,
		Email:     caller.Email,
		Action:    entity.AuditResourceModerate,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Metadata:  map[string]any{"resource_id": id, "status": string(st)},
	})
	return res, nil
}
