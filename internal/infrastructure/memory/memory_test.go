package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/relief-directory/internal/domain/entity"
	"github.com/oksasatya/relief-directory/internal/domain/repository"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u := &entity.User{Email: "a@example.com", Name: "Alice", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.Name)

	_, err = repo.GetByEmail(ctx, "b@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, &entity.User{Email: "a@example.com"}))
	err := repo.Create(ctx, &entity.User{Email: "a@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUserRepository_ConcurrentCreateSameEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	const n = 32
	var (
		wg      sync.WaitGroup
		ok, dup atomic.Int32
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, &entity.User{Email: "race@example.com"})
			switch {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(t, err, repository.ErrDuplicateEmail):
				dup.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, ok.Load())
	assert.EqualValues(t, n-1, dup.Load())
}

func TestUserRepository_Roles(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	u := &entity.User{Email: "mod@example.com"}
	require.NoError(t, repo.Create(ctx, u))

	has, err := repo.HasRole(ctx, u.ID, entity.RoleModerator)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, repo.AssignRole(ctx, u.ID, entity.RoleModerator))
	has, err = repo.HasRole(ctx, u.ID, entity.RoleModerator)
	require.NoError(t, err)
	assert.True(t, has)

	assert.ErrorIs(t, repo.AssignRole(ctx, "missing", entity.RoleModerator), repository.ErrNotFound)
}

func TestResourceRepository_OnlyVerifiedAreListed(t *testing.T) {
	ctx := context.Background()
	repo := NewResourceRepository()

	mk := func(typ entity.ResourceType, name string) *entity.Resource {
		res := &entity.Resource{
			Type:     typ,
			Name:     name,
			Address:  "somewhere",
			Location: entity.Point{Lng: 77.6, Lat: 12.9},
			Status:   entity.StatusPending,
		}
		require.NoError(t, repo.Create(ctx, res))
		return res
	}
	food := mk(entity.TypeFood, "Kitchen")
	shelter := mk(entity.TypeShelter, "Hall")
	mk(entity.TypeFood, "Unreviewed")

	got, err := repo.ListVerified(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	_, err = repo.UpdateStatus(ctx, food.ID, entity.StatusVerified)
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, shelter.ID, entity.StatusVerified)
	require.NoError(t, err)

	all, err := repo.ListVerified(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	ft := entity.TypeFood
	onlyFood, err := repo.ListVerified(ctx, &ft)
	require.NoError(t, err)
	require.Len(t, onlyFood, 1)
	assert.Equal(t, entity.ResourceSummary{
		ID: food.ID, Type: entity.TypeFood, Name: "Kitchen", Address: "somewhere", Lat: 12.9, Lng: 77.6,
	}, onlyFood[0])

	pending, err := repo.ListByStatus(ctx, entity.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Unreviewed", pending[0].Name)
}

func TestResourceRepository_UpdateStatus_Unknown(t *testing.T) {
	_, err := NewResourceRepository().UpdateStatus(context.Background(), "nope", entity.StatusVerified)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResourceRepository_RejectsUnknownType(t *testing.T) {
	err := NewResourceRepository().Create(context.Background(), &entity.Resource{Type: "castle", Status: entity.StatusPending})
	assert.ErrorIs(t, err, repository.ErrConstraint)
}

func TestAuditRepository_Insert(t *testing.T) {
	repo := NewAuditRepository()
	require.NoError(t, repo.Insert(context.Background(), entity.AuditEntry{Action: entity.AuditRegister, Email: "a@example.com"}))

	got := repo.Entries()
	require.Len(t, got, 1)
	assert.Equal(t, entity.AuditRegister, got[0].Action)
	assert.False(t, got[0].CreatedAt.IsZero())
}
