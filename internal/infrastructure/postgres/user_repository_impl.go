package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/oksasatya/relief-directory/internal/domain/entity"
	"github.com/oksasatya/relief-directory/internal/domain/repository"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// isPgCode reports whether err carries one of the given SQLSTATE codes
func isPgCode(err error, codes ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	for _, c := range codes {
		if pgErr.Code == c {
			return true
		}
	}
	return false
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING id::text, created_at, updated_at
	`, u.Email, u.PasswordHash, u.Name)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isPgCode(err, pgerrcode.UniqueViolation) {
			return repository.ErrDuplicateEmail
		}
		if isPgCode(err, pgerrcode.CheckViolation, pgerrcode.NotNullViolation) {
			return oops.With("operation", "insert user").Wrapf(repository.ErrConstraint, "%s", err.Error())
		}
		return oops.With("operation", "insert user").Wrap(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "get user by id", `
		SELECT id::text, email, password_hash, name, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "get user by email", `
		SELECT id::text, email, password_hash, name, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
}

func (r *UserRepository) getOne(ctx context.Context, op, query string, arg string) (*entity.User, error) {
	u := &entity.User{}
	row := r.db.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		// a malformed uuid can never match a row
		if isPgCode(err, pgerrcode.InvalidTextRepresentation) {
			return nil, repository.ErrNotFound
		}
		return nil, oops.With("operation", op).Wrap(err)
	}
	return u, nil
}

func (r *UserRepository) HasRole(ctx context.Context, userID, role string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM user_roles ur
			JOIN roles ro ON ro.id = ur.role_id
			WHERE ur.user_id = $1 AND ro.name = $2
		)
	`, userID, role).Scan(&ok)
	if err != nil {
		if isPgCode(err, pgerrcode.InvalidTextRepresentation) {
			return false, nil
		}
		return false, oops.With("operation", "check user role").With("role", role).Wrap(err)
	}
	return ok, nil
}

func (r *UserRepository) AssignRole(ctx context.Context, userID, role string) error {
	_, err := r.db.Exec(ctx, `
		WITH ro AS (
			INSERT INTO roles (name) VALUES ($2)
			ON CONFLICT (name) DO UPDATE SET updated_at = now()
			RETURNING id
		)
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM ro
		ON CONFLICT (user_id, role_id) DO NOTHING
	`, userID, role)
	if err != nil {
		if isPgCode(err, pgerrcode.ForeignKeyViolation, pgerrcode.InvalidTextRepresentation) {
			return repository.ErrNotFound
		}
		return oops.With("operation", "assign role").With("role", role).Wrap(err)
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
