package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/oksasatya/relief-directory/internal/domain/entity"
	"github.com/oksasatya/relief-directory/internal/domain/repository"
)

// ResourceRepository stores resources in a PostGIS geography column.
// ST_MakePoint takes (x, y) = (lng, lat); ST_X/ST_Y read them back the same way.
type ResourceRepository struct {
	db DBTX
}

func NewResourceRepository(db DBTX) *ResourceRepository {
	return &ResourceRepository{db: db}
}

const resourceColumns = `
	id::text, type, name, address, description,
	ST_X(location::geometry) AS lng, ST_Y(location::geometry) AS lat,
	status, submitted_by::text, created_at, updated_at`

func scanResource(row pgx.Row) (*entity.Resource, error) {
	var (
		res         entity.Resource
		typ, status string
		lngX, latY  float64
	)
	if err := row.Scan(&res.ID, &typ, &res.Name, &res.Address, &res.Description,
		&lngX, &latY, &status, &res.SubmittedBy, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, err
	}
	res.Type = entity.ResourceType(typ)
	res.Status = entity.Status(status)
	res.Location = entity.Point{Lng: lngX, Lat: latY}
	return &res, nil
}

func (r *ResourceRepository) Create(ctx context.Context, res *entity.Resource) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO resources (type, name, address, description, location, status, submitted_by)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326)::geography, $7, $8)
		RETURNING id::text, created_at, updated_at
	`, string(res.Type), res.Name, res.Address, res.Description,
		res.Location.Lng, res.Location.Lat, string(res.Status), res.SubmittedBy)

	if err := row.Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		if isPgCode(err, pgerrcode.CheckViolation, pgerrcode.NotNullViolation,
			pgerrcode.InvalidTextRepresentation, pgerrcode.ForeignKeyViolation) {
			return oops.With("operation", "insert resource").Wrapf(repository.ErrConstraint, "%s", err.Error())
		}
		return oops.With("operation", "insert resource").Wrap(err)
	}
	return nil
}

func (r *ResourceRepository) ListVerified(ctx context.Context, typeFilter *entity.ResourceType) ([]entity.ResourceSummary, error) {
	query := `
		SELECT id::text, type, name, address,
		       ST_Y(location::geometry) AS lat, ST_X(location::geometry) AS lng
		FROM resources
		WHERE status = 'verified'`
	args := []any{}
	if typeFilter != nil {
		query += ` AND type = $1`
		args = append(args, string(*typeFilter))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, oops.With("operation", "list verified resources").Wrap(err)
	}
	defer rows.Close()

	out := make([]entity.ResourceSummary, 0)
	for rows.Next() {
		var (
			s   entity.ResourceSummary
			typ string
		)
		if err := rows.Scan(&s.ID, &typ, &s.Name, &s.Address, &s.Lat, &s.Lng); err != nil {
			return nil, oops.With("operation", "scan verified resource").Wrap(err)
		}
		s.Type = entity.ResourceType(typ)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate verified resources").Wrap(err)
	}
	return out, nil
}

func (r *ResourceRepository) ListByStatus(ctx context.Context, status entity.Status) ([]entity.Resource, error) {
	rows, err := r.db.Query(ctx, `SELECT`+resourceColumns+`
		FROM resources
		WHERE status = $1
		ORDER BY created_at ASC`, string(status))
	if err != nil {
		return nil, oops.With("operation", "list resources by status").With("status", status).Wrap(err)
	}
	defer rows.Close()

	out := make([]entity.Resource, 0)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, oops.With("operation", "scan resource").Wrap(err)
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate resources").Wrap(err)
	}
	return out, nil
}

func (r *ResourceRepository) UpdateStatus(ctx context.Context, id string, status entity.Status) (*entity.Resource, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE resources
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING`+resourceColumns, id, string(status))

	res, err := scanResource(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isPgCode(err, pgerrcode.InvalidTextRepresentation) {
			return nil, repository.ErrNotFound
		}
		return nil, oops.With("operation", "update resource status").With("resource_id", id).Wrap(err)
	}
	return res, nil
}

var _ repository.ResourceRepository = (*ResourceRepository)(nil)
