package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/avinashdhn/mechmap/internal/core/domain"
)

// ServiceRepo implements ports.ServiceRepository with pgx.
type ServiceRepo struct {
	db *DB
}

// NewServiceRepo creates a new ServiceRepo.
func NewServiceRepo(db *DB) *ServiceRepo {
	return &ServiceRepo{db: db}
}

const serviceColumns = `
	id, name, description, price, provider_id, latitude, longitude,
	COALESCE(image_url, ''), status, created_at, updated_at`

func scanService(row pgx.Row, s *domain.Service) error {
	return row.Scan(
		&s.ID, &s.Name, &s.Description, &s.Price, &s.ProviderID,
		&s.Latitude, &s.Longitude, &s.ImageURL, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	)
}

// Create inserts an offering.
func (r *ServiceRepo) Create(ctx context.Context, s *domain.Service) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO services (name, description, price, provider_id, latitude, longitude, image_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)
		RETURNING id, created_at, updated_at
	`, s.Name, s.Description, s.Price, s.ProviderID, s.Latitude, s.Longitude, s.ImageURL, s.Status).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// List returns all offerings.
func (r *ServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	return r.list(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY created_at DESC`)
}

// ListByOwner returns the offerings owned by the given user.
func (r *ServiceRepo) ListByOwner(ctx context.Context, userID string) ([]domain.Service, error) {
	return r.list(ctx, `SELECT `+serviceColumns+` FROM services WHERE provider_id = $1 ORDER BY created_at DESC`, userID)
}

// ListActiveByOwner returns the active offerings owned by the given
// user. Used by the nearby enrichment.
func (r *ServiceRepo) ListActiveByOwner(ctx context.Context, userID string) ([]domain.Service, error) {
	return r.list(ctx, `
		SELECT `+serviceColumns+` FROM services
		WHERE provider_id = $1 AND status = 'active'
		ORDER BY created_at`, userID)
}

func (r *ServiceRepo) list(ctx context.Context, query string, args ...any) ([]domain.Service, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		var s domain.Service
		if err := scanService(rows, &s); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// Update overwrites the provided fields of an offering, scoped to its
// owner. Empty strings and zero values leave the column untouched, so
// partial payloads work the way the API promises. A missing or
// non-owned row reports domain.ErrNotFound without distinguishing the
// two.
func (r *ServiceRepo) Update(ctx context.Context, s *domain.Service, ownerID string) (*domain.Service, error) {
	var out domain.Service
	row := r.db.Pool.QueryRow(ctx, `
		UPDATE services SET
			name = COALESCE(NULLIF($3, ''), name),
			description = COALESCE(NULLIF($4, ''), description),
			price = CASE WHEN $5::numeric > 0 THEN $5::numeric ELSE price END,
			latitude = CASE WHEN $6::float8 <> 0 THEN $6::float8 ELSE latitude END,
			longitude = CASE WHEN $7::float8 <> 0 THEN $7::float8 ELSE longitude END,
			image_url = COALESCE(NULLIF($8, ''), image_url),
			status = COALESCE(NULLIF($9, ''), status),
			updated_at = now()
		WHERE id = $1 AND provider_id = $2
		RETURNING `+serviceColumns,
		s.ID, ownerID, s.Name, s.Description, s.Price, s.Latitude, s.Longitude, s.ImageURL, s.Status)
	if err := scanService(row, &out); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Delete removes an offering, scoped to its owner.
func (r *ServiceRepo) Delete(ctx context.Context, id, ownerID string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM services WHERE id = $1 AND provider_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
