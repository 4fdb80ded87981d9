package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/avinashdhn/mechmap/internal/core/domain"
)

// ProviderRepo implements ports.ProviderRepository with pgx.
type ProviderRepo struct {
	db *DB
}

// NewProviderRepo creates a new ProviderRepo.
func NewProviderRepo(db *DB) *ProviderRepo {
	return &ProviderRepo{db: db}
}

const providerColumns = `
	id, owner_name, workshop_name, mobile, address, service_type,
	COALESCE(image_url, ''), latitude, longitude, user_id, status,
	created_at, updated_at`

func scanProvider(row pgx.Row, p *domain.Provider) error {
	return row.Scan(
		&p.ID, &p.OwnerName, &p.WorkshopName, &p.Mobile, &p.Address,
		&p.ServiceType, &p.ImageURL, &p.Latitude, &p.Longitude,
		&p.UserID, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
}

// Upsert inserts the profile or merges the payload fields into the
// existing row for the owning user. The unique constraint on user_id
// makes concurrent first submissions collapse into one row instead of
// racing find-then-create. Fields absent from the payload keep their
// stored values, so a re-submission carrying only a subset never wipes
// mobile, address, or coordinates. Status is only written on insert.
// The provider is rescanned from the merged row.
func (r *ProviderRepo) Upsert(ctx context.Context, p *domain.Provider) (bool, error) {
	var created bool
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO providers
			(owner_name, workshop_name, mobile, address, service_type, image_url, latitude, longitude, user_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE
		SET owner_name = COALESCE(NULLIF(EXCLUDED.owner_name, ''), providers.owner_name),
		    workshop_name = COALESCE(NULLIF(EXCLUDED.workshop_name, ''), providers.workshop_name),
		    mobile = COALESCE(NULLIF(EXCLUDED.mobile, ''), providers.mobile),
		    address = COALESCE(NULLIF(EXCLUDED.address, ''), providers.address),
		    service_type = COALESCE(NULLIF(EXCLUDED.service_type, ''), providers.service_type),
		    image_url = COALESCE(EXCLUDED.image_url, providers.image_url),
		    latitude = CASE WHEN EXCLUDED.latitude <> 0 THEN EXCLUDED.latitude ELSE providers.latitude END,
		    longitude = CASE WHEN EXCLUDED.longitude <> 0 THEN EXCLUDED.longitude ELSE providers.longitude END,
		    updated_at = now()
		RETURNING `+providerColumns+`, (xmax = 0) AS inserted
	`, p.OwnerName, p.WorkshopName, p.Mobile, p.Address, p.ServiceType,
		p.ImageURL, p.Latitude, p.Longitude, p.UserID).
		Scan(
			&p.ID, &p.OwnerName, &p.WorkshopName, &p.Mobile, &p.Address,
			&p.ServiceType, &p.ImageURL, &p.Latitude, &p.Longitude,
			&p.UserID, &p.Status, &p.CreatedAt, &p.UpdatedAt, &created,
		)
	if err != nil {
		return false, fmt.Errorf("upsert provider: %w", err)
	}
	return created, nil
}

// GetByID returns a provider by id.
func (r *ProviderRepo) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	var p domain.Provider
	row := r.db.Pool.QueryRow(ctx, `SELECT `+providerColumns+` FROM providers WHERE id = $1`, id)
	if err := scanProvider(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByUserID returns the profile owned by the given user.
func (r *ProviderRepo) GetByUserID(ctx context.Context, userID string) (*domain.Provider, error) {
	var p domain.Provider
	row := r.db.Pool.QueryRow(ctx, `SELECT `+providerColumns+` FROM providers WHERE user_id = $1`, userID)
	if err := scanProvider(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListCandidates returns providers matching the status policy and, when
// serviceType is non-empty, the exact service type. No geo filtering
// happens here.
func (r *ProviderRepo) ListCandidates(ctx context.Context, serviceType string, statuses []string) ([]domain.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE status = ANY($1)`
	args := []any{statuses}
	if serviceType != "" {
		query += ` AND service_type = $2`
		args = append(args, serviceType)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []domain.Provider
	for rows.Next() {
		var p domain.Provider
		if err := scanProvider(rows, &p); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

// List returns every profile, newest first.
func (r *ProviderRepo) List(ctx context.Context) ([]domain.Provider, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+providerColumns+` FROM providers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []domain.Provider
	for rows.Next() {
		var p domain.Provider
		if err := scanProvider(rows, &p); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

// SetStatus moves a provider to the given lifecycle state.
func (r *ProviderRepo) SetStatus(ctx context.Context, id, status string) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE providers SET status = $2, updated_at = now() WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
