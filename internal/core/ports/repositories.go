package ports

import (
	"context"

	"github.com/avinashdhn/mechmap/internal/core/domain"
)

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// ProviderRepository persists provider profiles.
//
// ListCandidates is the coarse selection behind the nearby query: it
// filters by status and (optionally) exact service type only. Distance
// filtering happens in the engine, so a later move to an indexed
// geo-range query only changes this implementation, not the contract.
type ProviderRepository interface {
	// Upsert inserts the profile or, when one already exists for the
	// owning user, overwrites its payload fields in place. It must be
	// atomic: concurrent calls for the same user never create two rows.
	Upsert(ctx context.Context, p *domain.Provider) (created bool, err error)
	GetByID(ctx context.Context, id string) (*domain.Provider, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Provider, error)
	ListCandidates(ctx context.Context, serviceType string, statuses []string) ([]domain.Provider, error)
	List(ctx context.Context) ([]domain.Provider, error)
	SetStatus(ctx context.Context, id, status string) error
}

// ServiceRepository persists service offerings.
type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) error
	List(ctx context.Context) ([]domain.Service, error)
	ListByOwner(ctx context.Context, userID string) ([]domain.Service, error)
	// ListActiveByOwner feeds the nearby enrichment: active offerings
	// of the given owning user, regardless of the parent provider state.
	ListActiveByOwner(ctx context.Context, userID string) ([]domain.Service, error)
	// Update and Delete are owner-scoped; a mismatch reports
	// domain.ErrNotFound.
	Update(ctx context.Context, s *domain.Service, ownerID string) (*domain.Service, error)
	Delete(ctx context.Context, id, ownerID string) error
}
