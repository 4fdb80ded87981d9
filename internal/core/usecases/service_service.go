package usecases

import (
	"context"
	"fmt"

	"github.com/avinashdhn/mechmap/internal/core/domain"
	"github.com/avinashdhn/mechmap/internal/core/ports"
)

// ServiceService handles the service-offering catalog.
type ServiceService struct {
	services  ports.ServiceRepository
	publisher ports.EventPublisher
}

// NewServiceService creates a new ServiceService.
func NewServiceService(services ports.ServiceRepository, publisher ports.EventPublisher) *ServiceService {
	return &ServiceService{services: services, publisher: publisher}
}

// List returns all service records.
func (s *ServiceService) List(ctx context.Context) ([]domain.Service, error) {
	return s.services.List(ctx)
}

// ListByOwner returns the services owned by the given user.
func (s *ServiceService) ListByOwner(ctx context.Context, userID string) ([]domain.Service, error) {
	return s.services.ListByOwner(ctx, userID)
}

// Create adds a new offering owned by the caller. Status defaults to
// active.
func (s *ServiceService) Create(ctx context.Context, ownerID string, svc *domain.Service) (*domain.Service, error) {
	if svc.Name == "" || svc.Description == "" {
		return nil, fmt.Errorf("%w: name and description are required", domain.ErrValidation)
	}
	svc.ProviderID = ownerID
	if svc.Status == "" {
		svc.Status = domain.ServiceActive
	}

	if err := s.services.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	if s.publisher != nil {
		_ = s.publisher.PublishServiceChange(ctx, "created", svc)
	}
	return svc, nil
}

// Update overwrites the given fields of an offering the caller owns.
// A non-owned or missing id reports domain.ErrNotFound.
func (s *ServiceService) Update(ctx context.Context, ownerID string, svc *domain.Service) (*domain.Service, error) {
	updated, err := s.services.Update(ctx, svc, ownerID)
	if err != nil {
		return nil, err
	}
	if s.publisher != nil {
		_ = s.publisher.PublishServiceChange(ctx, "updated", updated)
	}
	return updated, nil
}

// Delete removes an offering the caller owns. A non-owned or missing id
// reports domain.ErrNotFound.
func (s *ServiceService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.services.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	if s.publisher != nil {
		_ = s.publisher.PublishServiceChange(ctx, "deleted", &domain.Service{ID: id, ProviderID: ownerID})
	}
	return nil
}
