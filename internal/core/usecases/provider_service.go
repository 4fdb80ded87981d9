package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avinashdhn/mechmap/internal/core/domain"
	"github.com/avinashdhn/mechmap/internal/core/ports"
	"github.com/avinashdhn/mechmap/internal/pkg/metrics"
)

// ProviderService handles provider profile registration and lookup.
type ProviderService struct {
	providers  ports.ProviderRepository
	cache      ports.CacheService
	publisher  ports.EventPublisher
	moderation ports.ModerationStarter
}

// NewProviderService creates a new ProviderService.
func NewProviderService(
	providers ports.ProviderRepository,
	cache ports.CacheService,
	publisher ports.EventPublisher,
	moderation ports.ModerationStarter,
) *ProviderService {
	return &ProviderService{
		providers:  providers,
		cache:      cache,
		publisher:  publisher,
		moderation: moderation,
	}
}

// Upsert creates the caller's provider profile or merges the payload
// fields into the existing one. Fields absent from the payload keep
// their stored values. At most one profile exists per user; the
// repository enforces that atomically. A fresh profile starts pending
// and enters the moderation flow.
func (s *ProviderService) Upsert(ctx context.Context, userID string, p *domain.Provider) (*domain.Provider, error) {
	if p.OwnerName == "" || p.WorkshopName == "" || p.ServiceType == "" {
		return nil, fmt.Errorf("%w: ownerName, workshopName and serviceType are required", domain.ErrValidation)
	}
	p.UserID = userID

	created, err := s.providers.Upsert(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("upsert provider: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, "providers:user:"+userID)
	}

	if created {
		metrics.ProvidersRegistered.Inc()
		if s.publisher != nil {
			_ = s.publisher.PublishProviderRegistered(ctx, p)
		}
		if s.moderation != nil {
			_ = s.moderation.StartModeration(ctx, p.ID)
		}
	}

	return p, nil
}

// MyProfile returns the caller's provider profile.
func (s *ProviderService) MyProfile(ctx context.Context, userID string) (*domain.Provider, error) {
	cacheKey := "providers:user:" + userID
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var p domain.Provider
			if err := json.Unmarshal(data, &p); err == nil {
				metrics.CacheHits.WithLabelValues("profile").Inc()
				return &p, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("profile").Inc()
	}

	p, err := s.providers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(p); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}
	return p, nil
}

// ByServiceType lists approved providers for a service type. Unlike the
// nearby query this path never includes pending profiles.
func (s *ProviderService) ByServiceType(ctx context.Context, serviceType string) ([]domain.Provider, error) {
	return s.providers.ListCandidates(ctx, serviceType, []string{domain.ProviderApproved})
}

// List returns every provider profile. Admin surface only.
func (s *ProviderService) List(ctx context.Context) ([]domain.Provider, error) {
	return s.providers.List(ctx)
}
