package usecases

import (
	"context"
	"fmt"

	"github.com/avinashdhn/mechmap/internal/core/domain"
	"github.com/avinashdhn/mechmap/internal/core/ports"
	"github.com/avinashdhn/mechmap/internal/pkg/metrics"
)

// ModerationService applies provider status decisions.
type ModerationService struct {
	providers ports.ProviderRepository
	cache     ports.CacheService
	publisher ports.EventPublisher
	starter   ports.ModerationStarter
}

// NewModerationService creates a new ModerationService. starter may be
// nil, in which case decisions are applied directly instead of being
// routed through the workflow.
func NewModerationService(
	providers ports.ProviderRepository,
	cache ports.CacheService,
	publisher ports.EventPublisher,
	starter ports.ModerationStarter,
) *ModerationService {
	return &ModerationService{providers: providers, cache: cache, publisher: publisher, starter: starter}
}

// Decide records an admin approve/reject decision for a provider.
func (s *ModerationService) Decide(ctx context.Context, providerID, status string) error {
	if status != domain.ProviderApproved && status != domain.ProviderRejected {
		return fmt.Errorf("%w: status must be %q or %q", domain.ErrValidation, domain.ProviderApproved, domain.ProviderRejected)
	}

	if s.starter != nil {
		return s.starter.SignalDecision(ctx, providerID, status)
	}
	return s.Apply(ctx, providerID, status)
}

// Apply writes the status transition and publishes the change. Called
// directly when no workflow is configured, and by the workflow activity
// otherwise.
func (s *ModerationService) Apply(ctx context.Context, providerID, status string) error {
	if err := s.providers.SetStatus(ctx, providerID, status); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	metrics.ModerationDecisions.WithLabelValues(status).Inc()

	p, err := s.providers.GetByID(ctx, providerID)
	if err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, "providers:user:"+p.UserID)
	}
	if s.publisher != nil {
		_ = s.publisher.PublishProviderStatus(ctx, p)
	}
	return nil
}
