package ports

import (
	"context"

	"github.com/avinashdhn/mechmap/internal/core/domain"
)

// EventPublisher publishes marketplace events to a message broker.
type EventPublisher interface {
	PublishProviderRegistered(ctx context.Context, p *domain.Provider) error
	PublishProviderStatus(ctx context.Context, p *domain.Provider) error
	PublishServiceChange(ctx context.Context, action string, s *domain.Service) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// ModerationStarter kicks off the asynchronous provider moderation flow.
type ModerationStarter interface {
	StartModeration(ctx context.Context, providerID string) error
	SignalDecision(ctx context.Context, providerID, status string) error
}
