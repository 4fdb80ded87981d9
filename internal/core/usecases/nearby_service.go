package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/avinashdhn/mechmap/internal/core/domain"
	"github.com/avinashdhn/mechmap/internal/core/ports"
	"github.com/avinashdhn/mechmap/internal/pkg/geospatial"
	"github.com/avinashdhn/mechmap/internal/pkg/metrics"
)

// NearbyService is the nearby-provider query engine: coarse candidate
// selection, in-process great-circle filtering, distance ranking, and
// active-service enrichment.
type NearbyService struct {
	providers ports.ProviderRepository
	services  ports.ServiceRepository
	cache     ports.CacheService

	defaultRadiusKm float64
	includeStatuses []string
	cacheTTLSeconds int
}

// NewNearbyService creates a new NearbyService. includeStatuses is the
// candidate-visibility policy (currently pending and approved).
func NewNearbyService(
	providers ports.ProviderRepository,
	services ports.ServiceRepository,
	cache ports.CacheService,
	defaultRadiusKm float64,
	includeStatuses []string,
	cacheTTLSeconds int,
) *NearbyService {
	return &NearbyService{
		providers:       providers,
		services:        services,
		cache:           cache,
		defaultRadiusKm: defaultRadiusKm,
		includeStatuses: includeStatuses,
		cacheTTLSeconds: cacheTTLSeconds,
	}
}

// FindNearby returns providers within radiusKm of the searcher, sorted
// ascending by distance, each with its active services attached.
// radiusKm <= 0 selects the default radius. serviceType == "" means no
// type filter; otherwise only exact matches are candidates.
func (s *NearbyService) FindNearby(ctx context.Context, lat, lng float64, serviceType string, radiusKm float64) ([]domain.Provider, error) {
	if radiusKm <= 0 {
		radiusKm = s.defaultRadiusKm
	}

	metrics.NearbyQueries.Inc()

	// Try cache
	cacheKey := fmt.Sprintf("providers:nearby:%.4f:%.4f:%.1f:%s", lat, lng, radiusKm, serviceType)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached []domain.Provider
			if err := json.Unmarshal(data, &cached); err == nil {
				metrics.CacheHits.WithLabelValues("nearby").Inc()
				return cached, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("nearby").Inc()
	}

	// Coarse selection: status policy plus optional exact type match.
	// This is a linear scan over the candidate set, not a geo-indexed
	// range query; the precise cut happens below.
	candidates, err := s.providers.ListCandidates(ctx, serviceType, s.includeStatuses)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	metrics.NearbyCandidatesScanned.Observe(float64(len(candidates)))

	nearby := make([]domain.Provider, 0, len(candidates))
	for _, p := range candidates {
		d := geospatial.Haversine(lat, lng, p.Latitude, p.Longitude)
		if d > radiusKm {
			continue
		}
		dist := d
		p.DistanceKm = &dist
		nearby = append(nearby, p)
	}

	// Stable sort keeps the fetch order for equal distances.
	sort.SliceStable(nearby, func(i, j int) bool {
		return *nearby[i].DistanceKm < *nearby[j].DistanceKm
	})

	// Enrichment: active offerings of each survivor, keyed by the
	// owning user id. One lookup per survivor, after sorting, so the
	// output order never depends on enrichment completion.
	for i := range nearby {
		svcs, err := s.services.ListActiveByOwner(ctx, nearby[i].UserID)
		if err != nil {
			return nil, fmt.Errorf("attach services for provider %s: %w", nearby[i].ID, err)
		}
		nearby[i].Services = svcs
	}

	if s.cache != nil {
		if data, err := json.Marshal(nearby); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.cacheTTLSeconds)
		}
	}

	return nearby, nil
}
