package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/providers"
	"github.com/clinicdesk/backend/internal/domain/repositories"
)

// Recommendation text never changes after the seed import, so cached entries
// need no invalidation; the TTL only bounds memory in Redis.
const recommendationTTL = 3600

// CachedRecommendationAdapter wraps a RecommendationRepository with a
// read-through cache on label lookups
type CachedRecommendationAdapter struct {
	adapter repositories.RecommendationRepository
	cache   providers.CacheProvider
}

// NewCachedRecommendationAdapter creates a new cached recommendation adapter
func NewCachedRecommendationAdapter(adapter repositories.RecommendationRepository, cache providers.CacheProvider) repositories.RecommendationRepository {
	return &CachedRecommendationAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

func recommendationCacheKey(label string) string {
	return fmt.Sprintf("recommendation:%s", label)
}

// GetByLabel retrieves the entry for a diagnosis label with caching
func (a *CachedRecommendationAdapter) GetByLabel(ctx context.Context, label string) (*entities.RecommendationEntry, error) {
	cacheKey := recommendationCacheKey(label)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var entry entities.RecommendationEntry
		if err := json.Unmarshal(cached, &entry); err == nil {
			return &entry, nil
		}
		log.Warn().Str("label", label).Msg("failed to unmarshal cached recommendation, refetching")
	}

	entry, err := a.adapter.GetByLabel(ctx, label)
	if err != nil {
		return nil, err
	}

	// Write back off the request path.
	go func() {
		data, err := json.Marshal(entry)
		if err != nil {
			return
		}
		if err := a.cache.Set(context.Background(), cacheKey, data, recommendationTTL); err != nil {
			log.Warn().Str("label", label).Err(err).Msg("failed to cache recommendation")
		}
	}()

	return entry, nil
}

// Exists delegates to the underlying adapter
func (a *CachedRecommendationAdapter) Exists(ctx context.Context, label string) (bool, error) {
	return a.adapter.Exists(ctx, label)
}

// Create delegates to the underlying adapter
func (a *CachedRecommendationAdapter) Create(ctx context.Context, entry *entities.RecommendationEntry) error {
	return a.adapter.Create(ctx, entry)
}
