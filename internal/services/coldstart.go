package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/velora/shoprec/internal/artifacts"
	"github.com/velora/shoprec/internal/cache"
	"github.com/velora/shoprec/internal/metrics"
	"github.com/velora/shoprec/pkg/models"
)

// ColdStartCache serves the non-personalized fallback for users with no
// interaction history. The cached list depends only on the global popularity
// table, so one entry per requested size is shared across all cold-start
// users. Caching is best effort: a write failure is logged and the freshly
// computed list is returned anyway.
type ColdStartCache struct {
	store      cache.Store
	popularity *artifacts.PopularityTable
	enricher   *ProductEnricher
	ttl        time.Duration
	logger     *logrus.Logger

	now func() time.Time
}

func NewColdStartCache(
	store cache.Store,
	popularity *artifacts.PopularityTable,
	enricher *ProductEnricher,
	ttl time.Duration,
	logger *logrus.Logger,
) *ColdStartCache {
	return &ColdStartCache{
		store:      store,
		popularity: popularity,
		enricher:   enricher,
		ttl:        ttl,
		logger:     logger,
		now:        time.Now,
	}
}

// Get returns the cached cold-start list when a valid entry exists, and
// otherwise recomputes from the popularity table and refreshes the cache.
func (c *ColdStartCache) Get(ctx context.Context, n int) []models.RecommendationResult {
	key := c.key(n)
	now := c.now()

	entry, err := c.store.Get(ctx, key)
	switch {
	case err == nil && !entry.Expired(now, c.ttl):
		metrics.ColdStartCacheHits.Inc()
		c.logger.WithFields(logrus.Fields{
			"key": key,
			"age": now.Sub(entry.Timestamp),
		}).Debug("Cold-start cache hit")
		return entry.Results
	case err != nil && !errors.Is(err, cache.ErrMiss):
		c.logger.WithFields(logrus.Fields{
			"key":   key,
			"error": err,
		}).Warn("Cold-start cache read failed, recomputing")
	}

	metrics.ColdStartCacheMisses.Inc()

	results := c.compute(n)

	fresh := &cache.Entry{Timestamp: now, Results: results}
	if err := c.store.Put(ctx, key, fresh); err != nil {
		c.logger.WithFields(logrus.Fields{
			"key":   key,
			"error": err,
		}).Warn("Cold-start cache write failed")
	}

	return results
}

// compute takes the popularity table's top n, enriched, skipping products
// whose catalog metadata is missing.
func (c *ColdStartCache) compute(n int) []models.RecommendationResult {
	results := make([]models.RecommendationResult, 0, n)
	for _, entry := range c.popularity.Entries {
		if len(results) >= n {
			break
		}
		if result, ok := c.enricher.Enrich(entry.ProductID, entry.Score); ok {
			results = append(results, result)
		}
	}
	return results
}

func (c *ColdStartCache) key(n int) string {
	return fmt.Sprintf("cold_start:%d", n)
}
