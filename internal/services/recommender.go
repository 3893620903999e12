package services

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/velora/shoprec/internal/artifacts"
	"github.com/velora/shoprec/internal/config"
	"github.com/velora/shoprec/internal/metrics"
	"github.com/velora/shoprec/pkg/models"
)

// Recommender is the serving facade the transport layer calls. Both entry
// points return an empty list, never an error, when no recommendations can
// be produced; the only side effect is the cold-start cache refresh.
type Recommender struct {
	index         *InteractionIndex
	collaborative *CollaborativeScorer
	content       *ContentScorer
	popularity    *PopularityScorer
	blender       *ScoreBlender
	enricher      *ProductEnricher
	coldStart     *ColdStartCache
	similarity    *artifacts.SimilarityMatrix
	popTable      *artifacts.PopularityTable
	cfg           *config.RecommendationConfig
	logger        *logrus.Logger
}

func NewRecommender(
	index *InteractionIndex,
	collaborative *CollaborativeScorer,
	content *ContentScorer,
	popularity *PopularityScorer,
	blender *ScoreBlender,
	enricher *ProductEnricher,
	coldStart *ColdStartCache,
	similarity *artifacts.SimilarityMatrix,
	popTable *artifacts.PopularityTable,
	cfg *config.RecommendationConfig,
	logger *logrus.Logger,
) *Recommender {
	return &Recommender{
		index:         index,
		collaborative: collaborative,
		content:       content,
		popularity:    popularity,
		blender:       blender,
		enricher:      enricher,
		coldStart:     coldStart,
		similarity:    similarity,
		popTable:      popTable,
		cfg:           cfg,
		logger:        logger,
	}
}

// GetRecommendations produces the personalized hybrid list for a user, or
// the shared cold-start list when the user has no interaction history.
func (r *Recommender) GetRecommendations(ctx context.Context, userID string, n int) []models.RecommendationResult {
	start := time.Now()
	defer func() {
		metrics.RecommendationLatency.WithLabelValues("user").Observe(time.Since(start).Seconds())
	}()

	if !r.index.HasHistory(userID) {
		metrics.RecommendationsServed.WithLabelValues("user", "cold_start").Inc()
		return r.coldStart.Get(ctx, n)
	}

	// Each scorer over-fetches so the blend still fills n after the lists
	// overlap.
	fetch := n * r.cfg.CandidateMultiplier

	var cfList, cbList, popList []models.ScoredProduct

	// The scorers are independent; fan them out. Correctness does not depend
	// on this, each goroutine writes its own slot.
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		cfList = r.collaborative.Score(userID, fetch)
		return nil
	})
	g.Go(func() error {
		cbList = r.content.Score(userID, fetch)
		return nil
	})
	g.Go(func() error {
		popList = r.popularity.Score(userID, fetch)
		return nil
	})
	_ = g.Wait()

	r.logger.WithFields(logrus.Fields{
		"user_id":        userID,
		"top_cf":         topIDs(cfList, 3),
		"top_content":    topIDs(cbList, 3),
		"top_popularity": topIDs(popList, 3),
	}).Debug("Strategy outputs")

	blended := r.blender.Blend(cfList, cbList, popList, r.cfg.HybridWeights, n)
	results := r.enricher.EnrichAll(blended)

	metrics.RecommendationsServed.WithLabelValues("user", "hybrid").Inc()
	r.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"count":   len(results),
		"latency": time.Since(start),
	}).Info("Recommendations generated")

	return results
}

// GetRecommendationsForProduct ranks products around a viewed anchor:
// anchor similarity carries most of the weight, with a single collaborative
// prediction and the popularity score folded in per candidate. An anchor
// with no similarity row is treated as a cold start.
func (r *Recommender) GetRecommendationsForProduct(ctx context.Context, userID, productID string, n int) []models.RecommendationResult {
	start := time.Now()
	defer func() {
		metrics.RecommendationLatency.WithLabelValues("product").Observe(time.Since(start).Seconds())
	}()

	row, ok := r.similarity.Row(productID)
	if !ok {
		r.logger.WithFields(logrus.Fields{
			"user_id":    userID,
			"product_id": productID,
		}).Debug("Anchor product missing from similarity matrix, serving cold-start list")
		metrics.RecommendationsServed.WithLabelValues("product", "cold_start").Inc()
		return r.coldStart.Get(ctx, n)
	}

	weights := r.cfg.AnchoredWeights
	seen := r.index.Lookup(userID)
	hasHistory := r.index.HasHistory(userID)

	scored := make([]models.ScoredProduct, 0, len(row))
	for _, neighbor := range row {
		if neighbor.ID == productID {
			continue
		}
		if _, interacted := seen[neighbor.ID]; interacted {
			continue
		}

		score := weights.Content * neighbor.Score

		// A failed prediction, or a user with no history, contributes zero
		// rather than dropping the candidate: similarity already anchors it.
		if hasHistory {
			if estimate, err := r.collaborative.Predict(userID, neighbor.ID); err == nil {
				score += weights.Collaborative * estimate
			}
		}

		score += weights.Popularity * r.popTable.Score(neighbor.ID)

		scored = append(scored, models.ScoredProduct{ProductID: neighbor.ID, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > n {
		scored = scored[:n]
	}

	results := r.enricher.EnrichAll(scored)

	metrics.RecommendationsServed.WithLabelValues("product", "anchored").Inc()
	r.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"product_id": productID,
		"count":      len(results),
		"latency":    time.Since(start),
	}).Info("Anchored recommendations generated")

	return results
}

func topIDs(list []models.ScoredProduct, n int) []string {
	if len(list) < n {
		n = len(list)
	}
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = list[i].ProductID
	}
	return ids
}
