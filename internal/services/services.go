package services

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/velora/shoprec/internal/artifacts"
	"github.com/velora/shoprec/internal/cache"
	"github.com/velora/shoprec/internal/config"
	"github.com/velora/shoprec/pkg/models"
)

// ErrSystemUnavailable is returned when a required table or model is absent
// at construction time. No partial recommender is ever handed out.
var ErrSystemUnavailable = errors.New("services: required models or tables unavailable")

type Services struct {
	Index       *InteractionIndex
	Recommender *Recommender
}

// New wires the scoring core from its read-only inputs. The catalog, the
// three oracles and both precomputed tables are hard requirements; a missing
// one fails construction outright.
func New(
	cfg *config.Config,
	logger *logrus.Logger,
	catalog *models.Catalog,
	interactions []models.Interaction,
	registry *artifacts.Registry,
	store cache.Store,
) (*Services, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, ErrSystemUnavailable
	}
	if registry == nil || registry.Similarity == nil || registry.Popularity == nil {
		return nil, ErrSystemUnavailable
	}
	if store == nil {
		return nil, ErrSystemUnavailable
	}

	index := NewInteractionIndex(interactions)

	collaborative, err := NewCollaborativeScorer(registry.Oracles, catalog, index, logger)
	if err != nil {
		return nil, ErrSystemUnavailable
	}
	content := NewContentScorer(registry.Similarity, index, logger)
	popularity := NewPopularityScorer(registry.Popularity, index, logger)
	blender := NewScoreBlender()
	enricher := NewProductEnricher(catalog)
	coldStart := NewColdStartCache(
		store, registry.Popularity, enricher, cfg.Recommendation.ColdStartTTL, logger,
	)

	recommender := NewRecommender(
		index, collaborative, content, popularity, blender, enricher, coldStart,
		registry.Similarity, registry.Popularity, &cfg.Recommendation, logger,
	)

	return &Services{
		Index:       index,
		Recommender: recommender,
	}, nil
}
