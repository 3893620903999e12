package services

import (
	"github.com/sirupsen/logrus"

	"github.com/velora/shoprec/internal/artifacts"
	"github.com/velora/shoprec/pkg/models"
)

// PopularityScorer serves the precomputed popularity ranking with the user's
// own history filtered out. The table arrives pre-sorted descending from the
// training pipeline and its order is trusted as-is.
type PopularityScorer struct {
	popularity *artifacts.PopularityTable
	index      *InteractionIndex
	logger     *logrus.Logger
}

func NewPopularityScorer(
	popularity *artifacts.PopularityTable,
	index *InteractionIndex,
	logger *logrus.Logger,
) *PopularityScorer {
	return &PopularityScorer{
		popularity: popularity,
		index:      index,
		logger:     logger,
	}
}

func (s *PopularityScorer) Score(userID string, limit int) []models.ScoredProduct {
	seen := s.index.Lookup(userID)
	results := s.popularity.Top(limit, seen)

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"ranked":  len(results),
	}).Debug("Popularity scoring completed")

	return results
}
