package services

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/velora/shoprec/internal/artifacts"
	"github.com/velora/shoprec/pkg/models"
)

// ContentScorer ranks candidates by their aggregate similarity to the
// products the user has already interacted with.
type ContentScorer struct {
	similarity *artifacts.SimilarityMatrix
	index      *InteractionIndex
	logger     *logrus.Logger
}

func NewContentScorer(
	similarity *artifacts.SimilarityMatrix,
	index *InteractionIndex,
	logger *logrus.Logger,
) *ContentScorer {
	return &ContentScorer{
		similarity: similarity,
		index:      index,
		logger:     logger,
	}
}

// Score accumulates each seed product's similarity row into per-candidate
// totals, then divides every total by the number of seeds. Dividing by all
// seeds rather than only the seeds that mentioned the candidate is
// deliberate: a candidate similar to a single seed is not boosted to
// compensate for the seeds that never scored it.
//
// Users with no history get an empty list; cold-start routing happens
// upstream, not here.
func (s *ContentScorer) Score(userID string, limit int) []models.ScoredProduct {
	seeds := s.index.Lookup(userID)
	if len(seeds) == 0 {
		return nil
	}

	totals := make(map[string]float64)
	var order []string // first-seen candidate order, for stable ties

	// Seed iteration over a map is randomized, but addition commutes, so the
	// totals are order-independent. Candidate first-seen order within a row
	// follows the serialized row order, which is deterministic per seed; to
	// keep the overall tie order deterministic too, walk seeds in sorted
	// order.
	for _, seedID := range sortedKeys(seeds) {
		row, ok := s.similarity.Row(seedID)
		if !ok {
			continue
		}
		for _, neighbor := range row {
			if neighbor.ID == seedID {
				continue
			}
			if _, interacted := seeds[neighbor.ID]; interacted {
				continue
			}
			if _, known := totals[neighbor.ID]; !known {
				order = append(order, neighbor.ID)
			}
			totals[neighbor.ID] += neighbor.Score
		}
	}

	seedCount := float64(len(seeds))
	results := make([]models.ScoredProduct, 0, len(order))
	for _, productID := range order {
		results = append(results, models.ScoredProduct{
			ProductID: productID,
			Score:     totals[productID] / seedCount,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"seeds":   len(seeds),
		"ranked":  len(results),
	}).Debug("Content scoring completed")

	return results
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
