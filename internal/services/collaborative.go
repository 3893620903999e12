package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/velora/shoprec/internal/artifacts"
	"github.com/velora/shoprec/pkg/models"
)

// ensembleWeights are the fixed combination weights for the three trained
// oracles (SVD-style, NMF-style, KNN-style). They are a training-time
// property of the ensemble, not a serving tunable, and always sum to 1.0.
var ensembleWeights = [...]float64{0.4, 0.2, 0.4}

// CollaborativeScorer blends an ensemble of three trained oracles into one
// preference estimate per unseen catalog product.
type CollaborativeScorer struct {
	oracles []artifacts.Oracle
	catalog *models.Catalog
	index   *InteractionIndex
	logger  *logrus.Logger
}

func NewCollaborativeScorer(
	oracles []artifacts.Oracle,
	catalog *models.Catalog,
	index *InteractionIndex,
	logger *logrus.Logger,
) (*CollaborativeScorer, error) {
	if len(oracles) != len(ensembleWeights) {
		return nil, fmt.Errorf("collaborative scorer requires %d oracles, got %d",
			len(ensembleWeights), len(oracles))
	}
	return &CollaborativeScorer{
		oracles: oracles,
		catalog: catalog,
		index:   index,
		logger:  logger,
	}, nil
}

// Score ranks every catalog product the user has not interacted with by the
// weighted ensemble estimate, descending, truncated to limit. A failed
// prediction from any single oracle drops that candidate from this scorer's
// output entirely: defaulting to zero would bias ranked ties toward failed
// predictions.
func (s *CollaborativeScorer) Score(userID string, limit int) []models.ScoredProduct {
	seen := s.index.Lookup(userID)

	var (
		predictions []models.ScoredProduct
		skipped     int
	)

	// Catalog IDs come back sorted, which keeps tie order deterministic for
	// deterministic oracles.
	for _, productID := range s.catalog.IDs() {
		if _, interacted := seen[productID]; interacted {
			continue
		}

		combined, ok := s.predict(userID, productID)
		if !ok {
			skipped++
			continue
		}

		predictions = append(predictions, models.ScoredProduct{
			ProductID: productID,
			Score:     combined,
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Score > predictions[j].Score
	})

	if len(predictions) > limit {
		predictions = predictions[:limit]
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"ranked":  len(predictions),
		"skipped": skipped,
	}).Debug("Collaborative scoring completed")

	return predictions
}

// Predict returns the lead oracle's estimate for one pair. The anchored
// recommendation path folds a single collaborative prediction per candidate,
// with the lead oracle acting as the ensemble's representative.
func (s *CollaborativeScorer) Predict(userID, productID string) (float64, error) {
	return s.oracles[0].Predict(userID, productID)
}

func (s *CollaborativeScorer) predict(userID, productID string) (float64, bool) {
	var combined float64
	for i, oracle := range s.oracles {
		estimate, err := oracle.Predict(userID, productID)
		if err != nil {
			if !errors.Is(err, artifacts.ErrPredictionUnavailable) {
				s.logger.WithFields(logrus.Fields{
					"oracle":     oracle.Name(),
					"user_id":    userID,
					"product_id": productID,
					"error":      err,
				}).Warn("Oracle prediction failed")
			}
			return 0, false
		}
		combined += ensembleWeights[i] * estimate
	}
	return combined, true
}
