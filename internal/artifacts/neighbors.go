package artifacts

import "fmt"

// Neighbor is one entry of a precomputed item neighborhood.
type Neighbor struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// NeighborModel is an item-based KNN oracle. The training pipeline serializes
// each item's nearest neighbors together with the raw training ratings; a
// prediction is the similarity-weighted average of the user's ratings over
// the target item's neighborhood.
type NeighborModel struct {
	ModelName string                        `json:"name"`
	K         int                           `json:"k"`
	Neighbors map[string][]Neighbor         `json:"neighbors"`
	Ratings   map[string]map[string]float64 `json:"ratings"`
}

func (m *NeighborModel) Name() string { return m.ModelName }

func (m *NeighborModel) Predict(userID, productID string) (float64, error) {
	userRatings, ok := m.Ratings[userID]
	if !ok {
		return 0, fmt.Errorf("%w: unknown user %q in %s", ErrPredictionUnavailable, userID, m.ModelName)
	}
	neighborhood, ok := m.Neighbors[productID]
	if !ok {
		return 0, fmt.Errorf("%w: unknown product %q in %s", ErrPredictionUnavailable, productID, m.ModelName)
	}

	var weightedSum, weightSum float64
	taken := 0
	for _, nb := range neighborhood {
		rating, rated := userRatings[nb.ID]
		if !rated || nb.Score <= 0 {
			continue
		}
		weightedSum += nb.Score * rating
		weightSum += nb.Score
		taken++
		if m.K > 0 && taken >= m.K {
			break
		}
	}

	if weightSum == 0 {
		return 0, fmt.Errorf("%w: no rated neighbors for user %q and product %q",
			ErrPredictionUnavailable, userID, productID)
	}

	return weightedSum / weightSum, nil
}

func (m *NeighborModel) validate() error {
	if len(m.Neighbors) == 0 {
		return fmt.Errorf("neighbor model %q has an empty neighborhood table", m.ModelName)
	}
	if len(m.Ratings) == 0 {
		return fmt.Errorf("neighbor model %q has an empty ratings table", m.ModelName)
	}
	return nil
}
