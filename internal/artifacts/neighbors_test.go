package artifacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neighborModel() *NeighborModel {
	return &NeighborModel{
		ModelName: "knn",
		K:         40,
		Neighbors: map[string][]Neighbor{
			"p1": {
				{ID: "p2", Score: 0.8},
				{ID: "p3", Score: 0.4},
				{ID: "p4", Score: 0.1},
			},
		},
		Ratings: map[string]map[string]float64{
			"u1": {"p2": 5.0, "p3": 2.0},
		},
	}
}

func TestNeighborModel_Predict(t *testing.T) {
	m := neighborModel()

	score, err := m.Predict("u1", "p1")
	require.NoError(t, err)
	// (0.8*5.0 + 0.4*2.0) / (0.8 + 0.4)
	assert.InDelta(t, 4.0, score, 1e-9)
}

func TestNeighborModel_PredictHonorsK(t *testing.T) {
	m := neighborModel()
	m.K = 1

	score, err := m.Predict("u1", "p1")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, score, 1e-9)
}

func TestNeighborModel_PredictUnavailable(t *testing.T) {
	m := neighborModel()

	_, err := m.Predict("ghost", "p1")
	assert.ErrorIs(t, err, ErrPredictionUnavailable)

	_, err = m.Predict("u1", "ghost")
	assert.ErrorIs(t, err, ErrPredictionUnavailable)

	// User known, product known, but no overlap between ratings and neighborhood.
	m.Ratings["u2"] = map[string]float64{"p9": 4.0}
	_, err = m.Predict("u2", "p1")
	assert.ErrorIs(t, err, ErrPredictionUnavailable)
}
