package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopularityScorer_FiltersUserHistory(t *testing.T) {
	index := NewInteractionIndex(testInteractions())
	scorer := NewPopularityScorer(testPopularity(), index, quietLogger())

	// u2 has seen p1 and p2, so p2 drops out of the ranking.
	results := scorer.Score("u2", 10)

	require.Len(t, results, 3)
	assert.Equal(t, "p4", results[0].ProductID)
	assert.Equal(t, "p5", results[1].ProductID)
	assert.Equal(t, "p3", results[2].ProductID)
}

func TestPopularityScorer_UnknownUserGetsFullRanking(t *testing.T) {
	index := NewInteractionIndex(testInteractions())
	scorer := NewPopularityScorer(testPopularity(), index, quietLogger())

	results := scorer.Score("ghost", 10)

	require.Len(t, results, 4)
	assert.Equal(t, "p4", results[0].ProductID)
	assert.InDelta(t, 9.1, results[0].Score, 1e-9)
}

func TestPopularityScorer_TruncatesToLimit(t *testing.T) {
	index := NewInteractionIndex(testInteractions())
	scorer := NewPopularityScorer(testPopularity(), index, quietLogger())

	results := scorer.Score("u2", 2)
	require.Len(t, results, 2)
	assert.Equal(t, "p4", results[0].ProductID)
	assert.Equal(t, "p5", results[1].ProductID)
}
