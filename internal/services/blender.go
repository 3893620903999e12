package services

import (
	"sort"

	"github.com/velora/shoprec/internal/config"
	"github.com/velora/shoprec/pkg/models"
)

// ScoreBlender merges the per-strategy ranked lists into one list via
// weighted score summation. The three strategies score on incommensurable
// scales; the blend deliberately applies no range normalization and relies on
// the relative weights alone.
type ScoreBlender struct{}

func NewScoreBlender() *ScoreBlender {
	return &ScoreBlender{}
}

// Blend builds one accumulator per product, summing weight*score across the
// lists a product appears in. Final order is descending combined score;
// ties keep first-seen insertion order, so the collaborative list wins ties
// over content, which wins over popularity.
func (b *ScoreBlender) Blend(
	collaborative, content, popularity []models.ScoredProduct,
	weights config.BlendWeights,
	limit int,
) []models.ScoredProduct {
	totals := make(map[string]float64)
	var order []string

	accumulate := func(list []models.ScoredProduct, weight float64) {
		for _, item := range list {
			if _, known := totals[item.ProductID]; !known {
				order = append(order, item.ProductID)
			}
			totals[item.ProductID] += weight * item.Score
		}
	}

	accumulate(collaborative, weights.Collaborative)
	accumulate(content, weights.Content)
	accumulate(popularity, weights.Popularity)

	blended := make([]models.ScoredProduct, 0, len(order))
	for _, productID := range order {
		blended = append(blended, models.ScoredProduct{
			ProductID: productID,
			Score:     totals[productID],
		})
	}

	sort.SliceStable(blended, func(i, j int) bool {
		return blended[i].Score > blended[j].Score
	})

	if len(blended) > limit {
		blended = blended[:limit]
	}

	return blended
}
