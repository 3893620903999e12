package artifacts

import "github.com/velora/shoprec/pkg/models"

// SimilarityMatrix is the sparse item-item similarity table. Rows preserve
// the order they were serialized in, so iterating a row is deterministic.
// A missing row or entry means "similarity not computed", never an error.
type SimilarityMatrix struct {
	Rows map[string][]Neighbor `json:"rows"`
}

// Row returns the ordered similarity row for a product, or ok=false when the
// product has no row.
func (m *SimilarityMatrix) Row(productID string) ([]Neighbor, bool) {
	row, ok := m.Rows[productID]
	return row, ok
}

// PopularityEntry is one row of the precomputed popularity ranking.
type PopularityEntry struct {
	ProductID string  `json:"product_id"`
	Score     float64 `json:"score"`
}

// PopularityTable is the precomputed popularity ranking, already sorted
// descending by the training pipeline (time-decay baked in upstream). The
// serving process trusts the order and never re-sorts.
type PopularityTable struct {
	Entries []PopularityEntry `json:"entries"`

	index map[string]float64
}

// NewPopularityTable builds a table with its lookup index from pre-sorted
// entries.
func NewPopularityTable(entries []PopularityEntry) *PopularityTable {
	t := &PopularityTable{Entries: entries}
	t.buildIndex()
	return t
}

// Top returns up to limit entries, excluding the given product set, in table
// order.
func (t *PopularityTable) Top(limit int, exclude map[string]struct{}) []models.ScoredProduct {
	results := make([]models.ScoredProduct, 0, limit)
	for _, entry := range t.Entries {
		if len(results) >= limit {
			break
		}
		if _, skip := exclude[entry.ProductID]; skip {
			continue
		}
		results = append(results, models.ScoredProduct{ProductID: entry.ProductID, Score: entry.Score})
	}
	return results
}

// Score returns the popularity score for a product, or 0 when the product is
// not in the table.
func (t *PopularityTable) Score(productID string) float64 {
	return t.index[productID]
}

func (t *PopularityTable) buildIndex() {
	t.index = make(map[string]float64, len(t.Entries))
	for _, entry := range t.Entries {
		if _, seen := t.index[entry.ProductID]; !seen {
			t.index[entry.ProductID] = entry.Score
		}
	}
}
