package services

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/velora/shoprec/pkg/models"
)

// ProductEnricher attaches full catalog metadata to a bare (product_id,
// score) pair. The catalog and the precomputed tables may drift out of sync;
// a candidate with no catalog entry is silently dropped rather than treated
// as an error.
type ProductEnricher struct {
	catalog *models.Catalog
}

func NewProductEnricher(catalog *models.Catalog) *ProductEnricher {
	return &ProductEnricher{catalog: catalog}
}

// Enrich resolves one candidate. ok=false means the product is missing from
// the catalog and the candidate should be skipped.
func (e *ProductEnricher) Enrich(productID string, score float64) (models.RecommendationResult, bool) {
	product, found := e.catalog.Get(productID)
	if !found {
		return models.RecommendationResult{}, false
	}

	slug := product.Slug
	if slug == "" {
		slug = Slugify(product.Name)
	}

	// Publication flag defaults to true for partially populated entries.
	published := true
	if product.IsPublished != nil {
		published = *product.IsPublished
	}

	return models.RecommendationResult{
		ProductID:          product.ID,
		Name:               product.Name,
		Slug:               slug,
		Score:              score,
		Category:           product.Category,
		Brand:              product.Brand,
		Description:        product.Description,
		Price:              product.Price,
		ListPrice:          product.ListPrice,
		CountInStock:       product.CountInStock,
		Tags:               emptyIfNil(product.Tags),
		Colors:             emptyIfNil(product.Colors),
		Sizes:              emptyIfNil(product.Sizes),
		Images:             emptyIfNil(product.Images),
		AvgRating:          product.AvgRating,
		NumReviews:         product.NumReviews,
		RatingDistribution: NormalizeRatingDistribution(product.RatingDistribution),
		NumSales:           product.NumSales,
		IsPublished:        published,
	}, true
}

// EnrichAll maps Enrich over a ranked list, dropping candidates without
// catalog entries and preserving order.
func (e *ProductEnricher) EnrichAll(scored []models.ScoredProduct) []models.RecommendationResult {
	results := make([]models.RecommendationResult, 0, len(scored))
	for _, item := range scored {
		if result, ok := e.Enrich(item.ProductID, item.Score); ok {
			results = append(results, result)
		}
	}
	return results
}

// NormalizeRatingDistribution accepts the distribution in either of the two
// shapes the catalog feed produces, a list of {rating, count} objects or an
// already-keyed mapping, and normalizes it to a mapping with keys "1".."5"
// and zero counts for absent ratings.
func NormalizeRatingDistribution(raw interface{}) map[string]int {
	normalized := map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}

	switch dist := raw.(type) {
	case []interface{}:
		for _, item := range dist {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			rating := asInt(entry["rating"])
			if rating < 1 || rating > 5 {
				continue
			}
			normalized[fmt.Sprintf("%d", rating)] = asInt(entry["count"])
		}
	case map[string]interface{}:
		for key, value := range dist {
			if _, known := normalized[key]; known {
				normalized[key] = asInt(value)
			}
		}
	case map[string]int:
		for key, value := range dist {
			if _, known := normalized[key]; known {
				normalized[key] = value
			}
		}
	}

	return normalized
}

// Slugify derives a URL-friendly slug from a display name: diacritics
// stripped, lower-cased, non-alphanumerics collapsed to single hyphens.
func Slugify(name string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err != nil {
		stripped = name
	}

	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(stripped) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	default:
		return 0
	}
}
