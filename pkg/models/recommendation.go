package models

import "time"

// ScoredProduct is a transient (product_id, score) pair produced by a single
// scoring strategy and consumed by the blender. Scores are raw strategy
// outputs; no cross-strategy normalization is applied.
type ScoredProduct struct {
	ProductID string  `json:"product_id"`
	Score     float64 `json:"score"`
}

// RecommendationResult is the canonical enriched output shape: product
// identity, display metadata and the blended score, with numeric fields
// normalized and optional fields defaulted.
type RecommendationResult struct {
	ProductID          string         `json:"product_id"`
	Name               string         `json:"name"`
	Slug               string         `json:"slug"`
	Score              float64        `json:"score"`
	Category           string         `json:"category"`
	Brand              string         `json:"brand"`
	Description        string         `json:"description"`
	Price              float64        `json:"price"`
	ListPrice          float64        `json:"list_price"`
	CountInStock       int            `json:"count_in_stock"`
	Tags               []string       `json:"tags"`
	Colors             []string       `json:"colors"`
	Sizes              []string       `json:"sizes"`
	Images             []string       `json:"images"`
	AvgRating          float64        `json:"avg_rating"`
	NumReviews         int            `json:"num_reviews"`
	RatingDistribution map[string]int `json:"rating_distribution"`
	NumSales           int            `json:"num_sales"`
	IsPublished        bool           `json:"is_published"`
}

// RecommendationResponse is the transport-level envelope returned by the API.
type RecommendationResponse struct {
	UserID          string                 `json:"user_id"`
	Recommendations []RecommendationResult `json:"recommendations"`
	Count           int                    `json:"count"`
	GeneratedAt     time.Time              `json:"generated_at"`
}
