package services

import (
	"context"

	"github.com/velora/shoprec/pkg/models"
)

// RecommenderInterface is what the transport layer depends on; handler tests
// substitute a stub.
type RecommenderInterface interface {
	GetRecommendations(ctx context.Context, userID string, n int) []models.RecommendationResult
	GetRecommendationsForProduct(ctx context.Context, userID, productID string, n int) []models.RecommendationResult
}

var _ RecommenderInterface = (*Recommender)(nil)
