package services

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/velora/shoprec/internal/artifacts"
	"github.com/velora/shoprec/internal/cache"
	"github.com/velora/shoprec/internal/config"
	"github.com/velora/shoprec/pkg/models"
)

// stubOracle answers from a fixed (user|product) -> score table and reports
// every other pair as unavailable.
type stubOracle struct {
	name  string
	preds map[string]float64
}

func (o *stubOracle) Name() string { return o.name }

func (o *stubOracle) Predict(userID, productID string) (float64, error) {
	if score, ok := o.preds[userID+"|"+productID]; ok {
		return score, nil
	}
	return 0, artifacts.ErrPredictionUnavailable
}

// constOracle returns the same score for every pair.
type constOracle struct {
	name  string
	score float64
}

func (o *constOracle) Name() string { return o.name }

func (o *constOracle) Predict(string, string) (float64, error) {
	return o.score, nil
}

// failingStore simulates an unwritable or unreadable cache backend.
type failingStore struct {
	getErr error
	putErr error
	puts   int
}

func (s *failingStore) Get(context.Context, string) (*cache.Entry, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return nil, cache.ErrMiss
}

func (s *failingStore) Put(context.Context, string, *cache.Entry) error {
	s.puts++
	return s.putErr
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testCatalog() *models.Catalog {
	products := make([]models.Product, 0, 5)
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		products = append(products, models.Product{
			ID:       id,
			Name:     "Product " + id,
			Category: "Outdoor",
			Brand:    "Acme",
			Price:    10,
		})
	}
	return models.NewCatalog(products)
}

func testInteractions() []models.Interaction {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []models.Interaction{
		{UserID: "u1", ProductID: "p1", Timestamp: ts},
		{UserID: "u2", ProductID: "p1", Timestamp: ts},
		{UserID: "u2", ProductID: "p2", Timestamp: ts.Add(time.Hour)},
	}
}

func testSimilarity() *artifacts.SimilarityMatrix {
	return &artifacts.SimilarityMatrix{
		Rows: map[string][]artifacts.Neighbor{
			"p1": {
				{ID: "p2", Score: 0.9},
				{ID: "p3", Score: 0.4},
			},
			"p2": {
				{ID: "p1", Score: 0.9},
				{ID: "p4", Score: 0.3},
			},
		},
	}
}

func testPopularity() *artifacts.PopularityTable {
	return artifacts.NewPopularityTable([]artifacts.PopularityEntry{
		{ProductID: "p4", Score: 9.1},
		{ProductID: "p5", Score: 8.2},
		{ProductID: "p2", Score: 6.7},
		{ProductID: "p3", Score: 4.3},
	})
}

func testRecommendationConfig() *config.RecommendationConfig {
	return &config.RecommendationConfig{
		HybridWeights:       config.BlendWeights{Collaborative: 0.5, Content: 0.3, Popularity: 0.2},
		AnchoredWeights:     config.BlendWeights{Collaborative: 0.2, Content: 0.6, Popularity: 0.2},
		CandidateMultiplier: 2,
		DefaultCount:        10,
		MaxCount:            100,
		ColdStartTTL:        120 * time.Hour,
	}
}

func testRegistry(t *testing.T, oracles []artifacts.Oracle) *artifacts.Registry {
	t.Helper()
	return &artifacts.Registry{
		Oracles:    oracles,
		Similarity: testSimilarity(),
		Popularity: testPopularity(),
	}
}

func TestServicesNew_FailsWithoutRequiredInputs(t *testing.T) {
	cfg := &config.Config{Recommendation: *testRecommendationConfig()}
	logger := quietLogger()
	registry := testRegistry(t, []artifacts.Oracle{
		&constOracle{name: "svd", score: 4},
		&constOracle{name: "nmf", score: 3},
		&constOracle{name: "knn", score: 4},
	})
	store, err := cache.NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = New(cfg, logger, nil, nil, registry, store)
	require.ErrorIs(t, err, ErrSystemUnavailable)

	_, err = New(cfg, logger, testCatalog(), nil, nil, store)
	require.ErrorIs(t, err, ErrSystemUnavailable)

	_, err = New(cfg, logger, testCatalog(), nil, registry, nil)
	require.ErrorIs(t, err, ErrSystemUnavailable)

	// Two oracles instead of three.
	short := testRegistry(t, []artifacts.Oracle{
		&constOracle{name: "svd", score: 4},
		&constOracle{name: "nmf", score: 3},
	})
	_, err = New(cfg, logger, testCatalog(), nil, short, store)
	require.ErrorIs(t, err, ErrSystemUnavailable)
}

func TestServicesNew_Wires(t *testing.T) {
	cfg := &config.Config{Recommendation: *testRecommendationConfig()}
	registry := testRegistry(t, []artifacts.Oracle{
		&constOracle{name: "svd", score: 4},
		&constOracle{name: "nmf", score: 3},
		&constOracle{name: "knn", score: 4},
	})
	store, err := cache.NewFileStore(t.TempDir())
	require.NoError(t, err)

	svc, err := New(cfg, quietLogger(), testCatalog(), testInteractions(), registry, store)
	require.NoError(t, err)
	require.NotNil(t, svc.Recommender)
	require.True(t, svc.Index.HasHistory("u1"))
}
