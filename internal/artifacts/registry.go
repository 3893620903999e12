package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"
	"gonum.org/v1/gonum/stat"

	"github.com/velora/shoprec/internal/config"
)

// Artifact file names written by the training pipeline.
const (
	svdFile        = "svd_model.json"
	nmfFile        = "nmf_model.json"
	knnFile        = "knn_model.json"
	similarityFile = "product_similarity.json"
	popularityFile = "product_popularity.json"
)

// Registry holds every trained artifact the recommender consumes. All fields
// are immutable after Load returns; a nil or partially loaded registry is
// never handed to callers.
type Registry struct {
	Oracles    []Oracle
	Similarity *SimilarityMatrix
	Popularity *PopularityTable

	logger *logrus.Logger
}

// Load reads, schema-validates and decodes all required artifacts. Any
// missing or malformed artifact fails the whole load; the serving process
// must not start with a partial model set.
func Load(cfg *config.ArtifactsConfig, logger *logrus.Logger) (*Registry, error) {
	schemas, err := loadSchemas(cfg.SchemaDir)
	if err != nil {
		return nil, err
	}

	r := &Registry{logger: logger}

	svd := &FactorModel{}
	if err := r.loadArtifact(cfg.Dir, svdFile, schemas["factor-model"], svd); err != nil {
		return nil, err
	}
	nmf := &FactorModel{}
	if err := r.loadArtifact(cfg.Dir, nmfFile, schemas["factor-model"], nmf); err != nil {
		return nil, err
	}
	knn := &NeighborModel{}
	if err := r.loadArtifact(cfg.Dir, knnFile, schemas["neighbor-model"], knn); err != nil {
		return nil, err
	}

	for _, m := range []*FactorModel{svd, nmf} {
		if err := m.validate(); err != nil {
			return nil, err
		}
	}
	if err := knn.validate(); err != nil {
		return nil, err
	}

	similarity := &SimilarityMatrix{}
	if err := r.loadArtifact(cfg.Dir, similarityFile, schemas["similarity-matrix"], similarity); err != nil {
		return nil, err
	}

	popularity := &PopularityTable{}
	if err := r.loadArtifact(cfg.Dir, popularityFile, schemas["popularity-table"], popularity); err != nil {
		return nil, err
	}
	if len(popularity.Entries) == 0 {
		return nil, fmt.Errorf("popularity table %s is empty", popularityFile)
	}
	popularity.buildIndex()

	r.Oracles = []Oracle{svd, nmf, knn}
	r.Similarity = similarity
	r.Popularity = popularity

	r.logSummary()
	return r, nil
}

func (r *Registry) loadArtifact(dir, file string, schema *gojsonschema.Schema, out interface{}) error {
	path := filepath.Join(dir, file)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load artifact %s: %w", file, err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate artifact %s: %w", file, err)
	}
	if !result.Valid() {
		return fmt.Errorf("artifact %s does not match its schema: %v", file, result.Errors())
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode artifact %s: %w", file, err)
	}

	r.logger.WithFields(logrus.Fields{
		"artifact": file,
		"bytes":    len(data),
	}).Info("Artifact loaded")

	return nil
}

func loadSchemas(schemaDir string) (map[string]*gojsonschema.Schema, error) {
	names := []string{"factor-model", "neighbor-model", "similarity-matrix", "popularity-table"}

	schemas := make(map[string]*gojsonschema.Schema, len(names))
	for _, name := range names {
		path := filepath.Join(schemaDir, name+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to load schema %s: %w", name, err)
		}
		schemas[name] = schema
	}
	return schemas, nil
}

// logSummary emits distribution stats for the loaded tables. The numbers are
// diagnostic only; a skewed popularity distribution after a pipeline change
// tends to show up here first.
func (r *Registry) logSummary() {
	scores := make([]float64, len(r.Popularity.Entries))
	for i, entry := range r.Popularity.Entries {
		scores[i] = entry.Score
	}
	mean, std := stat.MeanStdDev(scores, nil)

	r.logger.WithFields(logrus.Fields{
		"oracles":          len(r.Oracles),
		"similarity_rows":  len(r.Similarity.Rows),
		"popularity_rows":  len(r.Popularity.Entries),
		"popularity_mean":  mean,
		"popularity_sigma": std,
	}).Info("Model registry ready")
}
