package artifacts

import "fmt"

// FactorModel is a matrix-factorization oracle: the estimate for a pair is
// the dot product of the user and item latent vectors, optionally shifted by
// the global mean and per-user/per-item biases (the biased form corresponds
// to an SVD-style model, the unbiased form to an NMF-style one).
type FactorModel struct {
	ModelName   string               `json:"name"`
	Factors     int                  `json:"factors"`
	Biased      bool                 `json:"biased"`
	GlobalMean  float64              `json:"global_mean"`
	UserFactors map[string][]float64 `json:"user_factors"`
	ItemFactors map[string][]float64 `json:"item_factors"`
	UserBiases  map[string]float64   `json:"user_biases,omitempty"`
	ItemBiases  map[string]float64   `json:"item_biases,omitempty"`
}

func (m *FactorModel) Name() string { return m.ModelName }

func (m *FactorModel) Predict(userID, productID string) (float64, error) {
	pu, ok := m.UserFactors[userID]
	if !ok {
		return 0, fmt.Errorf("%w: unknown user %q in %s", ErrPredictionUnavailable, userID, m.ModelName)
	}
	qi, ok := m.ItemFactors[productID]
	if !ok {
		return 0, fmt.Errorf("%w: unknown product %q in %s", ErrPredictionUnavailable, productID, m.ModelName)
	}
	if len(pu) != len(qi) {
		return 0, fmt.Errorf("%w: factor dimension mismatch in %s", ErrPredictionUnavailable, m.ModelName)
	}

	var dot float64
	for i := range pu {
		dot += pu[i] * qi[i]
	}

	if !m.Biased {
		return dot, nil
	}
	return m.GlobalMean + m.UserBiases[userID] + m.ItemBiases[productID] + dot, nil
}

// validate checks structural consistency beyond what the JSON schema covers.
func (m *FactorModel) validate() error {
	if len(m.UserFactors) == 0 || len(m.ItemFactors) == 0 {
		return fmt.Errorf("factor model %q has empty factor tables", m.ModelName)
	}
	for id, vec := range m.UserFactors {
		if len(vec) != m.Factors {
			return fmt.Errorf("factor model %q: user %q has %d factors, want %d",
				m.ModelName, id, len(vec), m.Factors)
		}
	}
	for id, vec := range m.ItemFactors {
		if len(vec) != m.Factors {
			return fmt.Errorf("factor model %q: item %q has %d factors, want %d",
				m.ModelName, id, len(vec), m.Factors)
		}
	}
	return nil
}
