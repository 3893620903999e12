// Package artifacts loads the serialized model artifacts produced by the
// offline training pipeline and exposes them as read-only scoring primitives.
// Nothing in this package mutates an artifact after load, so all types are
// safe to share across concurrent requests.
package artifacts

import "errors"

// ErrPredictionUnavailable is returned by an Oracle when it cannot produce an
// estimate for a (user, product) pair, typically because the user or product
// was unseen at training time. Callers treat it as "skip this candidate",
// never as a request failure.
var ErrPredictionUnavailable = errors.New("artifacts: prediction unavailable")

// Oracle is a trained collaborative-filtering model reduced to its single
// capability: estimating a preference score for a (user, product) pair.
// Modeling the ensemble as a slice of this interface keeps concrete model
// types substitutable with stubs in tests.
type Oracle interface {
	Name() string
	Predict(userID, productID string) (float64, error)
}
