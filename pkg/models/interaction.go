package models

import "time"

// Interaction is one (user, product) event from the interaction log. The log
// is read-only input; the serving process never appends to it.
type Interaction struct {
	UserID    string    `json:"user_id" db:"user_id"`
	ProductID string    `json:"product_id" db:"product_id"`
	Timestamp time.Time `json:"timestamp" db:"created_at"`
}
