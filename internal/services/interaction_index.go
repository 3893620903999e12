package services

import "github.com/velora/shoprec/pkg/models"

// InteractionIndex answers "which products has this user touched" in O(1)
// after a single O(n) pass over the interaction log at construction time.
// The index is read-only once built.
type InteractionIndex struct {
	byUser map[string]map[string]struct{}
}

func NewInteractionIndex(interactions []models.Interaction) *InteractionIndex {
	idx := &InteractionIndex{
		byUser: make(map[string]map[string]struct{}),
	}
	for _, interaction := range interactions {
		set, ok := idx.byUser[interaction.UserID]
		if !ok {
			set = make(map[string]struct{})
			idx.byUser[interaction.UserID] = set
		}
		set[interaction.ProductID] = struct{}{}
	}
	return idx
}

// Lookup returns the set of products the user has interacted with. Unknown
// users get an empty set, not an error. Callers must not mutate the result.
func (idx *InteractionIndex) Lookup(userID string) map[string]struct{} {
	if set, ok := idx.byUser[userID]; ok {
		return set
	}
	return nil
}

// HasHistory reports whether the user has at least one recorded interaction.
func (idx *InteractionIndex) HasHistory(userID string) bool {
	return len(idx.byUser[userID]) > 0
}
