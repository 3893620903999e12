package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInteractionIndex_Lookup(t *testing.T) {
	idx := NewInteractionIndex(testInteractions())

	u2 := idx.Lookup("u2")
	assert.Len(t, u2, 2)
	assert.Contains(t, u2, "p1")
	assert.Contains(t, u2, "p2")
}

func TestInteractionIndex_UnknownUserIsEmptyNotError(t *testing.T) {
	idx := NewInteractionIndex(testInteractions())

	assert.Empty(t, idx.Lookup("ghost"))
	assert.False(t, idx.HasHistory("ghost"))
	assert.True(t, idx.HasHistory("u1"))
}

func TestInteractionIndex_DuplicateInteractionsCollapse(t *testing.T) {
	interactions := testInteractions()
	interactions = append(interactions, interactions[0]) // u1/p1 again

	idx := NewInteractionIndex(interactions)
	assert.Len(t, idx.Lookup("u1"), 1)
}

func TestInteractionIndex_EmptyLog(t *testing.T) {
	idx := NewInteractionIndex(nil)
	assert.Empty(t, idx.Lookup("u1"))
}
