package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora/shoprec/pkg/models"
)

func TestFileStore_GetMiss(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	entry, err := store.Get(context.Background(), "cold_start:10")
	assert.Nil(t, entry)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestFileStore_PutGetRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	entry := &Entry{
		Timestamp: now,
		Results: []models.RecommendationResult{
			{ProductID: "p4", Name: "Trail Shoe", Score: 9.1, RatingDistribution: map[string]int{"5": 3}},
			{ProductID: "p5", Name: "Rain Jacket", Score: 8.2, RatingDistribution: map[string]int{}},
		},
	}

	require.NoError(t, store.Put(context.Background(), "cold_start:10", entry))

	got, err := store.Get(context.Background(), "cold_start:10")
	require.NoError(t, err)
	assert.True(t, got.Timestamp.Equal(now))
	require.Len(t, got.Results, 2)
	assert.Equal(t, "p4", got.Results[0].ProductID)
	assert.Equal(t, 9.1, got.Results[0].Score)
}

func TestFileStore_PutReplacesExisting(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	first := &Entry{Timestamp: time.Now(), Results: []models.RecommendationResult{{ProductID: "p1"}}}
	second := &Entry{Timestamp: time.Now(), Results: []models.RecommendationResult{{ProductID: "p2"}}}

	require.NoError(t, store.Put(context.Background(), "cold_start:5", first))
	require.NoError(t, store.Put(context.Background(), "cold_start:5", second))

	got, err := store.Get(context.Background(), "cold_start:5")
	require.NoError(t, err)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "p2", got.Results[0].ProductID)
}

func TestFileStore_KeyIsSanitized(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "cold_start:10", &Entry{Timestamp: time.Now()}))

	_, err = os.Stat(filepath.Join(dir, "cold_start_10.json"))
	assert.NoError(t, err)
}

func TestFileStore_CorruptEntry(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cold_start_10.json"), []byte("{not json"), 0o644))

	entry, err := store.Get(context.Background(), "cold_start:10")
	assert.Nil(t, entry)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "cold_start:10", &Entry{Timestamp: time.Now()}))

	matches, err := filepath.Glob(filepath.Join(dir, ".cache-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestEntry_Expired(t *testing.T) {
	now := time.Now()
	entry := &Entry{Timestamp: now.Add(-121 * time.Hour)}

	assert.True(t, entry.Expired(now, 120*time.Hour))
	assert.False(t, entry.Expired(now, 200*time.Hour))
}
