package db

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	store, err := New(context.Background(), url, 4)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestAggregatesIntegration(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	daily, err := store.VolumeDaily(ctx)
	require.NoError(t, err)
	assert.NotNil(t, daily)

	status, err := store.CountByStatus(ctx)
	require.NoError(t, err)
	assert.NotNil(t, status)

	priority, err := store.CountByPriority(ctx)
	require.NoError(t, err)
	assert.NotNil(t, priority)

	tags, err := store.CountByTag(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tags)
}

func TestMatchTicketsIntegration(t *testing.T) {
	store := newTestStore(t)

	vec := make([]float32, 384)
	vec[0] = 1
	matches, err := store.MatchTickets(context.Background(), vec, 3)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(matches), 3)
}

func TestTicketsWithoutEmbeddingsIntegration(t *testing.T) {
	store := newTestStore(t)

	tickets, err := store.TicketsWithoutEmbeddings(context.Background(), 5)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(tickets), 5)
	assert.NoError(t, store.InsertEmbeddings(context.Background(), nil))
}
