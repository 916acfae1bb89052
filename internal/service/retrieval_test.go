package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportwise/insights/internal/models"
)

func TestMatchSortsAndTruncates(t *testing.T) {
	store := &fakeMatcher{matches: []models.RetrievedMatch{
		{TicketID: "a", Similarity: 0.2},
		{TicketID: "b", Similarity: 0.9},
		{TicketID: "c", Similarity: 0.5},
		{TicketID: "d", Similarity: 0.9},
	}}
	r := RetrievalClient{Store: store}

	got, err := r.Match(context.Background(), []float32{1}, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"b", "d", "c"}, []string{got[0].TicketID, got[1].TicketID, got[2].TicketID})
	assert.Equal(t, 3, store.gotK)
}

func TestMatchDefaultsK(t *testing.T) {
	store := &fakeMatcher{}
	got, err := RetrievalClient{Store: store}.Match(context.Background(), []float32{1}, 0)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultMatchCount, store.gotK)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMatchWrapsStoreError(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := RetrievalClient{Store: &fakeMatcher{err: boom}}.Match(context.Background(), []float32{1}, 5)
	assert.ErrorIs(t, err, ErrRetrieval)
	assert.ErrorIs(t, err, boom)
}

func TestSearchEmbeddingFailureSkipsStore(t *testing.T) {
	store := &fakeMatcher{}
	r := RetrievalClient{Store: store, Embedder: &fakeEmbedder{err: errors.New("model missing")}}

	_, err := r.Search(context.Background(), "login issues", 5)
	assert.ErrorIs(t, err, ErrEmbedding)
	assert.Equal(t, 0, store.calls)
}

func TestSearchPassesVector(t *testing.T) {
	store := &fakeMatcher{matches: []models.RetrievedMatch{{TicketID: "a", Similarity: 0.8}}}
	r := RetrievalClient{Store: store, Embedder: &fakeEmbedder{}}

	got, err := r.Search(context.Background(), "login issues", 2)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, store.gotVec)
}
