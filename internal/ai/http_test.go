package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPEmbedderOrdersByIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var req embeddingRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"first", "second"}, req.Input)
		_, _ = w.Write([]byte(`{"data":[{"index":1,"embedding":[0,1]},{"index":0,"embedding":[1,0]}]}`))
	}))
	defer srv.Close()

	e := HTTPEmbedder{BaseURL: srv.URL + "/v1/", APIKey: "secret", Dim: 2}
	out, err := e.EmbedBatch(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}, {0, 1}}, out)
}

func TestHTTPEmbedderDimensionMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"index":0,"embedding":[1,2,3]}]}`))
	}))
	defer srv.Close()

	_, err := HTTPEmbedder{BaseURL: srv.URL, Dim: 384}.Embed(context.Background(), "x")
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestHTTPEmbedderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := HTTPEmbedder{BaseURL: srv.URL}.Embed(context.Background(), "x")
	assert.Error(t, err)
}

func TestOpenAICompatGenerator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello"}}]}`))
	}))
	defer srv.Close()

	got, err := OpenAICompatGenerator{BaseURL: srv.URL, Model: "m"}.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestOpenAICompatGeneratorNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	got, err := OpenAICompatGenerator{BaseURL: srv.URL, Model: "m"}.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenAICompatGeneratorRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"details":[{"@type":"type.googleapis.com/google.rpc.RetryInfo","retryDelay":"7s"}]}}`))
	}))
	defer srv.Close()

	_, err := OpenAICompatGenerator{BaseURL: srv.URL, Model: "m"}.Generate(context.Background(), "hi")
	var rl RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, "rate limited, retry after 7s", rl.Error())
}
