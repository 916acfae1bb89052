package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPEmbedder calls an OpenAI-compatible /embeddings endpoint.
type HTTPEmbedder struct {
	BaseURL string
	Model   string
	APIKey  string
	Dim     int
	Client  *http.Client
}

type embeddingRequest struct {
	Model string   `json:"model,omitempty"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (h HTTPEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := h.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (h HTTPEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	b, _ := json.Marshal(embeddingRequest{Model: h.Model, Input: texts})
	url := strings.TrimRight(h.BaseURL, "/") + "/embeddings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(h.APIKey) != "" {
		req.Header.Set("Authorization", "Bearer "+h.APIKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("embedding service error: %s", resp.Status)
	}

	var r embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, err
	}
	if len(r.Data) != len(texts) {
		return nil, ErrEmptyEmbedding
	}

	out := make([][]float32, len(texts))
	for i, d := range r.Data {
		idx := d.Index
		if idx < 0 || idx >= len(out) {
			idx = i
		}
		if err := checkDim(d.Embedding, h.Dim); err != nil {
			return nil, err
		}
		out[idx] = d.Embedding
	}
	for _, v := range out {
		if v == nil {
			return nil, ErrEmptyEmbedding
		}
	}
	return out, nil
}
