package ai

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/supportwise/insights/internal/utils"
)

// MockEmbedder hashes each word into a bucket, so texts sharing words land close together.
type MockEmbedder struct {
	Dim int
}

func (m MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dim := m.Dim
	if dim <= 0 {
		dim = DefaultLocalDim
	}

	v := make([]float32, dim)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := utils.HashStringToUint64(w)
		sign := float32(1)
		if h&1 == 1 {
			sign = -1
		}
		v[int(h>>1)%dim] += sign
	}

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		v[0] = 1
		return v, nil
	}
	n := float32(math.Sqrt(norm))
	for i := range v {
		v[i] /= n
	}
	return v, nil
}

func (m MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

type MockGenerator struct {
	ModelVersion string
}

func (m MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	h := utils.HashStringToUint64(prompt)
	return fmt.Sprintf("- Mock analysis %x (%s)\n- Prompt length: %d characters", h, m.ModelVersion, len(prompt)), nil
}
