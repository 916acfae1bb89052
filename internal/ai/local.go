package ai

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

const (
	DefaultLocalModel = "sentence-transformers/all-MiniLM-L6-v2"
	DefaultLocalDim   = 384
)

// LocalEmbedder runs a sentence-transformer model in process. The pipeline is
// built on first use; a failed build is remembered and returned on every call.
type LocalEmbedder struct {
	ModelName string
	ModelDir  string
	Dim       int

	once     sync.Once
	initErr  error
	mu       sync.Mutex
	session  *hugot.Session
	pipeline *pipelines.FeatureExtractionPipeline
}

func NewLocalEmbedder(modelName, modelDir string, dim int) *LocalEmbedder {
	if modelName == "" {
		modelName = DefaultLocalModel
	}
	if modelDir == "" {
		modelDir = "./models"
	}
	return &LocalEmbedder{ModelName: modelName, ModelDir: modelDir, Dim: dim}
}

func (e *LocalEmbedder) init() error {
	e.once.Do(func() {
		modelPath, err := prepareModel(e.ModelName, e.ModelDir)
		if err != nil {
			e.initErr = err
			return
		}

		session, err := hugot.NewGoSession()
		if err != nil {
			e.initErr = fmt.Errorf("failed to create hugot session: %w", err)
			return
		}

		config := hugot.FeatureExtractionConfig{
			ModelPath: modelPath,
			Name:      "ticket-embedder",
			Options: []hugot.FeatureExtractionOption{
				pipelines.WithNormalization(),
			},
		}
		p, err := hugot.NewPipeline(session, config)
		if err != nil {
			if destroyErr := session.Destroy(); destroyErr != nil {
				e.initErr = fmt.Errorf("failed to create embedding pipeline: %w (cleanup error: %v)", err, destroyErr)
				return
			}
			e.initErr = fmt.Errorf("failed to create embedding pipeline: %w", err)
			return
		}
		e.session = session
		e.pipeline = p
	})
	return e.initErr
}

func (e *LocalEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (e *LocalEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := e.init(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	result, err := e.pipeline.RunPipeline(texts)
	e.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if len(result.Embeddings) != len(texts) {
		return nil, ErrEmptyEmbedding
	}
	for _, v := range result.Embeddings {
		if err := checkDim(v, e.Dim); err != nil {
			return nil, err
		}
	}
	return result.Embeddings, nil
}

func (e *LocalEmbedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil
	}
	err := e.session.Destroy()
	e.session = nil
	return err
}

// prepareModel downloads the ONNX export of modelName into dir unless it is already there.
func prepareModel(modelName, dir string) (string, error) {
	modelPath := filepath.Join(dir, strings.ReplaceAll(modelName, "/", "_"))
	if _, err := os.Stat(modelPath); err == nil {
		return modelPath, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}
	opts := hugot.NewDownloadOptions()
	opts.OnnxFilePath = "onnx/model.onnx"
	downloaded, err := hugot.DownloadModel(modelName, dir, opts)
	if err != nil {
		return "", fmt.Errorf("failed to download model: %w", err)
	}
	return downloaded, nil
}

func checkDim(v []float32, dim int) error {
	if len(v) == 0 {
		return ErrEmptyEmbedding
	}
	if dim > 0 && len(v) != dim {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(v), dim)
	}
	return nil
}
