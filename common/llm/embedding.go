package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
)

const defaultEmbeddingModel = "BAAI/bge-large-en-v1.5"

// ErrNoEmbedding is returned when the provider answers without vectors.
var ErrNoEmbedding = errors.New("no embedding data in response")

// Embedder turns text into a dense vector for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}

type EmbeddingConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int // expected vector width; 0 skips the check
}

type openaiEmbedder struct {
	client     openai.Client
	model      string
	dimensions int
}

// NewEmbedder creates an Embedder against an OpenAI-compatible embeddings
// endpoint. Anthropic has no embeddings API, so this is provider independent.
func NewEmbedder(cfg EmbeddingConfig) (Embedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = defaultEmbeddingModel
	}

	return &openaiEmbedder{
		client:     openai.NewClient(openAIOptions(Config{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL})...),
		model:      model,
		dimensions: cfg.Dimensions,
	}, nil
}

func (e *openaiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model:          openai.EmbeddingModel(e.model),
		Input:          openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, ErrNoEmbedding
	}

	vec := embeddingVector(resp.Data[0].Embedding)
	if e.dimensions > 0 && len(vec) != e.dimensions {
		return nil, fmt.Errorf("embedding has %d dimensions, want %d", len(vec), e.dimensions)
	}

	slog.DebugContext(ctx, "embedding completed",
		"model", e.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"dimensions", len(vec))

	return vec, nil
}

func (e *openaiEmbedder) Model() string {
	return e.model
}

// embeddingVector narrows the float64 values the API returns to the
// float32 width stored in pgvector columns.
func embeddingVector(data []float64) []float32 {
	out := make([]float32, len(data))
	for i, v := range data {
		out[i] = float32(v)
	}
	return out
}

// IsRetryable reports whether an LLM call failure is worth retrying.
// Rate limits, server errors and network failures are. Anything else,
// including our own validation errors, is not.
func IsRetryable(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		slog.DebugContext(ctx, "llm error not retryable: context cancelled or deadline exceeded")
		return false
	}

	if errors.Is(err, ErrNoEmbedding) {
		return false
	}

	status := 0
	var openaiErr *openai.Error
	var anthropicErr *anthropic.Error
	switch {
	case errors.As(err, &openaiErr):
		status = openaiErr.StatusCode
	case errors.As(err, &anthropicErr):
		status = anthropicErr.StatusCode
	default:
		var netErr net.Error
		if errors.As(err, &netErr) || errors.Is(err, io.ErrUnexpectedEOF) {
			slog.WarnContext(ctx, "llm network error, will retry", "error", err)
			return true
		}
		slog.ErrorContext(ctx, "llm error not retryable", "error", err)
		return false
	}

	switch {
	case status == 429:
		slog.WarnContext(ctx, "llm rate limited, will retry", "status_code", status)
		return true
	case status >= 500:
		slog.WarnContext(ctx, "llm server error, will retry", "status_code", status)
		return true
	default:
		slog.ErrorContext(ctx, "llm client error, not retryable", "status_code", status)
		return false
	}
}

// IsProviderError reports whether err came from the LLM provider rather
// than from our side of the call.
func IsProviderError(err error) bool {
	var openaiErr *openai.Error
	var anthropicErr *anthropic.Error
	return errors.As(err, &openaiErr) || errors.As(err, &anthropicErr) || errors.Is(err, ErrNoEmbedding)
}
