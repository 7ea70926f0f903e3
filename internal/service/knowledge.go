package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"twiga.app/backend/common/llm"
	"twiga.app/backend/internal/model"
	"twiga.app/backend/internal/store"
)

const maxSearchResults = 50

// KnowledgeEngine is the retrieval and exercise side of the agent.
// *brain.Knowledge implements it.
type KnowledgeEngine interface {
	Search(ctx context.Context, classID int64, phrase string, n int, chunkTypes ...model.ChunkType) ([]model.Chunk, []model.Resource, error)
	GenerateExercise(ctx context.Context, query string, classID int64, subject string) (string, error)
}

type KnowledgeService interface {
	Search(ctx context.Context, classID int64, phrase string, n int) ([]model.Chunk, error)
	GenerateExercise(ctx context.Context, classID int64, subject, query string) (string, error)
	// IngestChunk embeds chunk.Content and stores the chunk.
	IngestChunk(ctx context.Context, chunk *model.Chunk) error
}

type knowledgeService struct {
	engine        KnowledgeEngine
	embedder      llm.Embedder
	resourceStore store.ResourceStore
	chunkStore    store.ChunkStore
}

func NewKnowledgeService(engine KnowledgeEngine, embedder llm.Embedder, resourceStore store.ResourceStore, chunkStore store.ChunkStore) KnowledgeService {
	return &knowledgeService{
		engine:        engine,
		embedder:      embedder,
		resourceStore: resourceStore,
		chunkStore:    chunkStore,
	}
}

func (s *knowledgeService) Search(ctx context.Context, classID int64, phrase string, n int) ([]model.Chunk, error) {
	if strings.TrimSpace(phrase) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	if n > maxSearchResults {
		n = maxSearchResults
	}

	chunks, _, err := s.engine.Search(ctx, classID, phrase, n)
	if err != nil {
		return nil, wrapLLMError(err)
	}
	return chunks, nil
}

func (s *knowledgeService) GenerateExercise(ctx context.Context, classID int64, subject, query string) (string, error) {
	if strings.TrimSpace(query) == "" || strings.TrimSpace(subject) == "" {
		return "", fmt.Errorf("%w: subject and query are required", ErrInvalidInput)
	}

	exercise, err := s.engine.GenerateExercise(ctx, query, classID, subject)
	if err != nil {
		return "", wrapLLMError(err)
	}
	return exercise, nil
}

func (s *knowledgeService) IngestChunk(ctx context.Context, chunk *model.Chunk) error {
	if strings.TrimSpace(chunk.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if chunk.ChunkType == "" {
		chunk.ChunkType = model.ChunkTypeText
	}
	if !chunk.ChunkType.Valid() {
		return fmt.Errorf("%w: unknown chunk type %q", ErrInvalidInput, chunk.ChunkType)
	}

	if _, err := s.resourceStore.GetByID(ctx, chunk.ResourceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("getting resource: %w", err)
	}

	embedding, err := s.embedder.Embed(ctx, chunk.Content)
	if err != nil {
		return fmt.Errorf("%w: embedding chunk: %w", ErrAgentFailed, err)
	}
	chunk.Embedding = embedding

	if err := s.chunkStore.Create(ctx, chunk); err != nil {
		return fmt.Errorf("creating chunk: %w", err)
	}

	slog.InfoContext(ctx, "chunk ingested",
		"chunk_id", chunk.ID,
		"resource_id", chunk.ResourceID,
		"chunk_type", chunk.ChunkType)
	return nil
}

// wrapLLMError tags provider failures so handlers can answer 502. Domain
// errors such as a class without resources pass through unchanged.
func wrapLLMError(err error) error {
	if llm.IsProviderError(err) {
		return fmt.Errorf("%w: %w", ErrAgentFailed, err)
	}
	return err
}
