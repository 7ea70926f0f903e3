package store

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"github.com/samber/lo"

	"twiga.app/backend/core/db/sqlc"
	"twiga.app/backend/internal/model"
)

type chunkStore struct {
	queries *sqlc.Queries
}

func newChunkStore(queries *sqlc.Queries) ChunkStore {
	return &chunkStore{queries: queries}
}

func (s *chunkStore) Create(ctx context.Context, chunk *model.Chunk) error {
	row, err := s.queries.CreateChunk(ctx, sqlc.CreateChunkParams{
		ResourceID:           chunk.ResourceID,
		Content:              chunk.Content,
		TopLevelSectionIndex: chunk.TopLevelSectionIndex,
		TopLevelSectionTitle: chunk.TopLevelSectionTitle,
		ChunkType:            string(chunk.ChunkType),
		Embedding:            pgvector.NewVector(chunk.Embedding),
	})
	if err != nil {
		return err
	}
	chunk.ID = row.ID
	chunk.CreatedAt = row.CreatedAt.Time
	return nil
}

// VectorSearch orders chunks by cosine distance to embedding. Nil filter
// slices are sent as SQL NULL, which disables that condition.
func (s *chunkStore) VectorSearch(ctx context.Context, embedding []float32, n int, filter model.ChunkFilter) ([]model.Chunk, error) {
	var chunkTypes []string
	if len(filter.ChunkTypes) > 0 {
		chunkTypes = lo.Map(filter.ChunkTypes, func(t model.ChunkType, _ int) string { return string(t) })
	}
	var resourceIDs []int64
	if len(filter.ResourceIDs) > 0 {
		resourceIDs = filter.ResourceIDs
	}

	rows, err := s.queries.SearchChunks(ctx, sqlc.SearchChunksParams{
		QueryEmbedding: pgvector.NewVector(embedding),
		ChunkTypes:     chunkTypes,
		ResourceIds:    resourceIDs,
		ResultLimit:    int32(n),
	})
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(r sqlc.SearchChunksRow, _ int) model.Chunk {
		return model.Chunk{
			ID:                   r.ID,
			ResourceID:           r.ResourceID,
			Content:              r.Content,
			TopLevelSectionIndex: r.TopLevelSectionIndex,
			TopLevelSectionTitle: r.TopLevelSectionTitle,
			ChunkType:            model.ChunkType(r.ChunkType),
			Distance:             lo.ToPtr(r.Distance),
			CreatedAt:            r.CreatedAt.Time,
		}
	}), nil
}
