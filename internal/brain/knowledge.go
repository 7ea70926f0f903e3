package brain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"twiga.app/backend/common/llm"
	"twiga.app/backend/common/logger"
	"twiga.app/backend/internal/model"
)

// ErrNoResources is returned when a class has no linked resources to
// ground answers in.
var ErrNoResources = errors.New("no resources for class")

const defaultSearchResults = 7

// ResourceReader is the slice of resource storage the knowledge tools need.
type ResourceReader interface {
	IDsForClass(ctx context.Context, classID int64) ([]int64, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Resource, error)
}

// ChunkSearcher runs similarity search over embedded chunks.
type ChunkSearcher interface {
	VectorSearch(ctx context.Context, embedding []float32, n int, filter model.ChunkFilter) ([]model.Chunk, error)
}

// Knowledge grounds answers and exercises in a class's textbooks.
type Knowledge struct {
	resources         ResourceReader
	chunks            ChunkSearcher
	embedder          llm.Embedder
	llm               llm.AgentClient
	exerciseMaxTokens int
}

func NewKnowledge(resources ResourceReader, chunks ChunkSearcher, embedder llm.Embedder, llmClient llm.AgentClient, exerciseMaxTokens int) *Knowledge {
	if exerciseMaxTokens <= 0 {
		exerciseMaxTokens = 100
	}
	return &Knowledge{
		resources:         resources,
		chunks:            chunks,
		embedder:          embedder,
		llm:               llmClient,
		exerciseMaxTokens: exerciseMaxTokens,
	}
}

// Search embeds phrase and returns the n nearest chunks of the class's
// resources, restricted to chunkTypes when given.
func (k *Knowledge) Search(ctx context.Context, classID int64, phrase string, n int, chunkTypes ...model.ChunkType) ([]model.Chunk, []model.Resource, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{ClassID: logger.Ptr(classID)})

	resourceIDs, err := k.resources.IDsForClass(ctx, classID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading class resources: %w", err)
	}
	if len(resourceIDs) == 0 {
		return nil, nil, fmt.Errorf("%w %d", ErrNoResources, classID)
	}

	embedding, err := k.embedder.Embed(ctx, phrase)
	if err != nil {
		return nil, nil, fmt.Errorf("embedding query: %w", err)
	}

	if n <= 0 {
		n = defaultSearchResults
	}
	start := time.Now()
	chunks, err := k.chunks.VectorSearch(ctx, embedding, n, model.ChunkFilter{
		ChunkTypes:  chunkTypes,
		ResourceIDs: resourceIDs,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("searching knowledge: %w", err)
	}

	resources, err := k.resources.ListByIDs(ctx, resourceIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("loading resources: %w", err)
	}

	slog.DebugContext(ctx, "knowledge search completed",
		"query", logger.Truncate(phrase, 100),
		"results", len(chunks),
		"duration_ms", time.Since(start).Milliseconds())

	return chunks, resources, nil
}

// SearchKnowledge is the search_knowledge tool: textbook passages relevant
// to phrase, formatted as context for the agent.
func (k *Knowledge) SearchKnowledge(ctx context.Context, phrase string, classID int64) (string, error) {
	chunks, resources, err := k.Search(ctx, classID, phrase, defaultSearchResults, model.ChunkTypeText)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "No relevant information was found in the course textbooks.", nil
	}
	return FormatContext(chunks, nil, resources), nil
}

// GenerateExercise is the generate_exercise tool: one question for
// students, grounded in the retrieved textbook content.
func (k *Knowledge) GenerateExercise(ctx context.Context, query string, classID int64, subject string) (string, error) {
	chunks, _, err := k.Search(ctx, classID, query, defaultSearchResults, model.ChunkTypeText)
	if err != nil {
		return "", err
	}

	resp, err := k.llm.ChatWithTools(ctx, llm.AgentRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: exerciseSystemPrompt(subject)},
			{Role: llm.RoleUser, Content: exerciseUserPrompt(query, FormatContext(chunks, nil, nil))},
		},
		MaxTokens: k.exerciseMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generating exercise: %w", err)
	}

	slog.InfoContext(ctx, "exercise generated",
		"subject", subject,
		"prompt_tokens", resp.PromptTokens,
		"completion_tokens", resp.CompletionTokens)

	return resp.Content, nil
}
