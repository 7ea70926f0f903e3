package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"

	"twiga.app/backend/common/llm"
	"twiga.app/backend/core/db/sqlc"
	"twiga.app/backend/internal/model"
)

type messageStore struct {
	queries *sqlc.Queries
}

func newMessageStore(queries *sqlc.Queries) MessageStore {
	return &messageStore{queries: queries}
}

func (s *messageStore) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	row, err := s.queries.GetMessage(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toMessageModel(row)
}

func (s *messageStore) Create(ctx context.Context, msg *model.Message) error {
	var toolCalls []byte
	if len(msg.ToolCalls) > 0 {
		var err error
		if toolCalls, err = json.Marshal(msg.ToolCalls); err != nil {
			return fmt.Errorf("encoding tool calls: %w", err)
		}
	}

	row, err := s.queries.CreateMessage(ctx, sqlc.CreateMessageParams{
		ID:         msg.ID,
		UserID:     msg.UserID,
		Role:       string(msg.Role),
		Content:    msg.Content,
		ToolCalls:  toolCalls,
		ToolCallID: msg.ToolCallID,
		ToolName:   msg.ToolName,
		ReplyTo:    msg.ReplyTo,
	})
	if err != nil {
		return err
	}
	msg.CreatedAt = row.CreatedAt.Time
	return nil
}

// CreateBatch inserts msgs in order. Callers wrap it in a transaction to
// make the batch atomic.
func (s *messageStore) CreateBatch(ctx context.Context, msgs []*model.Message) error {
	for i, msg := range msgs {
		if err := s.Create(ctx, msg); err != nil {
			return fmt.Errorf("creating message %d of %d: %w", i+1, len(msgs), err)
		}
	}
	return nil
}

func (s *messageStore) History(ctx context.Context, userID int64, limit int32) ([]model.Message, error) {
	rows, err := s.queries.ListRecentMessagesByUser(ctx, sqlc.ListRecentMessagesByUserParams{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	return toChronological(rows)
}

func (s *messageStore) HistoryUpTo(ctx context.Context, userID, maxID int64, limit int32) ([]model.Message, error) {
	rows, err := s.queries.ListRecentMessagesByUserUpTo(ctx, sqlc.ListRecentMessagesByUserUpToParams{
		UserID: userID,
		ID:     maxID,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	return toChronological(rows)
}

func (s *messageStore) HasReply(ctx context.Context, messageID int64) (bool, error) {
	return s.queries.HasAssistantReplyTo(ctx, &messageID)
}

// toChronological converts newest-first rows to oldest-first messages.
func toChronological(rows []sqlc.Message) ([]model.Message, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	msgs := make([]model.Message, 0, len(rows))
	for _, r := range rows {
		m, err := toMessageModel(r)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, *m)
	}
	slices.Reverse(msgs)
	return msgs, nil
}

func toMessageModel(row sqlc.Message) (*model.Message, error) {
	msg := &model.Message{
		ID:         row.ID,
		UserID:     row.UserID,
		Role:       model.MessageRole(row.Role),
		Content:    row.Content,
		ToolCallID: row.ToolCallID,
		ToolName:   row.ToolName,
		ReplyTo:    row.ReplyTo,
		CreatedAt:  row.CreatedAt.Time,
	}
	if len(row.ToolCalls) > 0 {
		var calls []llm.ToolCall
		if err := json.Unmarshal(row.ToolCalls, &calls); err != nil {
			return nil, fmt.Errorf("decoding tool calls of message %d: %w", row.ID, err)
		}
		msg.ToolCalls = calls
	}
	return msg, nil
}
