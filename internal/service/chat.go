package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"twiga.app/backend/common/id"
	"twiga.app/backend/common/logger"
	"twiga.app/backend/internal/brain"
	"twiga.app/backend/internal/model"
	"twiga.app/backend/internal/queue"
	"twiga.app/backend/internal/store"
)

// Responder produces the agent's reply to a persisted user message.
type Responder interface {
	GenerateResponse(ctx context.Context, history []model.Message, user *model.User, message model.Message) (*brain.Response, error)
}

type ChatResult struct {
	MessageID int64
	Reply     string
	ReplyID   int64
	// Skipped is set when the message already had a reply.
	Skipped bool
}

type ChatService interface {
	// HandleMessage persists a teacher's message and answers it synchronously.
	HandleMessage(ctx context.Context, waID string, name *string, text string) (*ChatResult, error)
	// Enqueue persists a teacher's message and leaves the reply to the worker.
	Enqueue(ctx context.Context, waID string, name *string, text string) (*model.Message, error)
	// ProcessQueued answers a message persisted by Enqueue. Safe to repeat.
	ProcessQueued(ctx context.Context, messageID int64) (*ChatResult, error)
	History(ctx context.Context, waID string, limit int32) ([]model.Message, error)
}

type chatService struct {
	userStore    store.UserStore
	messageStore store.MessageStore
	txRunner     TxRunner
	agent        Responder
	queue        queue.Producer
	historyLimit int32
}

func NewChatService(userStore store.UserStore, messageStore store.MessageStore, txRunner TxRunner, agent Responder, producer queue.Producer, historyLimit int32) ChatService {
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &chatService{
		userStore:    userStore,
		messageStore: messageStore,
		txRunner:     txRunner,
		agent:        agent,
		queue:        producer,
		historyLimit: historyLimit,
	}
}

func (s *chatService) HandleMessage(ctx context.Context, waID string, name *string, text string) (*ChatResult, error) {
	user, inbound, err := s.receive(ctx, waID, name, text)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:    logger.Ptr(user.ID),
		WaID:      logger.Ptr(user.WaID),
		MessageID: logger.Ptr(inbound.ID),
	})
	return s.respond(ctx, user, inbound)
}

func (s *chatService) Enqueue(ctx context.Context, waID string, name *string, text string) (*model.Message, error) {
	if s.queue == nil {
		return nil, errors.New("message queue is not configured")
	}

	user, inbound, err := s.receive(ctx, waID, name, text)
	if err != nil {
		return nil, err
	}

	var traceID *string
	if t := logger.TraceIDFromContext(ctx); t != "" {
		traceID = &t
	}

	if err := s.queue.Enqueue(ctx, queue.InboundMessage{
		MessageID: inbound.ID,
		UserID:    user.ID,
		TraceID:   traceID,
		Attempt:   1,
	}); err != nil {
		return nil, fmt.Errorf("enqueueing message: %w", err)
	}

	return inbound, nil
}

func (s *chatService) ProcessQueued(ctx context.Context, messageID int64) (*ChatResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{MessageID: logger.Ptr(messageID)})

	inbound, err := s.messageStore.GetByID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("loading message: %w", err)
	}
	if inbound.Role != model.MessageRoleUser {
		return nil, fmt.Errorf("%w: message %d is a %s message", ErrInvalidInput, messageID, inbound.Role)
	}

	replied, err := s.messageStore.HasReply(ctx, inbound.ID)
	if err != nil {
		return nil, fmt.Errorf("checking for reply: %w", err)
	}
	if replied {
		slog.InfoContext(ctx, "message already answered, skipping")
		return &ChatResult{MessageID: inbound.ID, Skipped: true}, nil
	}

	user, err := s.userStore.GetByID(ctx, inbound.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID: logger.Ptr(user.ID),
		WaID:   logger.Ptr(user.WaID),
	})

	return s.respond(ctx, user, inbound)
}

func (s *chatService) History(ctx context.Context, waID string, limit int32) ([]model.Message, error) {
	if limit <= 0 {
		limit = s.historyLimit
	}

	user, err := s.userStore.GetByWaID(ctx, waID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	msgs, err := s.messageStore.History(ctx, user.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return msgs, nil
}

// receive resolves the teacher and stores their message in one transaction.
func (s *chatService) receive(ctx context.Context, waID string, name *string, text string) (*model.User, *model.Message, error) {
	waID = strings.TrimSpace(waID)
	if waID == "" {
		return nil, nil, fmt.Errorf("%w: wa_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil, fmt.Errorf("%w: message is empty", ErrInvalidInput)
	}

	user := &model.User{
		ID:    id.New(),
		Name:  name,
		WaID:  waID,
		State: model.UserStateNew,
		Role:  model.UserRoleTeacher,
	}
	inbound := &model.Message{
		ID:      id.New(),
		Role:    model.MessageRoleUser,
		Content: &text,
	}

	if err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.Users().GetOrCreate(ctx, user); err != nil {
			return fmt.Errorf("getting or creating user: %w", err)
		}
		if user.State == model.UserStateBlocked {
			return ErrUserBlocked
		}
		inbound.UserID = user.ID
		if err := sp.Messages().Create(ctx, inbound); err != nil {
			return fmt.Errorf("storing message: %w", err)
		}
		return nil
	}); err != nil {
		return nil, nil, err
	}

	slog.InfoContext(ctx, "message received",
		"user_id", user.ID,
		"message_id", inbound.ID,
		"length", len(text))
	return user, inbound, nil
}

// respond runs the agent over the history ending at inbound and stores
// everything it produced, linked to inbound, in one transaction.
func (s *chatService) respond(ctx context.Context, user *model.User, inbound *model.Message) (*ChatResult, error) {
	start := time.Now()

	history, err := s.messageStore.HistoryUpTo(ctx, user.ID, inbound.ID, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	resp, err := s.agent.GenerateResponse(ctx, history, user, *inbound)
	if err != nil {
		slog.ErrorContext(ctx, "agent failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrAgentFailed, err)
	}

	generated := make([]*model.Message, len(resp.Messages))
	for i := range resp.Messages {
		resp.Messages[i].ReplyTo = &inbound.ID
		generated[i] = &resp.Messages[i]
	}

	if err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		return sp.Messages().CreateBatch(ctx, generated)
	}); err != nil {
		return nil, fmt.Errorf("storing reply: %w", err)
	}

	result := &ChatResult{
		MessageID: inbound.ID,
		Reply:     resp.Reply,
	}
	if n := len(generated); n > 0 {
		result.ReplyID = generated[n-1].ID
	}

	slog.InfoContext(ctx, "message answered",
		"reply_id", result.ReplyID,
		"generated_messages", len(generated),
		"steps", resp.Steps,
		"duration_ms", time.Since(start).Milliseconds())
	return result, nil
}
