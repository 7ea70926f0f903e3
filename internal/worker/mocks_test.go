package worker_test

import (
	"context"
	"sync"
	"time"

	"twiga.app/backend/internal/queue"
	"twiga.app/backend/internal/service"
)

type mockConsumer struct {
	mu       sync.Mutex
	batches  [][]queue.Message
	readErr  error
	acked    []queue.Message
	requeued []queue.Message
	dlq      []queue.Message
	reasons  []string
}

func (m *mockConsumer) Read(ctx context.Context) ([]queue.Message, error) {
	m.mu.Lock()
	if m.readErr != nil {
		err := m.readErr
		m.mu.Unlock()
		return nil, err
	}
	if len(m.batches) > 0 {
		batch := m.batches[0]
		m.batches = m.batches[1:]
		m.mu.Unlock()
		return batch, nil
	}
	m.mu.Unlock()

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Millisecond):
	}
	return nil, nil
}

func (m *mockConsumer) Ack(ctx context.Context, msg queue.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acked = append(m.acked, msg)
	return nil
}

func (m *mockConsumer) Requeue(ctx context.Context, msg queue.Message, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requeued = append(m.requeued, msg)
	m.reasons = append(m.reasons, errMsg)
	return nil
}

func (m *mockConsumer) SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dlq = append(m.dlq, msg)
	m.reasons = append(m.reasons, errMsg)
	return nil
}

func (m *mockConsumer) counts() (acked, requeued, dlq int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.acked), len(m.requeued), len(m.dlq)
}

type mockChatProcessor struct {
	mu        sync.Mutex
	processFn func(ctx context.Context, messageID int64) (*service.ChatResult, error)
	seen      []int64
}

func (m *mockChatProcessor) ProcessQueued(ctx context.Context, messageID int64) (*service.ChatResult, error) {
	m.mu.Lock()
	m.seen = append(m.seen, messageID)
	m.mu.Unlock()
	if m.processFn != nil {
		return m.processFn(ctx, messageID)
	}
	return &service.ChatResult{MessageID: messageID, Reply: "ok", ReplyID: messageID + 1}, nil
}

func inbound(streamID string, messageID int64, attempt int) queue.Message {
	return queue.Message{
		ID:        streamID,
		TaskType:  queue.TaskTypeInboundMessage,
		MessageID: messageID,
		UserID:    42,
		Attempt:   attempt,
	}
}
