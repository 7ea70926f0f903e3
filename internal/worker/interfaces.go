package worker

import (
	"context"

	"twiga.app/backend/internal/queue"
	"twiga.app/backend/internal/service"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// ChatProcessor is the part of service.ChatService the worker drives.
type ChatProcessor interface {
	ProcessQueued(ctx context.Context, messageID int64) (*service.ChatResult, error)
}
