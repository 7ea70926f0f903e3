package worker

import (
	"context"
	"errors"

	"twiga.app/backend/common/llm"
	"twiga.app/backend/internal/service"
	"twiga.app/backend/internal/store"
)

// retryable reports whether a failed message deserves another attempt.
// Missing rows, bad input and blocked users fail the same way every time.
func retryable(ctx context.Context, err error) bool {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrUserBlocked):
		return false
	case errors.Is(err, service.ErrAgentFailed):
		return llm.IsRetryable(ctx, err)
	}
	return true
}
