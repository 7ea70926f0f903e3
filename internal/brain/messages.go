package brain

import (
	"errors"
	"fmt"

	"twiga.app/backend/common/llm"
	"twiga.app/backend/internal/model"
)

// ErrHistoryMismatch means the stored history is shorter than the batch of
// new messages it is supposed to already contain.
var ErrHistoryMismatch = errors.New("history shorter than new messages")

// FormatMessages builds the model input: the system prompt, then history
// without its trailing len(newMessages) entries (they are the new messages,
// already persisted), then the new messages themselves.
func FormatMessages(newMessages, history []model.Message, user *model.User) ([]llm.Message, error) {
	formatted := []llm.Message{{
		Role:    llm.RoleSystem,
		Content: SystemPrompt(user),
	}}

	if len(history) > 0 {
		if len(history) < len(newMessages) {
			return nil, fmt.Errorf("%w: %d new messages but only %d in history",
				ErrHistoryMismatch, len(newMessages), len(history))
		}

		old := history[:len(history)-len(newMessages)]
		for _, msg := range dropOrphanToolTurns(old) {
			formatted = append(formatted, msg.ToAPIFormat())
		}
	}

	for _, msg := range newMessages {
		formatted = append(formatted, msg.ToAPIFormat())
	}

	return formatted, nil
}

// dropOrphanToolTurns removes tool results at the head of a truncated
// history window whose requesting assistant turn fell outside the window.
// Providers reject tool messages that do not follow their tool call.
func dropOrphanToolTurns(history []model.Message) []model.Message {
	for len(history) > 0 && history[0].Role == model.MessageRoleTool {
		history = history[1:]
	}
	return history
}
