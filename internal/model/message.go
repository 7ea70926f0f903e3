package model

import (
	"time"

	"twiga.app/backend/common/llm"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
	MessageRoleTool      MessageRole = "tool"
)

func (r MessageRole) Valid() bool {
	switch r {
	case MessageRoleUser, MessageRoleAssistant, MessageRoleSystem, MessageRoleTool:
		return true
	}
	return false
}

// Message is one stored turn of a user's conversation. Assistant turns
// that requested tools carry ToolCalls; tool turns carry ToolCallID and
// ToolName. Generated turns point at the user message they answer
// through ReplyTo.
type Message struct {
	ID         int64          `json:"id,string"`
	UserID     int64          `json:"user_id,string"`
	Role       MessageRole    `json:"role"`
	Content    *string        `json:"content,omitempty"`
	ToolCalls  []llm.ToolCall `json:"tool_calls,omitempty"`
	ToolCallID *string        `json:"tool_call_id,omitempty"`
	ToolName   *string        `json:"tool_name,omitempty"`
	ReplyTo    *int64         `json:"reply_to,string,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Text returns the content or "" for content-less turns.
func (m *Message) Text() string {
	if m.Content == nil {
		return ""
	}
	return *m.Content
}

// ToAPIFormat converts the stored turn into a provider-neutral LLM message.
func (m *Message) ToAPIFormat() llm.Message {
	msg := llm.Message{
		Role:      string(m.Role),
		Content:   m.Text(),
		ToolCalls: m.ToolCalls,
	}
	if m.ToolCallID != nil {
		msg.ToolCallID = *m.ToolCallID
	}
	return msg
}
