package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields are attached to every record logged with the context.
type LogFields struct {
	UserID    *int64  // Twiga user ID
	WaID      *string // WhatsApp ID of the teacher
	MessageID *int64  // Stored inbound message ID
	StreamID  *string // Redis stream entry ID
	ClassID   *int64
	Component string // Dotted component name, e.g. "twiga.brain.agent"
}

// WithLogFields enriches context with structured log fields.
// Newer non-nil values win over what the context already carries.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := mergeFields(GetLogFields(ctx), fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields returns the fields stored in ctx, or the zero value.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.UserID != nil {
		result.UserID = next.UserID
	}
	if next.WaID != nil {
		result.WaID = next.WaID
	}
	if next.MessageID != nil {
		result.MessageID = next.MessageID
	}
	if next.StreamID != nil {
		result.StreamID = next.StreamID
	}
	if next.ClassID != nil {
		result.ClassID = next.ClassID
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr returns a pointer to v, for inline LogFields literals.
func Ptr[T any](v T) *T {
	return &v
}

// Truncate shortens s to maxLen bytes and appends "..." when it was cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
