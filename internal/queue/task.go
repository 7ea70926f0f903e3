package queue

type TaskType string

const (
	TaskTypeInboundMessage TaskType = "inbound_message"
)

// InboundMessage points the worker at a persisted teacher message that
// still needs a reply.
type InboundMessage struct {
	MessageID int64
	UserID    int64
	TraceID   *string
	Attempt   int
}
