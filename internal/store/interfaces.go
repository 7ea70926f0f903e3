package store

import (
	"context"
	"errors"

	"twiga.app/backend/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// UserStore defines the contract for user data access.
// Loads return users with TaughtClasses populated.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByWaID(ctx context.Context, waID string) (*model.User, error)
	// GetOrCreate locks an existing row FOR UPDATE, so it must run inside
	// a transaction to serialise concurrent first messages.
	GetOrCreate(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
}

// SubjectStore defines the contract for subject data access
type SubjectStore interface {
	GetByID(ctx context.Context, id int64) (*model.Subject, error)
	Create(ctx context.Context, subject *model.Subject) error
	List(ctx context.Context) ([]model.Subject, error)
}

// ClassStore defines the contract for class and teacher assignment data access
type ClassStore interface {
	Create(ctx context.Context, class *model.Class) error
	List(ctx context.Context) ([]model.Class, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]model.Class, error)
	// IDsFromClassInfo resolves active classes matching any subject/grade
	// pair. Returns ErrNotFound when nothing matches.
	IDsFromClassInfo(ctx context.Context, info model.ClassInfo) ([]int64, error)
	// AssignTeacher replaces the teacher's assignments, restricted to
	// classes of subjectID when it is non-nil. Run inside a transaction.
	AssignTeacher(ctx context.Context, teacherID int64, classIDs []int64, subjectID *int64) error
}

// MessageStore defines the contract for conversation history
type MessageStore interface {
	GetByID(ctx context.Context, id int64) (*model.Message, error)
	Create(ctx context.Context, msg *model.Message) error
	CreateBatch(ctx context.Context, msgs []*model.Message) error
	// History returns the latest limit messages, oldest first, or nil.
	History(ctx context.Context, userID int64, limit int32) ([]model.Message, error)
	// HistoryUpTo is History restricted to messages with id <= maxID.
	HistoryUpTo(ctx context.Context, userID, maxID int64, limit int32) ([]model.Message, error)
	// HasReply reports whether an assistant message answering messageID exists.
	HasReply(ctx context.Context, messageID int64) (bool, error)
}

// ResourceStore defines the contract for teaching resources
type ResourceStore interface {
	GetByID(ctx context.Context, id int64) (*model.Resource, error)
	List(ctx context.Context) ([]model.Resource, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Resource, error)
	Create(ctx context.Context, resource *model.Resource) error
	LinkClass(ctx context.Context, classID, resourceID int64) error
	// IDsForClass returns the distinct resources of a class, or nil.
	IDsForClass(ctx context.Context, classID int64) ([]int64, error)
}

// ChunkStore defines the contract for embedded resource fragments
type ChunkStore interface {
	Create(ctx context.Context, chunk *model.Chunk) error
	VectorSearch(ctx context.Context, embedding []float32, n int, filter model.ChunkFilter) ([]model.Chunk, error)
}
