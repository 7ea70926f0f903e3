package service_test

import (
	"context"

	"twiga.app/backend/internal/brain"
	"twiga.app/backend/internal/model"
	"twiga.app/backend/internal/queue"
	"twiga.app/backend/internal/service"
	"twiga.app/backend/internal/store"
)

type mockUserStore struct {
	getByIDFn     func(ctx context.Context, id int64) (*model.User, error)
	getByWaIDFn   func(ctx context.Context, waID string) (*model.User, error)
	getOrCreateFn func(ctx context.Context, user *model.User) error
	updateFn      func(ctx context.Context, user *model.User) error
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByWaID(ctx context.Context, waID string) (*model.User, error) {
	if m.getByWaIDFn != nil {
		return m.getByWaIDFn(ctx, waID)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetOrCreate(ctx context.Context, user *model.User) error {
	if m.getOrCreateFn != nil {
		return m.getOrCreateFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) Update(ctx context.Context, user *model.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

type mockClassStore struct {
	createFn           func(ctx context.Context, class *model.Class) error
	listFn             func(ctx context.Context) ([]model.Class, error)
	listByTeacherFn    func(ctx context.Context, teacherID int64) ([]model.Class, error)
	idsFromClassInfoFn func(ctx context.Context, info model.ClassInfo) ([]int64, error)
	assignTeacherFn    func(ctx context.Context, teacherID int64, classIDs []int64, subjectID *int64) error
}

func (m *mockClassStore) Create(ctx context.Context, class *model.Class) error {
	if m.createFn != nil {
		return m.createFn(ctx, class)
	}
	return nil
}

func (m *mockClassStore) List(ctx context.Context) ([]model.Class, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockClassStore) ListByTeacher(ctx context.Context, teacherID int64) ([]model.Class, error) {
	if m.listByTeacherFn != nil {
		return m.listByTeacherFn(ctx, teacherID)
	}
	return nil, nil
}

func (m *mockClassStore) IDsFromClassInfo(ctx context.Context, info model.ClassInfo) ([]int64, error) {
	if m.idsFromClassInfoFn != nil {
		return m.idsFromClassInfoFn(ctx, info)
	}
	return nil, store.ErrNotFound
}

func (m *mockClassStore) AssignTeacher(ctx context.Context, teacherID int64, classIDs []int64, subjectID *int64) error {
	if m.assignTeacherFn != nil {
		return m.assignTeacherFn(ctx, teacherID, classIDs, subjectID)
	}
	return nil
}

type mockMessageStore struct {
	getByIDFn       func(ctx context.Context, id int64) (*model.Message, error)
	createFn        func(ctx context.Context, msg *model.Message) error
	createBatchFn   func(ctx context.Context, msgs []*model.Message) error
	historyFn       func(ctx context.Context, userID int64, limit int32) ([]model.Message, error)
	historyUpToFn   func(ctx context.Context, userID, maxID int64, limit int32) ([]model.Message, error)
	hasReplyFn      func(ctx context.Context, messageID int64) (bool, error)
	created         []*model.Message
}

func (m *mockMessageStore) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockMessageStore) Create(ctx context.Context, msg *model.Message) error {
	m.created = append(m.created, msg)
	if m.createFn != nil {
		return m.createFn(ctx, msg)
	}
	return nil
}

func (m *mockMessageStore) CreateBatch(ctx context.Context, msgs []*model.Message) error {
	if m.createBatchFn != nil {
		return m.createBatchFn(ctx, msgs)
	}
	m.created = append(m.created, msgs...)
	return nil
}

func (m *mockMessageStore) History(ctx context.Context, userID int64, limit int32) ([]model.Message, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockMessageStore) HistoryUpTo(ctx context.Context, userID, maxID int64, limit int32) ([]model.Message, error) {
	if m.historyUpToFn != nil {
		return m.historyUpToFn(ctx, userID, maxID, limit)
	}
	return nil, nil
}

func (m *mockMessageStore) HasReply(ctx context.Context, messageID int64) (bool, error) {
	if m.hasReplyFn != nil {
		return m.hasReplyFn(ctx, messageID)
	}
	return false, nil
}

type mockSubjectStore struct {
	getByIDFn func(ctx context.Context, id int64) (*model.Subject, error)
	createFn  func(ctx context.Context, subject *model.Subject) error
}

func (m *mockSubjectStore) GetByID(ctx context.Context, id int64) (*model.Subject, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockSubjectStore) Create(ctx context.Context, subject *model.Subject) error {
	if m.createFn != nil {
		return m.createFn(ctx, subject)
	}
	return nil
}

func (m *mockSubjectStore) List(ctx context.Context) ([]model.Subject, error) {
	return nil, nil
}

type mockResourceStore struct {
	getByIDFn   func(ctx context.Context, id int64) (*model.Resource, error)
	listFn      func(ctx context.Context) ([]model.Resource, error)
	linkClassFn func(ctx context.Context, classID, resourceID int64) error
}

func (m *mockResourceStore) GetByID(ctx context.Context, id int64) (*model.Resource, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockResourceStore) List(ctx context.Context) ([]model.Resource, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockResourceStore) ListByIDs(ctx context.Context, ids []int64) ([]model.Resource, error) {
	return nil, nil
}

func (m *mockResourceStore) Create(ctx context.Context, resource *model.Resource) error {
	return nil
}

func (m *mockResourceStore) LinkClass(ctx context.Context, classID, resourceID int64) error {
	if m.linkClassFn != nil {
		return m.linkClassFn(ctx, classID, resourceID)
	}
	return nil
}

func (m *mockResourceStore) IDsForClass(ctx context.Context, classID int64) ([]int64, error) {
	return nil, nil
}

type mockChunkStore struct {
	createFn func(ctx context.Context, chunk *model.Chunk) error
}

func (m *mockChunkStore) Create(ctx context.Context, chunk *model.Chunk) error {
	if m.createFn != nil {
		return m.createFn(ctx, chunk)
	}
	return nil
}

func (m *mockChunkStore) VectorSearch(ctx context.Context, embedding []float32, n int, filter model.ChunkFilter) ([]model.Chunk, error) {
	return nil, nil
}

type mockStoreProvider struct {
	users    store.UserStore
	classes  store.ClassStore
	messages store.MessageStore
}

func (m *mockStoreProvider) Users() store.UserStore       { return m.users }
func (m *mockStoreProvider) Classes() store.ClassStore    { return m.classes }
func (m *mockStoreProvider) Messages() store.MessageStore { return m.messages }

// mockTxRunner runs fn directly against the provider's stores.
type mockTxRunner struct {
	provider  service.StoreProvider
	err       error
	callCount int
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	m.callCount++
	if m.err != nil {
		return m.err
	}
	return fn(m.provider)
}

type mockResponder struct {
	generateFn  func(ctx context.Context, history []model.Message, user *model.User, message model.Message) (*brain.Response, error)
	callCount   int
	lastHistory []model.Message
}

func (m *mockResponder) GenerateResponse(ctx context.Context, history []model.Message, user *model.User, message model.Message) (*brain.Response, error) {
	m.callCount++
	m.lastHistory = history
	if m.generateFn != nil {
		return m.generateFn(ctx, history, user, message)
	}
	return &brain.Response{}, nil
}

type mockProducer struct {
	enqueueFn func(ctx context.Context, msg queue.InboundMessage) error
	enqueued  []queue.InboundMessage
}

func (m *mockProducer) Enqueue(ctx context.Context, msg queue.InboundMessage) error {
	m.enqueued = append(m.enqueued, msg)
	if m.enqueueFn != nil {
		return m.enqueueFn(ctx, msg)
	}
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}

type mockEngine struct {
	searchFn   func(ctx context.Context, classID int64, phrase string, n int, chunkTypes ...model.ChunkType) ([]model.Chunk, []model.Resource, error)
	generateFn func(ctx context.Context, query string, classID int64, subject string) (string, error)
}

func (m *mockEngine) Search(ctx context.Context, classID int64, phrase string, n int, chunkTypes ...model.ChunkType) ([]model.Chunk, []model.Resource, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, classID, phrase, n, chunkTypes...)
	}
	return nil, nil, nil
}

func (m *mockEngine) GenerateExercise(ctx context.Context, query string, classID int64, subject string) (string, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, query, classID, subject)
	}
	return "", nil
}

type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) ([]float32, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return []float32{0.1, 0.2}, nil
}

func (m *mockEmbedder) Model() string {
	return "test-embedder"
}

func stringPtr(s string) *string {
	return &s
}
