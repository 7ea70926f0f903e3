package service

import (
	"twiga.app/backend/common/llm"
	"twiga.app/backend/internal/queue"
	"twiga.app/backend/internal/store"
)

type Config struct {
	Agent        Responder
	Knowledge    KnowledgeEngine
	Embedder     llm.Embedder
	Queue        queue.Producer // nil disables Enqueue
	HistoryLimit int32
}

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	cfg      Config
}

func NewServices(stores *store.Stores, txRunner TxRunner, cfg Config) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		cfg:      cfg,
	}
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users(), s.stores.Classes(), s.txRunner)
}

func (s *Services) Chat() ChatService {
	return NewChatService(s.stores.Users(), s.stores.Messages(), s.txRunner, s.cfg.Agent, s.cfg.Queue, s.cfg.HistoryLimit)
}

func (s *Services) Knowledge() KnowledgeService {
	return NewKnowledgeService(s.cfg.Knowledge, s.cfg.Embedder, s.stores.Resources(), s.stores.Chunks())
}

func (s *Services) Catalog() CatalogService {
	return NewCatalogService(s.stores.Subjects(), s.stores.Classes(), s.stores.Resources())
}
