package store

import (
	"twiga.app/backend/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Subjects() SubjectStore {
	return newSubjectStore(s.queries)
}

func (s *Stores) Classes() ClassStore {
	return newClassStore(s.queries)
}

func (s *Stores) Messages() MessageStore {
	return newMessageStore(s.queries)
}

func (s *Stores) Resources() ResourceStore {
	return newResourceStore(s.queries)
}

func (s *Stores) Chunks() ChunkStore {
	return newChunkStore(s.queries)
}
