package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"twiga.app/backend/core/db/sqlc"
	"twiga.app/backend/internal/model"
)

type subjectStore struct {
	queries *sqlc.Queries
}

func newSubjectStore(queries *sqlc.Queries) SubjectStore {
	return &subjectStore{queries: queries}
}

func (s *subjectStore) GetByID(ctx context.Context, id int64) (*model.Subject, error) {
	row, err := s.queries.GetSubject(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toSubjectModel(row), nil
}

func (s *subjectStore) Create(ctx context.Context, subject *model.Subject) error {
	row, err := s.queries.CreateSubject(ctx, sqlc.CreateSubjectParams{
		Name:   subject.Name,
		Status: string(subject.Status),
	})
	if err != nil {
		return err
	}
	*subject = *toSubjectModel(row)
	return nil
}

func (s *subjectStore) List(ctx context.Context) ([]model.Subject, error) {
	rows, err := s.queries.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}
	subjects := make([]model.Subject, len(rows))
	for i, r := range rows {
		subjects[i] = *toSubjectModel(r)
	}
	return subjects, nil
}

func toSubjectModel(row sqlc.Subject) *model.Subject {
	return &model.Subject{
		ID:        row.ID,
		Name:      row.Name,
		Status:    model.ClassStatus(row.Status),
		CreatedAt: row.CreatedAt.Time,
	}
}
