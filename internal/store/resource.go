package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"

	"twiga.app/backend/core/db/sqlc"
	"twiga.app/backend/internal/model"
)

type resourceStore struct {
	queries *sqlc.Queries
}

func newResourceStore(queries *sqlc.Queries) ResourceStore {
	return &resourceStore{queries: queries}
}

func (s *resourceStore) GetByID(ctx context.Context, id int64) (*model.Resource, error) {
	row, err := s.queries.GetResource(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toResourceModel(row), nil
}

func (s *resourceStore) List(ctx context.Context) ([]model.Resource, error) {
	rows, err := s.queries.ListResources(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(r sqlc.Resource, _ int) model.Resource {
		return *toResourceModel(r)
	}), nil
}

func (s *resourceStore) ListByIDs(ctx context.Context, ids []int64) ([]model.Resource, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.queries.ListResourcesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(r sqlc.Resource, _ int) model.Resource {
		return *toResourceModel(r)
	}), nil
}

func (s *resourceStore) Create(ctx context.Context, resource *model.Resource) error {
	row, err := s.queries.CreateResource(ctx, sqlc.CreateResourceParams{
		Name:        resource.Name,
		Type:        resource.Type,
		Authors:     lo.Ternary(resource.Authors == nil, []string{}, resource.Authors),
		GradeLevels: lo.Ternary(resource.GradeLevels == nil, []string{}, resource.GradeLevels),
		Subjects:    lo.Ternary(resource.Subjects == nil, []string{}, resource.Subjects),
	})
	if err != nil {
		return err
	}
	*resource = *toResourceModel(row)
	return nil
}

func (s *resourceStore) LinkClass(ctx context.Context, classID, resourceID int64) error {
	return s.queries.LinkResourceToClass(ctx, sqlc.LinkResourceToClassParams{
		ClassID:    classID,
		ResourceID: resourceID,
	})
}

func (s *resourceStore) IDsForClass(ctx context.Context, classID int64) ([]int64, error) {
	ids, err := s.queries.ListResourceIDsByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return ids, nil
}

func toResourceModel(row sqlc.Resource) *model.Resource {
	return &model.Resource{
		ID:          row.ID,
		Name:        row.Name,
		Type:        row.Type,
		Authors:     row.Authors,
		GradeLevels: row.GradeLevels,
		Subjects:    row.Subjects,
		CreatedAt:   row.CreatedAt.Time,
	}
}
