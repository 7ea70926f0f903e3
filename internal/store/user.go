package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"twiga.app/backend/core/db/sqlc"
	"twiga.app/backend/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.withClasses(ctx, row)
}

func (s *userStore) GetByWaID(ctx context.Context, waID string) (*model.User, error) {
	row, err := s.queries.GetUserByWaID(ctx, waID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.withClasses(ctx, row)
}

// GetOrCreate fills user from the row matching user.WaID, inserting it with
// the given ID, name, state and role when absent. A concurrent insert of
// the same wa_id resolves to the existing row.
func (s *userStore) GetOrCreate(ctx context.Context, user *model.User) error {
	row, err := s.queries.GetUserByWaIDForUpdate(ctx, user.WaID)
	if errors.Is(err, pgx.ErrNoRows) {
		row, err = s.queries.InsertUserIfAbsent(ctx, sqlc.InsertUserIfAbsentParams{
			ID:    user.ID,
			Name:  user.Name,
			WaID:  user.WaID,
			State: string(user.State),
			Role:  string(user.Role),
		})
	}
	if err != nil {
		return err
	}

	loaded, err := s.withClasses(ctx, row)
	if err != nil {
		return err
	}
	*user = *loaded
	return nil
}

func (s *userStore) Update(ctx context.Context, user *model.User) error {
	row, err := s.queries.UpdateUser(ctx, sqlc.UpdateUserParams{
		ID:    user.ID,
		Name:  user.Name,
		State: string(user.State),
		Role:  string(user.Role),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	updated := toUserModel(row)
	updated.TaughtClasses = user.TaughtClasses
	*user = *updated
	return nil
}

func (s *userStore) withClasses(ctx context.Context, row sqlc.User) (*model.User, error) {
	user := toUserModel(row)
	classes, err := s.queries.ListClassesByTeacher(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("loading taught classes: %w", err)
	}
	for _, c := range classes {
		user.TaughtClasses = append(user.TaughtClasses, model.Class{
			ID:          c.ID,
			SubjectID:   c.SubjectID,
			SubjectName: c.SubjectName,
			GradeLevel:  model.GradeLevel(c.GradeLevel),
			Name:        c.Name,
			Status:      model.ClassStatus(c.Status),
		})
	}
	return user, nil
}

func toUserModel(row sqlc.User) *model.User {
	return &model.User{
		ID:        row.ID,
		Name:      row.Name,
		WaID:      row.WaID,
		State:     model.UserState(row.State),
		Role:      model.UserRole(row.Role),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
