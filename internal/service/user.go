package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"twiga.app/backend/common/id"
	"twiga.app/backend/common/logger"
	"twiga.app/backend/internal/model"
	"twiga.app/backend/internal/store"
)

type UpdateUserParams struct {
	Name  *string
	State *model.UserState
}

type UserService interface {
	GetOrCreate(ctx context.Context, waID string, name *string) (*model.User, error)
	GetByWaID(ctx context.Context, waID string) (*model.User, error)
	Update(ctx context.Context, waID string, params UpdateUserParams) (*model.User, error)
	// AssignClasses replaces the user's classes with those matching info,
	// only within subjectID when it is set, and returns the assigned ids.
	AssignClasses(ctx context.Context, user *model.User, info model.ClassInfo, subjectID *int64) ([]int64, error)
	Classes(ctx context.Context, user *model.User) ([]model.Class, error)
}

type userService struct {
	userStore  store.UserStore
	classStore store.ClassStore
	txRunner   TxRunner
}

func NewUserService(userStore store.UserStore, classStore store.ClassStore, txRunner TxRunner) UserService {
	return &userService{
		userStore:  userStore,
		classStore: classStore,
		txRunner:   txRunner,
	}
}

func (s *userService) GetOrCreate(ctx context.Context, waID string, name *string) (*model.User, error) {
	waID = strings.TrimSpace(waID)
	if waID == "" {
		return nil, fmt.Errorf("%w: wa_id is required", ErrInvalidInput)
	}

	user := &model.User{
		ID:    id.New(),
		Name:  name,
		WaID:  waID,
		State: model.UserStateNew,
		Role:  model.UserRoleTeacher,
	}

	if err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		return sp.Users().GetOrCreate(ctx, user)
	}); err != nil {
		slog.ErrorContext(ctx, "failed to get or create user",
			"error", err,
			"wa_id", waID,
		)
		return nil, fmt.Errorf("getting or creating user: %w", err)
	}

	return user, nil
}

func (s *userService) GetByWaID(ctx context.Context, waID string) (*model.User, error) {
	user, err := s.userStore.GetByWaID(ctx, waID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, waID string, params UpdateUserParams) (*model.User, error) {
	if params.State != nil && !params.State.Valid() {
		return nil, fmt.Errorf("%w: unknown state %q", ErrInvalidInput, *params.State)
	}

	user, err := s.GetByWaID(ctx, waID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		user.Name = params.Name
	}
	if params.State != nil {
		user.State = *params.State
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	slog.InfoContext(ctx, "user updated", "user_id", user.ID, "state", user.State)
	return user, nil
}

func (s *userService) AssignClasses(ctx context.Context, user *model.User, info model.ClassInfo, subjectID *int64) ([]int64, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(user.ID)})

	info = info.Normalized()
	for subject, grades := range info {
		for _, g := range grades {
			if !g.Valid() {
				return nil, fmt.Errorf("%w: unknown grade level %q for %s", ErrInvalidInput, g, subject)
			}
		}
	}

	classIDs, err := s.classStore.IDsFromClassInfo(ctx, info)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoClasses
		}
		return nil, fmt.Errorf("resolving classes: %w", err)
	}

	var classes []model.Class
	if err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.Classes().AssignTeacher(ctx, user.ID, classIDs, subjectID); err != nil {
			return fmt.Errorf("assigning classes: %w", err)
		}
		var err error
		classes, err = sp.Classes().ListByTeacher(ctx, user.ID)
		return err
	}); err != nil {
		return nil, err
	}

	user.TaughtClasses = classes
	slog.InfoContext(ctx, "teacher classes assigned",
		"class_ids", classIDs,
		"taught_classes", len(classes))
	return classIDs, nil
}

func (s *userService) Classes(ctx context.Context, user *model.User) ([]model.Class, error) {
	classes, err := s.classStore.ListByTeacher(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing classes: %w", err)
	}
	return classes, nil
}
