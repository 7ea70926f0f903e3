package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"twiga.app/backend/internal/model"
	"twiga.app/backend/internal/store"
)

// CatalogService manages the subjects, classes and resources teachers are
// matched against.
type CatalogService interface {
	CreateSubject(ctx context.Context, subject *model.Subject) error
	ListSubjects(ctx context.Context) ([]model.Subject, error)
	CreateClass(ctx context.Context, class *model.Class) error
	ListClasses(ctx context.Context) ([]model.Class, error)
	CreateResource(ctx context.Context, resource *model.Resource) error
	GetResource(ctx context.Context, id int64) (*model.Resource, error)
	ListResources(ctx context.Context) ([]model.Resource, error)
	LinkResource(ctx context.Context, resourceID, classID int64) error
}

type catalogService struct {
	subjectStore  store.SubjectStore
	classStore    store.ClassStore
	resourceStore store.ResourceStore
}

func NewCatalogService(subjectStore store.SubjectStore, classStore store.ClassStore, resourceStore store.ResourceStore) CatalogService {
	return &catalogService{
		subjectStore:  subjectStore,
		classStore:    classStore,
		resourceStore: resourceStore,
	}
}

func (s *catalogService) CreateSubject(ctx context.Context, subject *model.Subject) error {
	subject.Name = strings.ToLower(strings.TrimSpace(subject.Name))
	if subject.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if subject.Status == "" {
		subject.Status = model.ClassStatusActive
	}
	if !subject.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, subject.Status)
	}

	if err := s.subjectStore.Create(ctx, subject); err != nil {
		return fmt.Errorf("creating subject: %w", err)
	}
	slog.InfoContext(ctx, "subject created", "subject_id", subject.ID, "name", subject.Name)
	return nil
}

func (s *catalogService) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	subjects, err := s.subjectStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	return subjects, nil
}

func (s *catalogService) CreateClass(ctx context.Context, class *model.Class) error {
	if !class.GradeLevel.Valid() {
		return fmt.Errorf("%w: unknown grade level %q", ErrInvalidInput, class.GradeLevel)
	}
	if class.Status == "" {
		class.Status = model.ClassStatusActive
	}
	if !class.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, class.Status)
	}

	subject, err := s.subjectStore.GetByID(ctx, class.SubjectID)
	if err != nil {
		return fmt.Errorf("getting subject: %w", err)
	}
	class.SubjectName = subject.Name
	if strings.TrimSpace(class.Name) == "" {
		class.Name = fmt.Sprintf("%s %s", subject.Name, class.GradeLevel.Display())
	}

	if err := s.classStore.Create(ctx, class); err != nil {
		return fmt.Errorf("creating class: %w", err)
	}
	slog.InfoContext(ctx, "class created", "class_id", class.ID, "subject_id", class.SubjectID, "grade_level", class.GradeLevel)
	return nil
}

func (s *catalogService) ListClasses(ctx context.Context) ([]model.Class, error) {
	classes, err := s.classStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing classes: %w", err)
	}
	return classes, nil
}

func (s *catalogService) CreateResource(ctx context.Context, resource *model.Resource) error {
	if strings.TrimSpace(resource.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if resource.Type == "" {
		resource.Type = "textbook"
	}
	for _, g := range resource.GradeLevels {
		if !model.GradeLevel(g).Valid() {
			return fmt.Errorf("%w: unknown grade level %q", ErrInvalidInput, g)
		}
	}

	if err := s.resourceStore.Create(ctx, resource); err != nil {
		return fmt.Errorf("creating resource: %w", err)
	}
	slog.InfoContext(ctx, "resource created", "resource_id", resource.ID, "name", resource.Name)
	return nil
}

func (s *catalogService) GetResource(ctx context.Context, id int64) (*model.Resource, error) {
	return s.resourceStore.GetByID(ctx, id)
}

func (s *catalogService) ListResources(ctx context.Context) ([]model.Resource, error) {
	resources, err := s.resourceStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	return resources, nil
}

func (s *catalogService) LinkResource(ctx context.Context, resourceID, classID int64) error {
	if _, err := s.resourceStore.GetByID(ctx, resourceID); err != nil {
		return err
	}
	if err := s.resourceStore.LinkClass(ctx, classID, resourceID); err != nil {
		return fmt.Errorf("linking resource to class: %w", err)
	}
	slog.InfoContext(ctx, "resource linked to class", "resource_id", resourceID, "class_id", classID)
	return nil
}
