package store

import (
	"context"
	"log/slog"
	"sort"

	"github.com/samber/lo"

	"twiga.app/backend/core/db/sqlc"
	"twiga.app/backend/internal/model"
)

type classStore struct {
	queries *sqlc.Queries
}

func newClassStore(queries *sqlc.Queries) ClassStore {
	return &classStore{queries: queries}
}

func (s *classStore) Create(ctx context.Context, class *model.Class) error {
	row, err := s.queries.CreateClass(ctx, sqlc.CreateClassParams{
		SubjectID:  class.SubjectID,
		GradeLevel: string(class.GradeLevel),
		Name:       class.Name,
		Status:     string(class.Status),
	})
	if err != nil {
		return err
	}
	class.ID = row.ID
	class.CreatedAt = row.CreatedAt.Time
	return nil
}

func (s *classStore) List(ctx context.Context) ([]model.Class, error) {
	rows, err := s.queries.ListClassesWithSubject(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(r sqlc.ListClassesWithSubjectRow, _ int) model.Class {
		return model.Class{
			ID:          r.ID,
			SubjectID:   r.SubjectID,
			SubjectName: r.SubjectName,
			GradeLevel:  model.GradeLevel(r.GradeLevel),
			Name:        r.Name,
			Status:      model.ClassStatus(r.Status),
		}
	}), nil
}

func (s *classStore) ListByTeacher(ctx context.Context, teacherID int64) ([]model.Class, error) {
	rows, err := s.queries.ListClassesByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(r sqlc.ListClassesByTeacherRow, _ int) model.Class {
		return model.Class{
			ID:          r.ID,
			SubjectID:   r.SubjectID,
			SubjectName: r.SubjectName,
			GradeLevel:  model.GradeLevel(r.GradeLevel),
			Name:        r.Name,
			Status:      model.ClassStatus(r.Status),
		}
	}), nil
}

func (s *classStore) IDsFromClassInfo(ctx context.Context, info model.ClassInfo) ([]int64, error) {
	// Flatten to parallel arrays so the query can unnest them into pairs.
	subjects := lo.Keys(info)
	sort.Strings(subjects)

	var names, grades []string
	for _, subject := range subjects {
		for _, g := range info[subject] {
			names = append(names, subject)
			grades = append(grades, string(g))
		}
	}
	if len(names) == 0 {
		return nil, ErrNotFound
	}

	ids, err := s.queries.ListActiveClassIDsBySubjectGrade(ctx, sqlc.ListActiveClassIDsBySubjectGradeParams{
		SubjectNames: names,
		GradeLevels:  grades,
	})
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		slog.InfoContext(ctx, "no classes found for class info", "class_info", info)
		return nil, ErrNotFound
	}
	return ids, nil
}

func (s *classStore) AssignTeacher(ctx context.Context, teacherID int64, classIDs []int64, subjectID *int64) error {
	var err error
	if subjectID != nil {
		err = s.queries.DeleteTeacherClassesBySubject(ctx, sqlc.DeleteTeacherClassesBySubjectParams{
			TeacherID: teacherID,
			SubjectID: *subjectID,
		})
	} else {
		err = s.queries.DeleteTeacherClasses(ctx, teacherID)
	}
	if err != nil {
		return err
	}

	if len(classIDs) == 0 {
		slog.InfoContext(ctx, "no classes to assign for teacher", "teacher_id", teacherID)
		return nil
	}

	return s.queries.InsertTeacherClasses(ctx, sqlc.InsertTeacherClassesParams{
		TeacherID: teacherID,
		ClassIds:  lo.Uniq(classIDs),
	})
}
