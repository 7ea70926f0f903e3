package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"twiga.app/backend/internal/model"
	"twiga.app/backend/internal/service"
	"twiga.app/backend/internal/store"
)

var _ = Describe("CatalogService", func() {
	var (
		ctx       context.Context
		subjects  *mockSubjectStore
		classes   *mockClassStore
		resources *mockResourceStore
		svc       service.CatalogService
	)

	BeforeEach(func() {
		ctx = context.Background()
		subjects = &mockSubjectStore{}
		classes = &mockClassStore{}
		resources = &mockResourceStore{}
		svc = service.NewCatalogService(subjects, classes, resources)
	})

	Describe("CreateSubject", func() {
		It("normalises the name and defaults the status", func() {
			subject := &model.Subject{Name: "  Geography "}

			err := svc.CreateSubject(ctx, subject)

			Expect(err).NotTo(HaveOccurred())
			Expect(subject.Name).To(Equal("geography"))
			Expect(subject.Status).To(Equal(model.ClassStatusActive))
		})

		It("requires a name", func() {
			err := svc.CreateSubject(ctx, &model.Subject{})

			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
		})
	})

	Describe("CreateClass", func() {
		BeforeEach(func() {
			subjects.getByIDFn = func(_ context.Context, id int64) (*model.Subject, error) {
				return &model.Subject{ID: id, Name: "geography"}, nil
			}
		})

		It("derives a name from subject and grade", func() {
			var created *model.Class
			classes.createFn = func(_ context.Context, c *model.Class) error {
				c.ID = 7
				created = c
				return nil
			}
			class := &model.Class{SubjectID: 1, GradeLevel: model.GradeLevelOS2}

			err := svc.CreateClass(ctx, class)

			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeIdenticalTo(class))
			Expect(class.Name).To(Equal("geography Form 2"))
			Expect(class.Status).To(Equal(model.ClassStatusActive))
			Expect(class.SubjectName).To(Equal("geography"))
		})

		It("rejects unknown grade levels", func() {
			err := svc.CreateClass(ctx, &model.Class{SubjectID: 1, GradeLevel: "form7"})

			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
		})

		It("reports a missing subject", func() {
			subjects.getByIDFn = nil

			err := svc.CreateClass(ctx, &model.Class{SubjectID: 1, GradeLevel: model.GradeLevelOS1})

			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("CreateResource", func() {
		It("rejects unknown grade levels", func() {
			err := svc.CreateResource(ctx, &model.Resource{Name: "Atlas", GradeLevels: []string{"os1", "grade9"}})

			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
		})

		It("defaults the type to textbook", func() {
			resource := &model.Resource{Name: "Geography Form 2"}

			Expect(svc.CreateResource(ctx, resource)).To(Succeed())
			Expect(resource.Type).To(Equal("textbook"))
		})
	})

	Describe("ListResources", func() {
		It("returns every resource", func() {
			resources.listFn = func(_ context.Context) ([]model.Resource, error) {
				return []model.Resource{{ID: 1, Name: "Geography Form 2"}, {ID: 2, Name: "Geography Form 3"}}, nil
			}

			list, err := svc.ListResources(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
		})

		It("wraps store failures", func() {
			resources.listFn = func(_ context.Context) ([]model.Resource, error) {
				return nil, errors.New("conn closed")
			}

			_, err := svc.ListResources(ctx)

			Expect(err).To(MatchError("listing resources: conn closed"))
		})
	})

	Describe("LinkResource", func() {
		It("links an existing resource", func() {
			resources.getByIDFn = func(_ context.Context, id int64) (*model.Resource, error) {
				return &model.Resource{ID: id}, nil
			}
			var gotClass, gotResource int64
			resources.linkClassFn = func(_ context.Context, classID, resourceID int64) error {
				gotClass, gotResource = classID, resourceID
				return nil
			}

			Expect(svc.LinkResource(ctx, 3, 7)).To(Succeed())
			Expect(gotClass).To(Equal(int64(7)))
			Expect(gotResource).To(Equal(int64(3)))
		})

		It("reports a missing resource", func() {
			err := svc.LinkResource(ctx, 3, 7)

			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
		})
	})
})
