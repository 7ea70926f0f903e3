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

var _ = Describe("UserService", func() {
	var (
		ctx      context.Context
		users    *mockUserStore
		classes  *mockClassStore
		txRunner *mockTxRunner
		svc      service.UserService
	)

	BeforeEach(func() {
		ctx = context.Background()
		users = &mockUserStore{}
		classes = &mockClassStore{}
		txRunner = &mockTxRunner{provider: &mockStoreProvider{users: users, classes: classes}}
		svc = service.NewUserService(users, classes, txRunner)
	})

	Describe("GetOrCreate", func() {
		It("creates a new teacher with a snowflake ID", func() {
			var captured *model.User
			users.getOrCreateFn = func(_ context.Context, u *model.User) error {
				captured = u
				return nil
			}

			user, err := svc.GetOrCreate(ctx, " 255700000001 ", stringPtr("Amina"))

			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).NotTo(BeZero())
			Expect(user.WaID).To(Equal("255700000001"))
			Expect(user.State).To(Equal(model.UserStateNew))
			Expect(user.Role).To(Equal(model.UserRoleTeacher))
			Expect(captured).To(BeIdenticalTo(user))
			Expect(txRunner.callCount).To(Equal(1))
		})

		It("returns the stored user when one exists", func() {
			users.getOrCreateFn = func(_ context.Context, u *model.User) error {
				*u = model.User{ID: 99, WaID: u.WaID, State: model.UserStateActive, Role: model.UserRoleTeacher}
				return nil
			}

			user, err := svc.GetOrCreate(ctx, "255700000001", nil)

			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(int64(99)))
			Expect(user.State).To(Equal(model.UserStateActive))
		})

		It("requires a wa_id", func() {
			_, err := svc.GetOrCreate(ctx, "  ", nil)

			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
			Expect(txRunner.callCount).To(Equal(0))
		})

		It("propagates store errors", func() {
			users.getOrCreateFn = func(_ context.Context, _ *model.User) error {
				return errors.New("database connection failed")
			}

			user, err := svc.GetOrCreate(ctx, "255700000001", nil)

			Expect(err).To(MatchError(ContainSubstring("database connection failed")))
			Expect(user).To(BeNil())
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			users.getByWaIDFn = func(_ context.Context, waID string) (*model.User, error) {
				return &model.User{ID: 1, WaID: waID, State: model.UserStateNew}, nil
			}
		})

		It("applies name and state", func() {
			active := model.UserStateActive
			var saved *model.User
			users.updateFn = func(_ context.Context, u *model.User) error {
				saved = u
				return nil
			}

			user, err := svc.Update(ctx, "255700000001", service.UpdateUserParams{Name: stringPtr("Juma"), State: &active})

			Expect(err).NotTo(HaveOccurred())
			Expect(*user.Name).To(Equal("Juma"))
			Expect(user.State).To(Equal(model.UserStateActive))
			Expect(saved).To(BeIdenticalTo(user))
		})

		It("rejects unknown states", func() {
			bogus := model.UserState("sleeping")

			_, err := svc.Update(ctx, "255700000001", service.UpdateUserParams{State: &bogus})

			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
		})

		It("returns not found for unknown users", func() {
			users.getByWaIDFn = nil

			_, err := svc.Update(ctx, "255700000009", service.UpdateUserParams{})

			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("AssignClasses", func() {
		var user *model.User

		BeforeEach(func() {
			user = &model.User{ID: 5, WaID: "255700000001"}
		})

		It("assigns the resolved classes and reloads them", func() {
			info := model.ClassInfo{"geography": {model.GradeLevelOS2}}
			subjectID := int64(3)
			var assigned []int64
			var assignedSubject *int64
			classes.idsFromClassInfoFn = func(_ context.Context, got model.ClassInfo) ([]int64, error) {
				Expect(got).To(Equal(info))
				return []int64{7}, nil
			}
			classes.assignTeacherFn = func(_ context.Context, teacherID int64, ids []int64, sid *int64) error {
				Expect(teacherID).To(Equal(int64(5)))
				assigned, assignedSubject = ids, sid
				return nil
			}
			classes.listByTeacherFn = func(_ context.Context, _ int64) ([]model.Class, error) {
				return []model.Class{{ID: 7, SubjectName: "geography", GradeLevel: model.GradeLevelOS2}}, nil
			}

			ids, err := svc.AssignClasses(ctx, user, info, &subjectID)

			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(Equal([]int64{7}))
			Expect(assigned).To(Equal([]int64{7}))
			Expect(*assignedSubject).To(Equal(int64(3)))
			Expect(user.TaughtClasses).To(HaveLen(1))
			Expect(user.FormattedClassInfo()).To(Equal("geography (Form 2)"))
		})

		It("matches subjects regardless of case", func() {
			var got model.ClassInfo
			classes.idsFromClassInfoFn = func(_ context.Context, info model.ClassInfo) ([]int64, error) {
				got = info
				return []int64{7}, nil
			}

			ids, err := svc.AssignClasses(ctx, user, model.ClassInfo{
				"Geography":  {model.GradeLevelOS2},
				" geography": {model.GradeLevelOS2, model.GradeLevelOS3},
			}, nil)

			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(Equal([]int64{7}))
			Expect(got).To(HaveLen(1))
			Expect(got).To(HaveKeyWithValue("geography", ConsistOf(model.GradeLevelOS2, model.GradeLevelOS3)))
		})

		It("returns ErrNoClasses when nothing matches", func() {
			_, err := svc.AssignClasses(ctx, user, model.ClassInfo{"astronomy": {model.GradeLevelOS1}}, nil)

			Expect(errors.Is(err, service.ErrNoClasses)).To(BeTrue())
			Expect(txRunner.callCount).To(Equal(0))
		})

		It("rejects unknown grade levels", func() {
			_, err := svc.AssignClasses(ctx, user, model.ClassInfo{"geography": {"form9"}}, nil)

			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
		})

		It("fails when the assignment fails", func() {
			classes.idsFromClassInfoFn = func(_ context.Context, _ model.ClassInfo) ([]int64, error) {
				return []int64{7}, nil
			}
			classes.assignTeacherFn = func(_ context.Context, _ int64, _ []int64, _ *int64) error {
				return errors.New("deadlock detected")
			}

			_, err := svc.AssignClasses(ctx, user, model.ClassInfo{"geography": {model.GradeLevelOS2}}, nil)

			Expect(err).To(MatchError(ContainSubstring("assigning classes: deadlock detected")))
			Expect(user.TaughtClasses).To(BeEmpty())
		})
	})
})
