package handler_test

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"twiga.app/backend/internal/http/handler"
	"twiga.app/backend/internal/model"
	"twiga.app/backend/internal/service"
	"twiga.app/backend/internal/store"
)

var _ = Describe("UserHandler", func() {
	var (
		users  *mockUserService
		router *gin.Engine
		amina  *model.User
	)

	BeforeEach(func() {
		amina = &model.User{ID: 42, Name: stringPtr("Amina"), WaID: "255700000001", State: model.UserStateActive, Role: model.UserRoleTeacher}
		users = &mockUserService{
			getByWaIDFn: func(ctx context.Context, waID string) (*model.User, error) {
				if waID == amina.WaID {
					return amina, nil
				}
				return nil, store.ErrNotFound
			},
		}
		h := handler.NewUserHandler(users)
		router = gin.New()
		router.GET("/users/:wa_id", h.Get)
		router.PATCH("/users/:wa_id", h.Update)
		router.PUT("/users/:wa_id/classes", h.AssignClasses)
	})

	It("returns the user", func() {
		w := doRequest(router, http.MethodGet, "/users/255700000001", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		body := decode(w)
		Expect(body["id"]).To(Equal("42"))
		Expect(body["wa_id"]).To(Equal("255700000001"))
		Expect(body["classes"]).To(BeEmpty())
	})

	It("returns 404 for an unknown user", func() {
		w := doRequest(router, http.MethodGet, "/users/000", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("updates the state", func() {
		var got service.UpdateUserParams
		users.updateFn = func(ctx context.Context, waID string, params service.UpdateUserParams) (*model.User, error) {
			got = params
			amina.State = *params.State
			return amina, nil
		}

		w := doRequest(router, http.MethodPatch, "/users/255700000001", map[string]any{"state": "blocked"})

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(got.Name).To(BeNil())
		Expect(*got.State).To(Equal(model.UserStateBlocked))
		Expect(decode(w)["state"]).To(Equal("blocked"))
	})

	It("rejects an unknown state", func() {
		w := doRequest(router, http.MethodPatch, "/users/255700000001", map[string]any{"state": "sleeping"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	Describe("AssignClasses", func() {
		It("returns the assigned classes", func() {
			users.assignFn = func(ctx context.Context, user *model.User, info model.ClassInfo, subjectID *int64) ([]int64, error) {
				Expect(info).To(HaveKeyWithValue("geography", []model.GradeLevel{model.GradeLevelOS2}))
				user.TaughtClasses = []model.Class{{ID: 7, Name: "Geography Form 2"}}
				return []int64{7}, nil
			}

			w := doRequest(router, http.MethodPut, "/users/255700000001/classes", map[string]any{
				"class_info": map[string][]string{"geography": {"os2"}},
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			body := decode(w)
			Expect(body["class_ids"]).To(ConsistOf(BeNumerically("==", 7)))
			Expect(body["classes"]).To(HaveLen(1))
		})

		It("returns 422 when nothing matches", func() {
			users.assignFn = func(ctx context.Context, user *model.User, info model.ClassInfo, subjectID *int64) ([]int64, error) {
				return nil, service.ErrNoClasses
			}

			w := doRequest(router, http.MethodPut, "/users/255700000001/classes", map[string]any{
				"class_info": map[string][]string{"chemistry": {"as2"}},
			})

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("rejects an empty class_info", func() {
			w := doRequest(router, http.MethodPut, "/users/255700000001/classes", map[string]any{
				"class_info": map[string][]string{},
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
