package handler_test

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"twiga.app/backend/internal/http/handler"
	"twiga.app/backend/internal/model"
	"twiga.app/backend/internal/service"
	"twiga.app/backend/internal/store"
)

var _ = Describe("CatalogHandler", func() {
	var (
		catalog   *mockCatalogService
		knowledge *mockKnowledgeService
		router    *gin.Engine
	)

	BeforeEach(func() {
		catalog = &mockCatalogService{}
		knowledge = &mockKnowledgeService{}
		h := handler.NewCatalogHandler(catalog, knowledge)
		router = gin.New()
		router.POST("/subjects", h.CreateSubject)
		router.GET("/subjects", h.ListSubjects)
		router.POST("/classes", h.CreateClass)
		router.GET("/classes", h.ListClasses)
		router.POST("/resources", h.CreateResource)
		router.GET("/resources", h.ListResources)
		router.GET("/resources/:id", h.GetResource)
		router.POST("/resources/:id/classes", h.LinkClass)
		router.POST("/resources/:id/chunks", h.CreateChunk)
	})

	It("creates a subject", func() {
		catalog.createSubjectFn = func(ctx context.Context, subject *model.Subject) error {
			subject.ID = 1
			subject.Status = model.ClassStatusActive
			return nil
		}

		w := doRequest(router, http.MethodPost, "/subjects", map[string]any{"name": "Geography"})

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(decode(w)["status"]).To(Equal("active"))
	})

	It("returns 409 for a duplicate subject", func() {
		catalog.createSubjectFn = func(ctx context.Context, subject *model.Subject) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "subjects_name_key"}
		}

		w := doRequest(router, http.MethodPost, "/subjects", map[string]any{"name": "geography"})
		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("lists subjects as an empty array", func() {
		catalog.listSubjectsFn = func(ctx context.Context) ([]model.Subject, error) {
			return nil, nil
		}

		w := doRequest(router, http.MethodGet, "/subjects", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"subjects":[]}`))
	})

	It("rejects an unknown grade level", func() {
		w := doRequest(router, http.MethodPost, "/classes", map[string]any{"subject_id": 1, "grade_level": "os9"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("maps service validation errors to 400", func() {
		catalog.createResourceFn = func(ctx context.Context, resource *model.Resource) error {
			return service.ErrInvalidInput
		}

		w := doRequest(router, http.MethodPost, "/resources", map[string]any{"name": "Geography Form 2", "grade_levels": []string{"x"}})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("lists resources", func() {
		catalog.listResourcesFn = func(ctx context.Context) ([]model.Resource, error) {
			return []model.Resource{{ID: 4, Name: "Geography Form 2", Type: "textbook"}}, nil
		}

		w := doRequest(router, http.MethodGet, "/resources", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		resources, ok := decode(w)["resources"].([]any)
		Expect(ok).To(BeTrue())
		Expect(resources).To(HaveLen(1))
		Expect(resources[0]).To(HaveKeyWithValue("name", "Geography Form 2"))
	})

	It("lists no resources as an empty array", func() {
		catalog.listResourcesFn = func(ctx context.Context) ([]model.Resource, error) {
			return nil, nil
		}

		w := doRequest(router, http.MethodGet, "/resources", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"resources":[]}`))
	})

	It("returns 404 for a missing resource", func() {
		catalog.getResourceFn = func(ctx context.Context, id int64) (*model.Resource, error) {
			Expect(id).To(Equal(int64(3)))
			return nil, store.ErrNotFound
		}

		w := doRequest(router, http.MethodGet, "/resources/3", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("rejects a non-numeric resource id", func() {
		w := doRequest(router, http.MethodGet, "/resources/abc", nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("links a resource to a class", func() {
		var gotResource, gotClass int64
		catalog.linkFn = func(ctx context.Context, resourceID, classID int64) error {
			gotResource, gotClass = resourceID, classID
			return nil
		}

		w := doRequest(router, http.MethodPost, "/resources/3/classes", map[string]any{"class_id": 7})

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(gotResource).To(Equal(int64(3)))
		Expect(gotClass).To(Equal(int64(7)))
	})

	It("ingests a chunk for the resource in the path", func() {
		var got *model.Chunk
		knowledge.ingestFn = func(ctx context.Context, chunk *model.Chunk) error {
			got = chunk
			chunk.ID = 99
			return nil
		}

		w := doRequest(router, http.MethodPost, "/resources/3/chunks", map[string]any{
			"content":                 "Weathering is the breakdown of rocks.",
			"top_level_section_title": "Weathering",
		})

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(got.ResourceID).To(Equal(int64(3)))
		Expect(*got.TopLevelSectionTitle).To(Equal("Weathering"))
		Expect(decode(w)["id"]).To(BeNumerically("==", 99))
	})
})
