package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"twiga.app/backend/internal/http/dto"
	"twiga.app/backend/internal/model"
	"twiga.app/backend/internal/service"
)

// CatalogHandler serves the content-management API: subjects, classes,
// resources and their chunks.
type CatalogHandler struct {
	catalogService   service.CatalogService
	knowledgeService service.KnowledgeService
}

func NewCatalogHandler(catalogService service.CatalogService, knowledgeService service.KnowledgeService) *CatalogHandler {
	return &CatalogHandler{
		catalogService:   catalogService,
		knowledgeService: knowledgeService,
	}
}

func (h *CatalogHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if !bindJSON(c, &req) {
		return
	}

	subject := &model.Subject{Name: req.Name, Status: req.Status}
	if err := h.catalogService.CreateSubject(c.Request.Context(), subject); err != nil {
		respondError(c, err, "create subject")
		return
	}
	c.JSON(http.StatusCreated, subject)
}

func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.catalogService.ListSubjects(c.Request.Context())
	if err != nil {
		respondError(c, err, "list subjects")
		return
	}
	if subjects == nil {
		subjects = []model.Subject{}
	}
	c.JSON(http.StatusOK, dto.SubjectsResponse{Subjects: subjects})
}

func (h *CatalogHandler) CreateClass(c *gin.Context) {
	var req dto.CreateClassRequest
	if !bindJSON(c, &req) {
		return
	}

	class := &model.Class{
		SubjectID:  req.SubjectID,
		GradeLevel: req.GradeLevel,
		Name:       req.Name,
		Status:     req.Status,
	}
	if err := h.catalogService.CreateClass(c.Request.Context(), class); err != nil {
		respondError(c, err, "create class")
		return
	}
	c.JSON(http.StatusCreated, class)
}

func (h *CatalogHandler) ListClasses(c *gin.Context) {
	classes, err := h.catalogService.ListClasses(c.Request.Context())
	if err != nil {
		respondError(c, err, "list classes")
		return
	}
	if classes == nil {
		classes = []model.Class{}
	}
	c.JSON(http.StatusOK, dto.ClassesResponse{Classes: classes})
}

func (h *CatalogHandler) CreateResource(c *gin.Context) {
	var req dto.CreateResourceRequest
	if !bindJSON(c, &req) {
		return
	}

	resource := &model.Resource{
		Name:        req.Name,
		Type:        req.Type,
		Authors:     req.Authors,
		GradeLevels: req.GradeLevels,
		Subjects:    req.Subjects,
	}
	if err := h.catalogService.CreateResource(c.Request.Context(), resource); err != nil {
		respondError(c, err, "create resource")
		return
	}
	c.JSON(http.StatusCreated, resource)
}

func (h *CatalogHandler) GetResource(c *gin.Context) {
	resourceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resource, err := h.catalogService.GetResource(c.Request.Context(), resourceID)
	if err != nil {
		respondError(c, err, "get resource")
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (h *CatalogHandler) ListResources(c *gin.Context) {
	resources, err := h.catalogService.ListResources(c.Request.Context())
	if err != nil {
		respondError(c, err, "list resources")
		return
	}
	if resources == nil {
		resources = []model.Resource{}
	}
	c.JSON(http.StatusOK, dto.ResourcesResponse{Resources: resources})
}

func (h *CatalogHandler) LinkClass(c *gin.Context) {
	resourceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.LinkClassRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.catalogService.LinkResource(c.Request.Context(), resourceID, req.ClassID); err != nil {
		respondError(c, err, "link resource")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateChunk embeds and stores one fragment of a resource.
func (h *CatalogHandler) CreateChunk(c *gin.Context) {
	resourceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateChunkRequest
	if !bindJSON(c, &req) {
		return
	}

	chunk := &model.Chunk{
		ResourceID:           resourceID,
		Content:              req.Content,
		ChunkType:            req.ChunkType,
		TopLevelSectionIndex: req.TopLevelSectionIndex,
		TopLevelSectionTitle: req.TopLevelSectionTitle,
	}
	if err := h.knowledgeService.IngestChunk(c.Request.Context(), chunk); err != nil {
		respondError(c, err, "create chunk")
		return
	}
	c.JSON(http.StatusCreated, chunk)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}
