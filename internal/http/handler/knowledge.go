package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"twiga.app/backend/internal/http/dto"
	"twiga.app/backend/internal/model"
	"twiga.app/backend/internal/service"
)

const defaultSearchResults = 7

type KnowledgeHandler struct {
	knowledgeService service.KnowledgeService
}

func NewKnowledgeHandler(knowledgeService service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{knowledgeService: knowledgeService}
}

func (h *KnowledgeHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.NResults == 0 {
		req.NResults = defaultSearchResults
	}

	chunks, err := h.knowledgeService.Search(c.Request.Context(), req.ClassID, req.Query, req.NResults)
	if err != nil {
		respondError(c, err, "search knowledge")
		return
	}
	if chunks == nil {
		chunks = []model.Chunk{}
	}

	c.JSON(http.StatusOK, dto.SearchResponse{Results: chunks})
}

func (h *KnowledgeHandler) GenerateExercise(c *gin.Context) {
	var req dto.ExerciseRequest
	if !bindJSON(c, &req) {
		return
	}

	exercise, err := h.knowledgeService.GenerateExercise(c.Request.Context(), req.ClassID, req.Subject, req.Query)
	if err != nil {
		respondError(c, err, "generate exercise")
		return
	}

	c.JSON(http.StatusOK, dto.ExerciseResponse{Exercise: exercise})
}
