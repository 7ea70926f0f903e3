package router

import (
	"github.com/gin-gonic/gin"

	"twiga.app/backend/internal/http/handler"
)

func KnowledgeRouter(router *gin.RouterGroup, handler *handler.KnowledgeHandler) {
	router.POST("/knowledge/search", handler.Search)
	router.POST("/exercises", handler.GenerateExercise)
}
