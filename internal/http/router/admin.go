package router

import (
	"github.com/gin-gonic/gin"

	"twiga.app/backend/internal/http/handler"
)

// AdminRouter sets up content-management routes. The caller attaches the
// admin key middleware to the group.
func AdminRouter(router *gin.RouterGroup, h *handler.CatalogHandler) {
	router.GET("/subjects", h.ListSubjects)
	router.POST("/subjects", h.CreateSubject)

	router.GET("/classes", h.ListClasses)
	router.POST("/classes", h.CreateClass)

	resources := router.Group("/resources")
	{
		resources.POST("", h.CreateResource)
		resources.GET("", h.ListResources)
		resources.GET("/:id", h.GetResource)
		resources.POST("/:id/classes", h.LinkClass)
		resources.POST("/:id/chunks", h.CreateChunk)
	}
}
