package router

import (
	"github.com/gin-gonic/gin"

	"twiga.app/backend/internal/http/handler"
)

func ChatRouter(router *gin.RouterGroup, handler *handler.ChatHandler) {
	router.POST("/chat", handler.Chat)
	router.POST("/messages", handler.Enqueue)
}
