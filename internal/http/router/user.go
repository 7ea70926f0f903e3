package router

import (
	"github.com/gin-gonic/gin"

	"twiga.app/backend/internal/http/handler"
)

func UserRouter(router *gin.RouterGroup, h *handler.UserHandler, chat *handler.ChatHandler) {
	router.GET("/:wa_id", h.Get)
	router.PATCH("/:wa_id", h.Update)
	router.PUT("/:wa_id/classes", h.AssignClasses)
	router.GET("/:wa_id/messages", chat.History)
}
