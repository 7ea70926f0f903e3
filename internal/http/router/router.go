package router

import (
	"github.com/gin-gonic/gin"

	"twiga.app/backend/internal/http/handler"
	"twiga.app/backend/internal/http/middleware"
	"twiga.app/backend/internal/service"
)

type RouterConfig struct {
	AdminAPIKey     string
	TraceHeaderName string
	DB              handler.Pinger
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	healthHandler := handler.NewHealthHandler(cfg.DB)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	v1 := router.Group("/api/v1")
	if cfg.TraceHeaderName != "" {
		v1.Use(middleware.TraceHeader(cfg.TraceHeaderName))
	}
	{
		chatHandler := handler.NewChatHandler(services.Chat())
		ChatRouter(v1, chatHandler)

		userHandler := handler.NewUserHandler(services.Users())
		UserRouter(v1.Group("/users"), userHandler, chatHandler)

		knowledgeHandler := handler.NewKnowledgeHandler(services.Knowledge())
		KnowledgeRouter(v1, knowledgeHandler)

		catalogHandler := handler.NewCatalogHandler(services.Catalog(), services.Knowledge())
		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAdminKey(cfg.AdminAPIKey))
		AdminRouter(admin, catalogHandler)
	}
}
