package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"twiga.app/backend/internal/brain"
	"twiga.app/backend/internal/service"
	"twiga.app/backend/internal/store"
)

// respondError maps service errors onto HTTP statuses. action completes
// "failed to ..." in the 500 message.
func respondError(c *gin.Context, err error, action string) {
	ctx := c.Request.Context()

	var pgErr *pgconn.PgError
	isPg := errors.As(err, &pgErr)

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case isPg && pgErr.Code == "23505":
		slog.InfoContext(ctx, "unique violation", "constraint", pgErr.ConstraintName)
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case isPg && pgErr.Code == "23503":
		c.JSON(http.StatusNotFound, gin.H{"error": "referenced record not found"})
	case errors.Is(err, service.ErrUserBlocked):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoClasses), errors.Is(err, brain.ErrNoResources):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAgentFailed):
		slog.ErrorContext(ctx, "llm request failed", "error", err, "action", action)
		c.JSON(http.StatusBadGateway, gin.H{"error": "language model request failed"})
	default:
		slog.ErrorContext(ctx, "request failed", "error", err, "action", action)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action})
	}
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		slog.WarnContext(c.Request.Context(), "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
