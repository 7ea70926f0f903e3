package middleware

import (
	"github.com/gin-gonic/gin"

	"twiga.app/backend/common/logger"
)

// TraceHeader echoes the request's trace ID in the named response header
// so clients can quote it when reporting problems.
func TraceHeader(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if name != "" {
			if traceID := logger.TraceIDFromContext(c.Request.Context()); traceID != "" {
				c.Header(name, traceID)
			}
		}
		c.Next()
	}
}
