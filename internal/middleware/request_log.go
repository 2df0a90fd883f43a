package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mindease/mindease-backend/internal/logger"
)

// RequestLog emits one structured line per request. Health checks are
// skipped, they only add noise.
func RequestLog(log *logger.Logger) gin.HandlerFunc {
	reqLog := log.With("middleware", "request_log")
	return func(c *gin.Context) {
		if c.FullPath() == "/healthcheck" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		reqLog.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
