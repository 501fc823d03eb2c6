package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marzgate/marzgate/internal/shared/constants"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

func RequestLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
			"body_size", c.Writer.Size(),
		}

		if actorID, exists := c.Get(constants.ContextKeyActorID); exists {
			args = append(args, "actor_id", actorID)
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Errorw("HTTP request completed with server error", args...)
		case status >= 400:
			log.Warnw("HTTP request completed with client error", args...)
		default:
			log.Debugw("HTTP request completed", args...)
		}
	}
}
