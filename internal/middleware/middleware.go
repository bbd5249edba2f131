package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostel/internal/pkg/logger"
)

// LoggerMiddleware logs every request with its status and duration
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		event := logger.Info()
		if c.Writer.Status() >= 500 {
			event = logger.Error()
		} else if c.Writer.Status() >= 400 {
			event = logger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("clientIP", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	}
}
