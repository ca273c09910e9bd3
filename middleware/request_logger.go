package middleware

import (
	"time"

	"queuedesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	LoggerKey       = "logger"
	RequestIDHeader = "X-Request-ID"
)

// RequestLogger attaches a request-scoped logger to the context and logs
// each request once it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)

		logger := utils.GetLogger().With(zap.String("requestId", requestID))
		c.Set(LoggerKey, logger)

		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.String("ip", getClientIP(c)),
			zap.Duration("latency", time.Since(start)))
	}
}
