package handlers

import (
	"net/http"

	"queuedesk/middleware"
	"queuedesk/services/attention"
	"queuedesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request logger from the Gin context or falls back
// to the process logger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(middleware.LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// actor is the operator behind the request, the system user for anonymous
// visitors.
func actor(c *gin.Context) string {
	if id := c.GetString(middleware.UserIDKey); id != "" {
		return id
	}
	return attention.SystemUser
}

// bindOptional decodes a JSON body when one was sent.
func bindOptional(c *gin.Context, v interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(v)
}

func badInput(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
}
