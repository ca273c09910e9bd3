package handlers

import (
	"net/http"

	"queuedesk/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Status func() utils.HealthStatus
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{Status: utils.GetHealthStatus}
}

// Health reports the last backing-service snapshot, 503 when one is down.
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.Status()
	code := http.StatusOK
	if !status.Mongo || !status.Redis {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
