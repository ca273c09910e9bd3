package handlers

import (
	"net/http"

	"queuedesk/services/block"
	"queuedesk/utils"

	"github.com/gin-gonic/gin"
)

type BlockHandler struct {
	Service block.BlockService
}

func NewBlockHandler(svc block.BlockService) *BlockHandler {
	return &BlockHandler{Service: svc}
}

func (h *BlockHandler) QueueBlocks(c *gin.Context) {
	blocks, err := h.Service.GetQueueBlocks(c.Request.Context(), c.Param("queueId"))
	if err != nil {
		utils.RespondError(c, "failed to get queue blocks", err)
		return
	}
	c.JSON(http.StatusOK, blocks)
}

func (h *BlockHandler) QueueBlocksByDay(c *gin.Context) {
	blocks, err := h.Service.GetQueueBlocksByDay(c.Request.Context(), c.Param("queueId"))
	if err != nil {
		utils.RespondError(c, "failed to get queue blocks by day", err)
		return
	}
	c.JSON(http.StatusOK, blocks)
}

func (h *BlockHandler) CommerceBlocksByDay(c *gin.Context) {
	blocks, err := h.Service.GetCommerceBlocksByDay(c.Request.Context(), c.Param("commerceId"))
	if err != nil {
		utils.RespondError(c, "failed to get commerce blocks by day", err)
		return
	}
	c.JSON(http.StatusOK, blocks)
}

func (h *BlockHandler) SpecificCalendarBlocks(c *gin.Context) {
	blocks, err := h.Service.GetSpecificCalendarBlocks(c.Request.Context(), c.Param("commerceId"), c.Param("queueId"))
	if err != nil {
		utils.RespondError(c, "failed to get specific calendar blocks", err)
		return
	}
	c.JSON(http.StatusOK, blocks)
}
