package handlers

import (
	"net/http"
	"strconv"
	"time"

	"queuedesk/models"
	"queuedesk/services/attention"
	"queuedesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AttentionHandler struct {
	Service attention.AttentionService
}

func NewAttentionHandler(svc attention.AttentionService) *AttentionHandler {
	return &AttentionHandler{Service: svc}
}

type queueActionRequest struct {
	CollaboratorID   string `json:"collaboratorId"`
	CommerceLanguage string `json:"commerceLanguage"`
}

type finishRequest struct {
	Comment string     `json:"comment"`
	Date    *time.Time `json:"date"`
}

type transferRequest struct {
	QueueID string `json:"queueId" binding:"required"`
}

type noDeviceRequest struct {
	AssistingCollaboratorID string `json:"assistingCollaboratorId"`
	Name                    string `json:"name"`
}

type dateRequest struct {
	Date string `json:"date"`
}

// CreateAttention handles POST /api/attention.
func (h *AttentionHandler) CreateAttention(c *gin.Context) {
	var in attention.CreateAttentionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}
	a, err := h.Service.CreateAttention(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, "failed to create attention", err)
		return
	}
	getLogger(c).Info("attention created", zap.String("attentionId", a.ID), zap.Int("number", a.Number))
	c.JSON(http.StatusCreated, a)
}

func (h *AttentionHandler) GetAttention(c *gin.Context) {
	a, err := h.Service.GetAttentionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "failed to get attention", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AttentionHandler) GetAttentionDetails(c *gin.Context) {
	d, err := h.Service.GetAttentionDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "failed to get attention details", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// queueAction parses the number and body shared by attend, skip and
// reactivate.
func queueAction(c *gin.Context) (int, queueActionRequest, bool) {
	var req queueActionRequest
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		badInput(c, err)
		return 0, req, false
	}
	if err := bindOptional(c, &req); err != nil {
		badInput(c, err)
		return 0, req, false
	}
	return number, req, true
}

func (h *AttentionHandler) Attend(c *gin.Context) {
	number, req, ok := queueAction(c)
	if !ok {
		return
	}
	a, err := h.Service.Attend(c.Request.Context(), actor(c), number, c.Param("queueId"), req.CollaboratorID, req.CommerceLanguage)
	if err != nil {
		utils.RespondError(c, "failed to attend", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AttentionHandler) Skip(c *gin.Context) {
	number, req, ok := queueAction(c)
	if !ok {
		return
	}
	a, err := h.Service.Skip(c.Request.Context(), actor(c), number, c.Param("queueId"), req.CollaboratorID)
	if err != nil {
		utils.RespondError(c, "failed to skip", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AttentionHandler) Reactivate(c *gin.Context) {
	number, req, ok := queueAction(c)
	if !ok {
		return
	}
	a, err := h.Service.Reactivate(c.Request.Context(), actor(c), number, c.Param("queueId"), req.CollaboratorID)
	if err != nil {
		utils.RespondError(c, "failed to reactivate", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AttentionHandler) Finish(c *gin.Context) {
	var req finishRequest
	if err := bindOptional(c, &req); err != nil {
		badInput(c, err)
		return
	}
	a, err := h.Service.FinishAttention(c.Request.Context(), actor(c), c.Param("id"), req.Comment, req.Date)
	if err != nil {
		utils.RespondError(c, "failed to finish attention", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AttentionHandler) Cancel(c *gin.Context) {
	a, err := h.Service.CancelAttention(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "failed to cancel attention", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AttentionHandler) PaymentConfirm(c *gin.Context) {
	var data models.PaymentConfirmation
	if err := c.ShouldBindJSON(&data); err != nil {
		badInput(c, err)
		return
	}
	a, err := h.Service.AttentionPaymentConfirm(c.Request.Context(), actor(c), c.Param("id"), &data)
	if err != nil {
		utils.RespondError(c, "failed to confirm attention payment", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AttentionHandler) Transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	a, err := h.Service.TransferAttentionToQueue(c.Request.Context(), actor(c), c.Param("id"), req.QueueID)
	if err != nil {
		utils.RespondError(c, "failed to transfer attention", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AttentionHandler) SetNoDevice(c *gin.Context) {
	var req noDeviceRequest
	if err := bindOptional(c, &req); err != nil {
		badInput(c, err)
		return
	}
	a, err := h.Service.SetNoDevice(c.Request.Context(), actor(c), c.Param("id"), req.AssistingCollaboratorID, req.Name)
	if err != nil {
		utils.RespondError(c, "failed to set no device", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AttentionHandler) SaveNotificationData(c *gin.Context) {
	var contact attention.ContactData
	if err := c.ShouldBindJSON(&contact); err != nil {
		badInput(c, err)
		return
	}
	a, err := h.Service.SaveDataNotification(c.Request.Context(), actor(c), c.Param("id"), contact)
	if err != nil {
		utils.RespondError(c, "failed to save notification data", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AttentionHandler) CancelAll(c *gin.Context) {
	result, err := h.Service.CancelAttentions(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "failed to cancel attentions", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AttentionHandler) SurveyPostAttention(c *gin.Context) {
	var req dateRequest
	if err := bindOptional(c, &req); err != nil {
		badInput(c, err)
		return
	}
	result, err := h.Service.SurveyPostAttention(c.Request.Context(), req.Date)
	if err != nil {
		utils.RespondError(c, "failed to send surveys", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
