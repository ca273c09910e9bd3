package handlers

import (
	"net/http"

	"queuedesk/models"
	"queuedesk/services/booking"
	"queuedesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

type editBookingRequest struct {
	Date  string        `json:"date"`
	Block *models.Block `json:"block"`
}

type pastBookingRequest struct {
	CollaboratorID   string `json:"collaboratorId"`
	CommerceLanguage string `json:"commerceLanguage"`
}

type confirmNotifyRequest struct {
	DaysBefore int `json:"daysBefore"`
}

// CreateBooking handles POST /api/booking.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var in booking.CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}
	b, err := h.Service.CreateBooking(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, "failed to create booking", err)
		return
	}
	getLogger(c).Info("booking created", zap.String("bookingId", b.ID), zap.String("date", b.Date))
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.GetBookingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "failed to get booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) GetBookingDetails(c *gin.Context) {
	d, err := h.Service.GetBookingDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "failed to get booking details", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// GetPendingByQueue serves both a single day (?date=) and a range
// (?from=&to=).
func (h *BookingHandler) GetPendingByQueue(c *gin.Context) {
	var (
		bookings []models.Booking
		err      error
	)
	queueID := c.Param("queueId")
	if date := c.Query("date"); date != "" {
		bookings, err = h.Service.GetPendingBookingsByQueueAndDate(c.Request.Context(), queueID, date)
	} else {
		bookings, err = h.Service.GetPendingBookingsBetweenDates(c.Request.Context(), queueID, c.Query("from"), c.Query("to"))
	}
	if err != nil {
		utils.RespondError(c, "failed to get pending bookings", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetPendingByClient(c *gin.Context) {
	bookings, err := h.Service.GetPendingBookingsByClient(c.Request.Context(), c.Param("commerceId"), c.Query("idNumber"), c.Param("clientId"))
	if err != nil {
		utils.RespondError(c, "failed to get client bookings", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	b, err := h.Service.CancelBooking(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "failed to cancel booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	var data *models.PaymentConfirmation
	if c.Request.ContentLength > 0 {
		data = &models.PaymentConfirmation{}
		if err := c.ShouldBindJSON(data); err != nil {
			badInput(c, err)
			return
		}
	}
	b, err := h.Service.ConfirmBooking(c.Request.Context(), actor(c), c.Param("id"), data)
	if err != nil {
		utils.RespondError(c, "failed to confirm booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	b, err := h.Service.TransferBookingToQueue(c.Request.Context(), actor(c), c.Param("id"), req.QueueID)
	if err != nil {
		utils.RespondError(c, "failed to transfer booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Edit(c *gin.Context) {
	var req editBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	b, err := h.Service.EditBookingDateAndBlock(c.Request.Context(), actor(c), c.Param("id"), req.Date, req.Block)
	if err != nil {
		utils.RespondError(c, "failed to edit booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Process(c *gin.Context) {
	var req dateRequest
	if err := bindOptional(c, &req); err != nil {
		badInput(c, err)
		return
	}
	result, err := h.Service.ProcessBookings(c.Request.Context(), req.Date)
	if err != nil {
		utils.RespondError(c, "failed to process bookings", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) ProcessByID(c *gin.Context) {
	result, err := h.Service.ProcessBookingByID(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "failed to process booking", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) ProcessPast(c *gin.Context) {
	var req pastBookingRequest
	if err := bindOptional(c, &req); err != nil {
		badInput(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Service.ProcessPastBooking(c.Request.Context(), c.Param("id"), req.CollaboratorID, req.CommerceLanguage))
}

func (h *BookingHandler) ConfirmNotify(c *gin.Context) {
	req := confirmNotifyRequest{DaysBefore: 1}
	if err := bindOptional(c, &req); err != nil {
		badInput(c, err)
		return
	}
	result, err := h.Service.ConfirmNotifyBookings(c.Request.Context(), req.DaysBefore)
	if err != nil {
		utils.RespondError(c, "failed to notify bookings", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) CancelPast(c *gin.Context) {
	result, err := h.Service.CancelBookings(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "failed to cancel past bookings", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
