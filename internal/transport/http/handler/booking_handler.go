package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homeserve/internal/apperr"
	"homeserve/internal/domain"
	"homeserve/internal/service"
	resp "homeserve/internal/transport/http/response"
)

type BookingHandler struct {
	bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

func (h *BookingHandler) Mount(_, authed *gin.RouterGroup) {
	authed.GET("/bookings", h.list)
	authed.POST("/bookings", h.create)
	authed.PATCH("/bookings/:id/status", h.updateStatus)
	authed.DELETE("/bookings/:id", h.cancel)
}

func (h *BookingHandler) list(c *gin.Context) {
	bs, err := h.bookings.List(callerFrom(c))
	if err != nil {
		resp.Err(c, err)
		return
	}
	if bs == nil {
		bs = []domain.Booking{}
	}
	c.JSON(http.StatusOK, bs)
}

func (h *BookingHandler) create(c *gin.Context) {
	var in service.CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, apperr.Validation(err.Error()))
		return
	}
	b, err := h.bookings.Create(callerFrom(c), in)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

type statusInput struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	var in statusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, apperr.Validation(err.Error()))
		return
	}
	b, err := h.bookings.UpdateStatus(callerFrom(c), c.Param("id"), in.Status)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// cancel keeps the row and flips the status; DELETE is the verb the
// client speaks, not what happens to the record.
func (h *BookingHandler) cancel(c *gin.Context) {
	b, err := h.bookings.Cancel(callerFrom(c), c.Param("id"))
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
