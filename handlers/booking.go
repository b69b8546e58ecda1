package handlers

import (
	"net/http"

	bookingRepo "glimra/database/repository/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves submitted bookings.
type BookingHandler struct {
	Bookings bookingRepo.BookingRepository
	Logger   *zap.Logger
}

func NewBookingHandler(repo bookingRepo.BookingRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Bookings: repo, Logger: logger}
}

// ListBookings handles GET /api/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListUserBookings(c.GetString("userID"))
	if err != nil {
		h.Logger.Error("failed to list bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/:bookingID.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.Bookings.GetBookingByID(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	if booking.UserID != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelBooking handles POST /api/bookings/:bookingID/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	booking, err := h.Bookings.GetBookingByID(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	if booking.UserID != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
		return
	}
	if err := h.Bookings.CancelBooking(booking.ID); err != nil {
		h.Logger.Error("failed to cancel booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
