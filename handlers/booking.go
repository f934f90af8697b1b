package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"quikka/models"
	bookingSvc "quikka/services/booking"
	stylistSvc "quikka/services/stylist"
	"quikka/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Engine   *bookingSvc.DefaultBookingEngine
	Stylists stylistSvc.StylistService
}

// ListSlotsHandler handles GET /api/bookings/slots.
// Query: provider_id, date (YYYY-MM-DD), and either duration (minutes) or
// service_id to derive the duration from the stylist's offering.
func (h *BookingHandler) ListSlotsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	providerID := c.Query("provider_id")
	date := c.Query("date")

	duration, err := h.resolveDuration(c, providerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slots, err := h.Engine.ListAvailableSlots(c.Request.Context(), providerID, date, duration)
	if err != nil {
		logger.Warn("Slot query failed",
			zap.String("provider_id", providerID), zap.String("date", date), zap.Error(err))
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"provider_id": providerID,
		"date":        date,
		"duration":    duration,
		"slots":       slots,
	})
}

type createBookingInput struct {
	ProviderID  string `json:"provider_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ServiceID   string `json:"service_id"`
	Date        string `json:"date" binding:"required"`
	Start       string `json:"start" binding:"required"` // "HH:MM"
	Duration    int    `json:"duration"`                 // minutes; optional when service_id is set
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var input createBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	start, err := utils.ParseClock(input.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be in HH:MM format"})
		return
	}
	duration := input.Duration
	if duration <= 0 && input.ServiceID != "" {
		duration, err = h.serviceDuration(c, input.ProviderID, input.ServiceID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	booking, err := h.Engine.CreateBooking(c.Request.Context(), bookingSvc.CreateBookingRequest{
		ProviderID:  input.ProviderID,
		ClientName:  input.ClientName,
		ClientPhone: input.ClientPhone,
		ServiceID:   input.ServiceID,
		Date:        input.Date,
		Start:       start,
		Duration:    duration,
	})
	if err != nil {
		logger.Warn("Booking creation failed",
			zap.String("provider_id", input.ProviderID), zap.String("date", input.Date), zap.Error(err))
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	booking, err := h.Engine.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ConfirmBookingHandler handles POST /api/bookings/:id/confirm.
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	h.applyTransition(c, h.Engine.Confirm)
}

// CancelBookingHandler handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	h.applyTransition(c, h.Engine.Cancel)
}

// CompleteBookingHandler handles POST /api/bookings/:id/complete.
func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	h.applyTransition(c, h.Engine.Complete)
}

// NoShowBookingHandler handles POST /api/bookings/:id/no-show.
func (h *BookingHandler) NoShowBookingHandler(c *gin.Context) {
	h.applyTransition(c, h.Engine.MarkNoShow)
}

type rescheduleInput struct {
	Date        string `json:"date" binding:"required"`
	Start       string `json:"start" binding:"required"` // "HH:MM"
	Reason      string `json:"reason"`
	RequestedBy string `json:"requested_by"`
}

// RequestRescheduleHandler handles POST /api/bookings/:id/reschedule.
func (h *BookingHandler) RequestRescheduleHandler(c *gin.Context) {
	var input rescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	start, err := utils.ParseClock(input.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be in HH:MM format"})
		return
	}
	booking, err := h.Engine.RequestReschedule(c.Request.Context(), c.Param("id"), bookingSvc.RescheduleProposal{
		Date:        input.Date,
		Start:       start,
		Reason:      input.Reason,
		RequestedBy: input.RequestedBy,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ApproveRescheduleHandler handles POST /api/bookings/:id/reschedule/approve.
func (h *BookingHandler) ApproveRescheduleHandler(c *gin.Context) {
	h.applyTransition(c, h.Engine.ApproveReschedule)
}

// DeclineRescheduleHandler handles POST /api/bookings/:id/reschedule/decline.
func (h *BookingHandler) DeclineRescheduleHandler(c *gin.Context) {
	h.applyTransition(c, h.Engine.DeclineReschedule)
}

// ListProviderBookingsHandler handles GET /api/stylists/:id/bookings.
func (h *BookingHandler) ListProviderBookingsHandler(c *gin.Context) {
	providerID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	bookings, err := h.Engine.ListBookings(c.Request.Context(), providerID, date)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider_id": providerID, "date": date, "bookings": bookings})
}

func (h *BookingHandler) applyTransition(c *gin.Context, op func(context.Context, string) (*models.Booking, error)) {
	booking, err := op(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// resolveDuration reads the duration from the query, falling back to the
// stylist's service offering when service_id is given instead.
func (h *BookingHandler) resolveDuration(c *gin.Context, providerID string) (int, error) {
	if raw := c.Query("duration"); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("duration must be an integer number of minutes")
		}
		return duration, nil
	}
	if serviceID := c.Query("service_id"); serviceID != "" {
		return h.serviceDuration(c, providerID, serviceID)
	}
	return 0, fmt.Errorf("either duration or service_id is required")
}

func (h *BookingHandler) serviceDuration(c *gin.Context, providerID, serviceID string) (int, error) {
	stylist, err := h.Stylists.GetByID(c.Request.Context(), providerID)
	if err != nil {
		return 0, fmt.Errorf("stylist not found")
	}
	offering, ok := stylist.ServiceByID(serviceID)
	if !ok {
		return 0, fmt.Errorf("service %s not offered by this stylist", serviceID)
	}
	return offering.DurationMinutes, nil
}
