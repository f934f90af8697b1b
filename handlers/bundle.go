package handlers

import (
	stylistRepoPkg "quikka/database/repository/stylist"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	StylistRepo stylistRepoPkg.StylistRepository

	// Stylist endpoints
	RegisterStylistHandler     gin.HandlerFunc
	AuthenticateStylistHandler gin.HandlerFunc
	GetStylistHandler          gin.HandlerFunc
	ListStylistsHandler        gin.HandlerFunc
	UpdateServicesHandler      gin.HandlerFunc
	SetWeeklyHoursHandler      gin.HandlerFunc
	SetDateOverrideHandler     gin.HandlerFunc
	GetAvailabilityHandler     gin.HandlerFunc

	// Booking endpoints
	ListSlotsHandler            gin.HandlerFunc
	CreateBookingHandler        gin.HandlerFunc
	GetBookingHandler           gin.HandlerFunc
	ConfirmBookingHandler       gin.HandlerFunc
	CancelBookingHandler        gin.HandlerFunc
	CompleteBookingHandler      gin.HandlerFunc
	NoShowBookingHandler        gin.HandlerFunc
	RequestRescheduleHandler    gin.HandlerFunc
	ApproveRescheduleHandler    gin.HandlerFunc
	DeclineRescheduleHandler    gin.HandlerFunc
	ListProviderBookingsHandler gin.HandlerFunc
}

// NewHandlerBundle wires the handler structs into a bundle for route registration.
func NewHandlerBundle(bh *BookingHandler, sh *StylistHandler, stylistRepo stylistRepoPkg.StylistRepository) *HandlerBundle {
	return &HandlerBundle{
		StylistRepo: stylistRepo,

		RegisterStylistHandler:     sh.RegisterStylistHandler,
		AuthenticateStylistHandler: sh.AuthenticateStylistHandler,
		GetStylistHandler:          sh.GetStylistHandler,
		ListStylistsHandler:        sh.ListStylistsHandler,
		UpdateServicesHandler:      sh.UpdateServicesHandler,
		SetWeeklyHoursHandler:      sh.SetWeeklyHoursHandler,
		SetDateOverrideHandler:     sh.SetDateOverrideHandler,
		GetAvailabilityHandler:     sh.GetAvailabilityHandler,

		ListSlotsHandler:            bh.ListSlotsHandler,
		CreateBookingHandler:        bh.CreateBookingHandler,
		GetBookingHandler:           bh.GetBookingHandler,
		ConfirmBookingHandler:       bh.ConfirmBookingHandler,
		CancelBookingHandler:        bh.CancelBookingHandler,
		CompleteBookingHandler:      bh.CompleteBookingHandler,
		NoShowBookingHandler:        bh.NoShowBookingHandler,
		RequestRescheduleHandler:    bh.RequestRescheduleHandler,
		ApproveRescheduleHandler:    bh.ApproveRescheduleHandler,
		DeclineRescheduleHandler:    bh.DeclineRescheduleHandler,
		ListProviderBookingsHandler: bh.ListProviderBookingsHandler,
	}
}
