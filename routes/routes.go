package routes

import (
	"net/http"
	"time"

	"quikka/handlers"
	"quikka/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterStylistRoutes registers stylist account, profile, and availability endpoints.
func RegisterStylistRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/stylists")
	{
		// Public endpoints
		api.GET("", hb.ListStylistsHandler)
		api.POST("/register", hb.RegisterStylistHandler)
		api.POST("/login", hb.AuthenticateStylistHandler)

		// Protected routes (require stylist authentication)
		protected := api.Group("")
		protected.Use(middleware.JWTAuthStylistMiddleware(hb.StylistRepo))
		protected.PUT("/services", hb.UpdateServicesHandler)
		protected.GET("/availability", hb.GetAvailabilityHandler)
		protected.PUT("/availability", hb.SetWeeklyHoursHandler)
		protected.PUT("/availability/override", hb.SetDateOverrideHandler)
		protected.GET("/:id/bookings", hb.ListProviderBookingsHandler)

		// Parameterized public profile route last so it cannot shadow
		// the fixed paths above.
		api.GET("/:id", hb.GetStylistHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		// Client-facing endpoints (no account needed to book)
		api.GET("/slots", hb.ListSlotsHandler)
		api.POST("", hb.CreateBookingHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.POST("/:id/cancel", hb.CancelBookingHandler)
		api.POST("/:id/reschedule", hb.RequestRescheduleHandler)
		api.POST("/:id/reschedule/decline", hb.DeclineRescheduleHandler)

		// Stylist-side lifecycle moves require authentication.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthStylistMiddleware(hb.StylistRepo))
		protected.POST("/:id/confirm", hb.ConfirmBookingHandler)
		protected.POST("/:id/complete", hb.CompleteBookingHandler)
		protected.POST("/:id/no-show", hb.NoShowBookingHandler)
		protected.POST("/:id/reschedule/approve", hb.ApproveRescheduleHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Quikka"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterStylistRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
}
