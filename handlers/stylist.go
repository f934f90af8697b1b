package handlers

import (
	"net/http"
	"strconv"
	"strings"

	stylistRepo "quikka/database/repository/stylist"
	"quikka/models"
	stylistSvc "quikka/services/stylist"
	"quikka/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StylistHandler exposes stylist account, profile, and availability endpoints.
type StylistHandler struct {
	Service stylistSvc.StylistService
}

// RegisterStylistHandler handles POST /api/stylists/register.
func (h *StylistHandler) RegisterStylistHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req models.StylistSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		if err == stylistRepo.ErrDuplicateEmail {
			c.JSON(http.StatusConflict, gin.H{"error": "an account with this email already exists"})
			return
		}
		logger.Error("Stylist registration failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateStylistHandler handles POST /api/stylists/login.
func (h *StylistHandler) AuthenticateStylistHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	resp, err := h.Service.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetStylistHandler handles GET /api/stylists/:id.
func (h *StylistHandler) GetStylistHandler(c *gin.Context) {
	stylist, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stylist not found"})
		return
	}
	c.JSON(http.StatusOK, stylist)
}

// ListStylistsHandler handles GET /api/stylists.
func (h *StylistHandler) ListStylistsHandler(c *gin.Context) {
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	stylists, err := h.Service.List(c.Request.Context(), offset, limit)
	if err != nil {
		utils.GetLogger().Error("Failed to list stylists", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list stylists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stylists": stylists})
}

// UpdateServicesHandler handles PUT /api/stylists/services. The stylist ID
// comes from the auth middleware, never from the request body.
func (h *StylistHandler) UpdateServicesHandler(c *gin.Context) {
	stylistID := c.GetString("stylistID")
	var input struct {
		Services []models.ServiceOffering `json:"services" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Service.UpdateServices(c.Request.Context(), stylistID, input.Services); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "services updated"})
}

type weeklyHoursInput struct {
	// Weekday name -> window, times as "HH:MM". Absent days are closed.
	Weekly map[string]struct {
		Open  string `json:"open" binding:"required"`
		Close string `json:"close" binding:"required"`
	} `json:"weekly" binding:"required"`
}

// SetWeeklyHoursHandler handles PUT /api/stylists/availability.
func (h *StylistHandler) SetWeeklyHoursHandler(c *gin.Context) {
	stylistID := c.GetString("stylistID")
	var input weeklyHoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	weekly := make(map[string]models.DayWindow, len(input.Weekly))
	for day, w := range input.Weekly {
		open, err := utils.ParseClock(w.Open)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "open time for " + day + " must be HH:MM"})
			return
		}
		closeAt, err := utils.ParseClock(w.Close)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "close time for " + day + " must be HH:MM"})
			return
		}
		weekly[strings.ToLower(day)] = models.DayWindow{Open: open, Close: closeAt}
	}
	if err := h.Service.SetWeeklyHours(c.Request.Context(), stylistID, weekly); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "weekly hours updated"})
}

type dateOverrideInput struct {
	Date   string `json:"date" binding:"required"`
	Closed bool   `json:"closed"`
	Open   string `json:"open"`  // "HH:MM", required unless closed or clearing
	Close  string `json:"close"` // "HH:MM"
	Clear  bool   `json:"clear"` // remove the override entirely
}

// SetDateOverrideHandler handles PUT /api/stylists/availability/override.
func (h *StylistHandler) SetDateOverrideHandler(c *gin.Context) {
	stylistID := c.GetString("stylistID")
	var input dateOverrideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	var ov *models.DateOverride
	switch {
	case input.Clear:
		ov = nil
	case input.Closed:
		ov = &models.DateOverride{Closed: true}
	default:
		open, err := utils.ParseClock(input.Open)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "open time must be HH:MM"})
			return
		}
		closeAt, err := utils.ParseClock(input.Close)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "close time must be HH:MM"})
			return
		}
		ov = &models.DateOverride{Window: &models.DayWindow{Open: open, Close: closeAt}}
	}

	if err := h.Service.SetDateOverride(c.Request.Context(), stylistID, input.Date, ov); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "override updated"})
}

// GetAvailabilityHandler handles GET /api/stylists/availability for the
// authenticated stylist.
func (h *StylistHandler) GetAvailabilityHandler(c *gin.Context) {
	stylistID := c.GetString("stylistID")
	rule, err := h.Service.GetAvailabilityRule(c.Request.Context(), stylistID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rule)
}
