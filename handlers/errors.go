package handlers

import (
	"errors"
	"net/http"

	bookingSvc "quikka/services/booking"

	"github.com/gin-gonic/gin"
)

// respondBookingError maps engine errors onto HTTP statuses. Validation
// failures are 400, unknown resources 404, lost races and occupied slots 409,
// disallowed lifecycle moves 422. Anything else is a 500.
func respondBookingError(c *gin.Context, err error) {
	var vErr *bookingSvc.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
		return
	}
	var tErr *bookingSvc.InvalidTransitionError
	if errors.As(err, &tErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": tErr.Error()})
		return
	}
	var eErr *bookingSvc.EngineError
	if errors.As(err, &eErr) {
		switch eErr {
		case bookingSvc.ErrSlotUnavailable:
			c.JSON(http.StatusConflict, gin.H{"error": eErr.Message, "code": eErr.Code})
		case bookingSvc.ErrProviderNotFound, bookingSvc.ErrBookingNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": eErr.Message, "code": eErr.Code})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": eErr.Message, "code": eErr.Code})
		}
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
