package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/services"
)

// tolerant to value types (int / int64 / float64 / string)
func getIntFromCtx(c *gin.Context, key string) (int, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n, true
		}
	}
	return 0, false
}

func getUserID(c *gin.Context) (int, bool) {
	return getIntFromCtx(c, "user_id")
}

// respondServiceError maps service-layer failures onto status codes.
// Expected conditions keep their structure (field issues, timestamps);
// anything else is logged and surfaced as an opaque 500.
func respondServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "issues": ve.Issues})
		return
	}
	var ce *services.ConflictError
	if errors.As(err, &ce) {
		c.JSON(http.StatusConflict, gin.H{
			"error":           "Stale record. Please refresh.",
			"clientUpdatedAt": ce.ClientUpdatedAt,
			"serverUpdatedAt": ce.ServerUpdatedAt,
		})
		return
	}
	var be *services.BatchTooLargeError
	if errors.As(err, &be) {
		c.JSON(http.StatusBadRequest, gin.H{"error": be.Error()})
		return
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "buyer lead not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Printf("[handlers] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
