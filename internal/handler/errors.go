package handler

import (
	"errors"
	"net/http"

	"github.com/car-registry/backend/internal/service"
	"github.com/car-registry/backend/internal/worker"
	"github.com/gin-gonic/gin"
)

// writeServiceError translates service sentinel errors into HTTP statuses.
// Validation messages are forwarded so the caller sees which row or brand
// id failed; everything unexpected collapses to a plain 500.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, worker.ErrBusy):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "server busy, retry later"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}

func writeNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}
