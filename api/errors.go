package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neupane-rajan/airline-reservation/internal/domain"
	"go.uber.org/zap"
)

// writeError maps domain errors to HTTP statuses. Anything outside the
// taxonomy is logged in full and returned as an opaque internal error.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrNoSeats),
		errors.Is(err, domain.ErrAlreadyCancelled),
		errors.Is(err, domain.ErrAlreadyPaid),
		errors.Is(err, domain.ErrNotConfirmed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an unexpected error occurred, please try again later"})
	}
}
