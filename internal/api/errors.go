package api

import (
	"errors"   // Sentinel comparison
	"net/http" // HTTP status codes

	"gamewallet/internal/service" // Service error taxonomy

	"github.com/gin-gonic/gin" // Gin web framework
)

// serviceError maps a service-layer error onto an HTTP response. Validation
// errors and NotFound carry their display message; anything else is an
// opaque server error so store internals never leak to the caller.
func serviceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrAmountNotPositive),
		errors.Is(err, service.ErrProofRequired),
		errors.Is(err, service.ErrBalanceRequired):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
	}
}
