package middleware

import (
	"net/http" // HTTP status codes

	"gamewallet/internal/domain"  // Role constants
	"gamewallet/internal/service" // Store interface

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware re-reads the caller's role from the store on each
// request, so a revoked admin loses access without waiting for token expiry
func AdminOnlyMiddleware(store service.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c) // Get userID from context
		// Check if userID exists in context
		if !ok {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		user, err := store.UserByID(c.Request.Context(), userID) // Fetch user from the store
		if err != nil {
			// If user not found or any error, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}
		// Check if user role is admin
		if user.Role != domain.RoleAdmin {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
