package middleware

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"finance_tracker/internal/domain"     // Importing domain models
	"finance_tracker/internal/repository" // User lookups

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CurrentUserMiddleware checks the token's user still exists so deleted accounts lose access
func CurrentUserMiddleware(users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			Abort(c, http.StatusUnauthorized, MsgNoCredentials)
			return
		}
		_, err := users.GetByID(c.Request.Context(), userID.(uint)) // Fetch user from database
		if errors.Is(err, domain.ErrNotFound) {
			// The account behind a still valid token is gone
			Abort(c, http.StatusUnauthorized, "User not found")
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Error("Failed to load user")
			Abort(c, http.StatusInternalServerError, "A server error occurred.")
			return
		}
		c.Next()
	}
}
