package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"finance_tracker/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Messages of the authentication failures
const (
	MsgNoCredentials = "Authentication credentials were not provided."
	MsgInvalidToken  = "Given token not valid for any token type"
)

// JWTAuthMiddleware validates access tokens and extracts user information
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			Abort(c, http.StatusUnauthorized, MsgNoCredentials)
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")                       // Extract the token string
		claims, err := utils.ParseTypedJWT(tokenStr, secret, utils.TokenTypeAccess) // Refresh tokens are refused here
		if err != nil {
			// If parsing fails, abort with unauthorized status
			Abort(c, http.StatusUnauthorized, MsgInvalidToken)
			return
		}
		c.Set("userID", claims.UserID) // Store userID in context
		c.Next()                       // Proceed to the next handler
	}
}

// Abort stops the chain with an error envelope
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   gin.H{"detail": msg},
		"message": msg,
	})
}
