package api

import (
	"net/http" // HTTP status codes

	"finance_tracker/internal/service" // Business rules

	"github.com/gin-gonic/gin" // Gin web framework
)

// RegisterRequest is the registration body
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"` // Email must be provided and valid
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// LoginRequest is the login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// RefreshRequest carries the refresh token to rotate
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// LogoutRequest optionally names a refresh token to revoke
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RegisterHandler creates an account and returns its first token pair
func RegisterHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, bindingError(err))
			return
		}
		user, pair, err := svc.Register(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusCreated, gin.H{
			"user":          gin.H{"username": user.Username, "email": user.Email},
			"access_token":  pair.Access,
			"refresh_token": pair.Refresh,
		}, "User registered successfully")
	}
}

// LoginHandler authenticates a user and returns a token pair
func LoginHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, bindingError(err))
			return
		}
		user, pair, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err) // Unknown email and wrong password look the same
			return
		}
		respondOK(c, http.StatusOK, gin.H{
			"access":  pair.Access,
			"refresh": pair.Refresh,
			"user":    gin.H{"email": user.Email},
		}, "Login successful")
	}
}

// RefreshHandler exchanges a refresh token for a new pair
func RefreshHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, bindingError(err))
			return
		}
		pair, err := svc.Refresh(c.Request.Context(), req.Refresh)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, gin.H{"access": pair.Access, "refresh": pair.Refresh}, "Token refreshed successfully")
	}
}

// LogoutHandler clears the caller's stored refresh token
func LogoutHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LogoutRequest
		if err := bindJSON(c, &req); err != nil { // The body is optional, a garbled one is not
			respondError(c, err)
			return
		}
		if err := svc.Logout(c.Request.Context(), currentUserID(c), req.RefreshToken); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, nil, "Successfully logged out. Refresh token cleared.")
	}
}

// GetUserHandler returns the caller's own account
func GetUserHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		user, err := svc.GetUser(c.Request.Context(), currentUserID(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, userView(user), "User details retrieved successfully")
	}
}
