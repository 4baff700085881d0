package utils

import (
	"errors" // Error values
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
	"github.com/google/uuid"       // Token identifiers
)

// Token types carried in the token_type claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrWrongTokenType is returned when a refresh token is used as an access token or vice versa
var ErrWrongTokenType = errors.New("wrong token type")

// JWT Claims
type Claims struct {
	UserID               uint   `json:"user_id"`    // Custom claim for user ID
	Username             string `json:"username"`   // Username of the owner
	TokenType            string `json:"token_type"` // access or refresh
	jwt.RegisteredClaims        // Standard JWT claims
}

// TokenPair is an access token together with the refresh token that can renew it
type TokenPair struct {
	Access  string // Short lived access token
	Refresh string // Long lived refresh token
}

// GenerateJWT creates a signed token of the given type for a user
func GenerateJWT(userID uint, username, tokenType, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	// Set token claims
	claims := &Claims{
		UserID:    userID,    // Custom claim for user ID
		Username:  username,  // Username claim
		TokenType: tokenType, // access or refresh
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),                 // Unique token id, used for blacklisting
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Expiry
			IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	signed, err := token.SignedString([]byte(secret))          // Sign the token with the secret
	if err != nil {
		return "", err
	}
	return signed, nil
}

// GenerateTokenPair creates an access and a refresh token for a user
func GenerateTokenPair(userID uint, username, secret string, accessTTL, refreshTTL time.Duration) (*TokenPair, error) {
	access, err := GenerateJWT(userID, username, TokenTypeAccess, secret, accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := GenerateJWT(userID, username, TokenTypeRefresh, secret, refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}

// ParseTypedJWT parses a token and checks its token_type claim
func ParseTypedJWT(tokenStr, secret, tokenType string) (*Claims, error) {
	claims, err := ParseJWT(tokenStr, secret)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
