package domain

import "time"

// User Model
type User struct {
	ID           uint       `gorm:"primaryKey"`                    // Primary key
	Email        string     `gorm:"size:254;uniqueIndex;not null"` // Login identifier, stored lowercase
	Username     string     `gorm:"size:254;not null"`             // Mirrors the email
	Password     string     `gorm:"not null"`                      // Hashed password
	RefreshToken *string    `gorm:"size:512"`                      // Last issued refresh token, nil after logout
	LastLogin    *time.Time // Set on successful login
	CreatedAt    time.Time  // Date joined
}
