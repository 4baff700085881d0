package repository

import (
	"context"
	"time"

	"finance_tracker/internal/domain"

	"gorm.io/gorm"
)

// UserRepository stores users
type UserRepository struct {
	db *gorm.DB
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// GetByID loads a user by primary key
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// GetByEmail loads a user by (lowercase) email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// EmailTaken reports whether an account already uses email
func (r *UserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

// SetRefreshToken stores the refresh token of a user; nil clears it
func (r *UserRepository) SetRefreshToken(ctx context.Context, id uint, token *string) error {
	var value any
	if token != nil {
		value = *token
	}
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("refresh_token", value).Error
}

// RecordLogin stores the refresh token issued at login and the login time
func (r *UserRepository) RecordLogin(ctx context.Context, id uint, token string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(map[string]any{
		"refresh_token": token,
		"last_login":    at,
	}).Error
}
