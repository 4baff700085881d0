package service

import (
	"context"
	"errors"
	"strings"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates an account keyed by its lowercase email and issues a token pair
func (s *Service) Register(ctx context.Context, email, password string) (*domain.User, *utils.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	verr := &domain.ValidationError{}
	taken, err := s.repos.Users.EmailTaken(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		verr.Add("email", msgEmailTaken)
	}
	for _, msg := range passwordErrors(password) {
		verr.Add("password", msg)
	}
	if !verr.Empty() {
		return nil, nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.BcryptCost)
	if err != nil {
		return nil, nil, err
	}
	user := &domain.User{Email: email, Username: email, Password: string(hash)}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, domain.NewValidationError("email", msgEmailTaken)
		}
		return nil, nil, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	if err := s.repos.Users.SetRefreshToken(ctx, user.ID, &pair.Refresh); err != nil {
		return nil, nil, err
	}
	user.RefreshToken = &pair.Refresh
	logrus.WithField("user_id", user.ID).Info("User registered")
	return user, pair, nil
}

// Login checks the credentials and stores the newly issued refresh token
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, *utils.TokenPair, error) {
	user, err := s.repos.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, domain.ErrBadCredentials
	}
	if err != nil {
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logrus.WithField("user_id", user.ID).Warn("Login with wrong password")
		return nil, nil, domain.ErrBadCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	now := s.opts.Now()
	if err := s.repos.Users.RecordLogin(ctx, user.ID, pair.Refresh, now); err != nil {
		return nil, nil, err
	}
	user.RefreshToken, user.LastLogin = &pair.Refresh, &now
	logrus.WithField("user_id", user.ID).Info("User logged in")
	return user, pair, nil
}

// Refresh rotates a refresh token: the presented one is revoked and a new pair is stored.
// Only the refresh token currently stored for the user is accepted.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ParseTypedJWT(refreshToken, s.opts.JWTSecret, utils.TokenTypeRefresh)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	revoked, err := utils.IsTokenBlacklisted(ctx, s.rdb, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrInvalidToken
	}
	user, err := s.repos.Users.GetByID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, domain.ErrInvalidToken
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Users.SetRefreshToken(ctx, user.ID, &pair.Refresh); err != nil {
		return nil, err
	}
	if err := utils.BlacklistToken(ctx, s.rdb, claims.ID, claims.ExpiresAt.Time); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Warn("Failed to revoke rotated refresh token")
	}
	logrus.WithField("user_id", user.ID).Info("Token refreshed")
	return pair, nil
}

// Logout clears the stored refresh token and revokes the presented one when it parses
func (s *Service) Logout(ctx context.Context, userID uint, refreshToken string) error {
	if err := s.repos.Users.SetRefreshToken(ctx, userID, nil); err != nil {
		return err
	}
	if refreshToken != "" {
		if claims, err := utils.ParseTypedJWT(refreshToken, s.opts.JWTSecret, utils.TokenTypeRefresh); err == nil {
			_ = utils.BlacklistToken(ctx, s.rdb, claims.ID, claims.ExpiresAt.Time) // Already revoked or unreachable, ignore
		}
	}
	logrus.WithField("user_id", userID).Info("User logged out")
	return nil
}

// GetUser returns the requesting user's own account; other ids are not found
func (s *Service) GetUser(ctx context.Context, requesterID, id uint) (*domain.User, error) {
	if requesterID != id {
		return nil, domain.ErrNotFound
	}
	return s.repos.Users.GetByID(ctx, id)
}

func (s *Service) issuePair(user *domain.User) (*utils.TokenPair, error) {
	return utils.GenerateTokenPair(user.ID, user.Username, s.opts.JWTSecret, s.opts.AccessTokenTTL, s.opts.RefreshTokenTTL)
}
