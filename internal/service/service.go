// Package service implements the validation layer, the authentication flows and the
// reporting engine on top of the owner-scoped repositories.
package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"finance_tracker/internal/repository"
	"finance_tracker/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Options tunes a Service
type Options struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CacheTTL        time.Duration
	BcryptCost      int              // bcrypt.DefaultCost when zero
	Now             func() time.Time // time.Now when nil
}

// Service holds the business rules of the finance tracker
type Service struct {
	repos *repository.Repositories
	rdb   *redis.Client // nil disables caching and the token blacklist
	opts  Options
}

// New creates a Service; rdb may be nil
func New(repos *repository.Repositories, rdb *redis.Client, opts Options) *Service {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.AccessTokenTTL == 0 {
		opts.AccessTokenTTL = time.Hour
	}
	if opts.RefreshTokenTTL == 0 {
		opts.RefreshTokenTTL = 24 * time.Hour
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = time.Minute
	}
	return &Service{repos: repos, rdb: rdb, opts: opts}
}

// today returns the current date in UTC
func (s *Service) today() time.Time {
	now := s.opts.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func reportCachePrefix(ownerID uint) string {
	return "report:user:" + strconv.FormatUint(uint64(ownerID), 10) + ":"
}

func reportVersionKey(ownerID uint) string {
	return "report:version:user:" + strconv.FormatUint(uint64(ownerID), 10)
}

// reportCacheKey names a cached report under the owner's current generation.
// ok is false when the generation cannot be read and the cache must be skipped.
func (s *Service) reportCacheKey(ctx context.Context, ownerID uint, name string) (key string, ok bool) {
	v, err := utils.CacheVersion(ctx, s.rdb, reportVersionKey(ownerID))
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": ownerID, "error": err.Error()}).Warn("Failed to read report cache version")
		return "", false
	}
	return fmt.Sprintf("%sv%d:%s", reportCachePrefix(ownerID), v, name), true
}

// invalidateReports moves an owner to a new report generation after a write.
// A report computed before the write can still land in the cache afterwards, but only
// under the old generation, which no reader asks for again.
func (s *Service) invalidateReports(ctx context.Context, ownerID uint) {
	ctx = context.WithoutCancel(ctx) // The write is committed even if the client went away
	if err := utils.BumpCacheVersion(ctx, s.rdb, reportVersionKey(ownerID)); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": ownerID,
			"error":   err.Error(),
		}).Warn("Failed to invalidate report cache")
	}
	if err := utils.DeleteCachePrefix(ctx, s.rdb, reportCachePrefix(ownerID)); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": ownerID,
			"error":   err.Error(),
		}).Warn("Failed to drop stale reports")
	}
}
