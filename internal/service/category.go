package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"finance_tracker/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CategoryInput carries the writable category fields; nil means "not supplied"
type CategoryInput struct {
	Name     *string
	IsIncome *bool
}

// ListCategories returns the owner's categories, optionally one kind only
func (s *Service) ListCategories(ctx context.Context, ownerID uint, isIncome *bool) ([]domain.Category, error) {
	return s.repos.Categories.List(ctx, ownerID, isIncome)
}

// GetCategory returns one of the owner's categories
func (s *Service) GetCategory(ctx context.Context, ownerID, id uint) (*domain.Category, error) {
	return s.repos.Categories.Get(ctx, ownerID, id)
}

// CreateCategory validates and stores a new category
func (s *Service) CreateCategory(ctx context.Context, ownerID uint, in CategoryInput) (*domain.Category, error) {
	c := &domain.Category{UserID: ownerID}
	if err := s.applyCategory(ctx, c, in, false); err != nil {
		return nil, err
	}
	if err := s.repos.Categories.Create(ctx, c); err != nil {
		return nil, categoryWriteError(err)
	}
	s.invalidateReports(ctx, ownerID)
	logrus.WithFields(logrus.Fields{
		"user_id":     ownerID,
		"category_id": c.ID,
		"is_income":   c.IsIncome,
	}).Info("Category created")
	return c, nil
}

// UpdateCategory validates and stores changes; partial keeps unsupplied fields
func (s *Service) UpdateCategory(ctx context.Context, ownerID, id uint, in CategoryInput, partial bool) (*domain.Category, error) {
	c, err := s.repos.Categories.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyCategory(ctx, c, in, partial); err != nil {
		return nil, err
	}
	if err := s.repos.Categories.Update(ctx, c); err != nil {
		return nil, categoryWriteError(err)
	}
	s.invalidateReports(ctx, ownerID)
	logrus.WithFields(logrus.Fields{"user_id": ownerID, "category_id": c.ID}).Info("Category updated")
	return c, nil
}

// DeleteCategory removes a category that nothing references
func (s *Service) DeleteCategory(ctx context.Context, ownerID, id uint) error {
	if _, err := s.repos.Categories.Get(ctx, ownerID, id); err != nil {
		return err
	}
	used, err := s.repos.Categories.InUse(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if used {
		return domain.ErrConflict
	}
	if err := s.repos.Categories.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.invalidateReports(ctx, ownerID)
	logrus.WithFields(logrus.Fields{"user_id": ownerID, "category_id": id}).Info("Category deleted")
	return nil
}

// applyCategory validates in against c and copies the supplied fields onto it
func (s *Service) applyCategory(ctx context.Context, c *domain.Category, in CategoryInput, partial bool) error {
	verr := &domain.ValidationError{}
	name := c.Name
	switch {
	case in.Name != nil:
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			verr.Add("name", msgBlank)
		} else if utf8.RuneCountInString(name) > maxCategoryName {
			verr.Add("name", msgNameTooLong)
		}
	case !partial:
		verr.Add("name", msgRequired)
	}
	if !verr.Empty() {
		return verr
	}

	taken, err := s.repos.Categories.NameTaken(ctx, c.UserID, name, c.ID)
	if err != nil {
		return err
	}
	if taken {
		return domain.NewValidationError(domain.NonFieldErrors, msgCategoryExists)
	}

	// Flipping the kind would orphan entries and budgets that rely on it
	if in.IsIncome != nil && c.ID != 0 && *in.IsIncome != c.IsIncome {
		used, err := s.repos.Categories.InUse(ctx, c.UserID, c.ID)
		if err != nil {
			return err
		}
		if used {
			return domain.NewValidationError("is_income", msgKindLocked)
		}
	}

	c.Name = name
	if in.IsIncome != nil {
		c.IsIncome = *in.IsIncome
	}
	return nil
}

// categoryWriteError turns a unique index hit into the duplicate name error
func categoryWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.NewValidationError(domain.NonFieldErrors, msgCategoryExists)
	}
	return err
}
