package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finance_tracker/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BudgetInput carries the writable budget fields; nil means "not supplied"
type BudgetInput struct {
	CategoryID *uint
	Year       *int
	Month      *int
	Amount     *decimal.Decimal
}

// ListBudgets returns the owner's budgets, optionally for one year and/or month
func (s *Service) ListBudgets(ctx context.Context, ownerID uint, year, month *int) ([]domain.Budget, error) {
	return s.repos.Budgets.List(ctx, ownerID, year, month)
}

// GetBudget returns one of the owner's budgets
func (s *Service) GetBudget(ctx context.Context, ownerID, id uint) (*domain.Budget, error) {
	return s.repos.Budgets.Get(ctx, ownerID, id)
}

// CreateBudget validates and stores a new monthly budget
func (s *Service) CreateBudget(ctx context.Context, ownerID uint, in BudgetInput) (*domain.Budget, error) {
	b := &domain.Budget{UserID: ownerID}
	if err := s.applyBudget(ctx, b, in, false); err != nil {
		return nil, err
	}
	if err := s.repos.Budgets.Create(ctx, b); err != nil {
		return nil, budgetWriteError(err, b)
	}
	s.invalidateReports(ctx, ownerID)
	logrus.WithFields(logrus.Fields{
		"user_id":     ownerID,
		"budget_id":   b.ID,
		"category_id": b.CategoryID,
		"period":      fmt.Sprintf("%04d-%02d", b.Year, b.Month),
		"amount":      b.Amount.StringFixed(2),
	}).Info("Budget created")
	return b, nil
}

// UpdateBudget validates the merged record and stores it; partial keeps unsupplied fields
func (s *Service) UpdateBudget(ctx context.Context, ownerID, id uint, in BudgetInput, partial bool) (*domain.Budget, error) {
	b, err := s.repos.Budgets.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyBudget(ctx, b, in, partial); err != nil {
		return nil, err
	}
	if err := s.repos.Budgets.Update(ctx, b); err != nil {
		return nil, budgetWriteError(err, b)
	}
	s.invalidateReports(ctx, ownerID)
	logrus.WithFields(logrus.Fields{
		"user_id":   ownerID,
		"budget_id": b.ID,
		"amount":    b.Amount.StringFixed(2),
	}).Info("Budget updated")
	return b, nil
}

// DeleteBudget removes one of the owner's budgets
func (s *Service) DeleteBudget(ctx context.Context, ownerID, id uint) error {
	if err := s.repos.Budgets.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.invalidateReports(ctx, ownerID)
	logrus.WithFields(logrus.Fields{"user_id": ownerID, "budget_id": id}).Info("Budget deleted")
	return nil
}

// applyBudget checks, in order: category present, owned, expense kind; amount; month; year; uniqueness
func (s *Service) applyBudget(ctx context.Context, b *domain.Budget, in BudgetInput, partial bool) error {
	verr := &domain.ValidationError{}

	year, month, amount := b.Year, b.Month, b.Amount
	if in.Year != nil {
		year = *in.Year
	} else if !partial {
		verr.Add("year", msgRequired)
	}
	if in.Month != nil {
		month = *in.Month
	} else if !partial {
		verr.Add("month", msgRequired)
	}
	if in.Amount != nil {
		amount = *in.Amount
		for _, msg := range amountShapeErrors(amount) {
			verr.Add("amount", msg)
		}
	} else if !partial {
		verr.Add("amount", msgRequired)
	}
	switch {
	case in.CategoryID != nil:
	case !partial:
		verr.Add("category_id", msgRequired)
	case b.CategoryID == 0:
		verr.Add("category_id", msgBudgetCategory)
	}
	if !verr.Empty() {
		return verr
	}

	category := &b.Category
	if in.CategoryID != nil {
		c, err := s.repos.Categories.Get(ctx, b.UserID, *in.CategoryID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("category_id", invalidPK(*in.CategoryID))
		}
		if err != nil {
			return err
		}
		category = c
	}
	if category.IsIncome {
		return domain.NewValidationError("category_id", domain.BudgetCategoryMessage)
	}
	if !amount.IsPositive() {
		return domain.NewValidationError("amount", msgAmountPositive)
	}
	if month < 1 || month > 12 {
		return domain.NewValidationError("month", msgMonthRange)
	}
	if year < 2000 || year > 2100 {
		return domain.NewValidationError("year", msgYearRange)
	}

	exists, err := s.repos.Budgets.Exists(ctx, b.UserID, category.ID, year, month, b.ID)
	if err != nil {
		return err
	}
	if exists {
		return duplicateBudget(category.Name, year, month)
	}

	b.CategoryID = category.ID
	b.Category = *category
	b.Year, b.Month = year, month
	b.Amount = amount.Round(maxAmountPlaces)
	return nil
}

func duplicateBudget(categoryName string, year, month int) error {
	return domain.NewValidationError(domain.NonFieldErrors, fmt.Sprintf(
		"A budget for category '%s' in %s %d already exists.", categoryName, time.Month(month), year))
}

// budgetWriteError turns a unique index hit into the duplicate budget error
func budgetWriteError(err error, b *domain.Budget) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return duplicateBudget(b.Category.Name, b.Year, b.Month)
	}
	return err
}
