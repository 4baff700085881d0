package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/repository"
	"finance_tracker/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// TrendMonths is the length of the budget trend window, current month included
const TrendMonths = 7

// MonthStat compares budgets and spending for one calendar month
type MonthStat struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	Label        string          `json:"label"` // "November 2025"
	TotalBudget  decimal.Decimal `json:"total_budget"`
	TotalExpense decimal.Decimal `json:"total_expense"`
}

// FinancialSummary is the dashboard report of one user
type FinancialSummary struct {
	TotalIncome       decimal.Decimal            `json:"total_income"`
	TotalExpense      decimal.Decimal            `json:"total_expense"`
	TotalSaving       decimal.Decimal            `json:"total_saving"`
	BudgetTrend       []MonthStat                `json:"budget_trend"`
	IncomeByCategory  []repository.CategoryTotal `json:"income_by_category"`
	ExpenseByCategory []repository.CategoryTotal `json:"expense_by_category"`
}

// BudgetUsage is the current month's budget and spending of one expense category
type BudgetUsage struct {
	CategoryID uint            `json:"category_id"`
	Category   string          `json:"category"`
	Budget     decimal.Decimal `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
}

// shiftMonth moves back n months from year/month, rolling the year when needed
func shiftMonth(year, month, n int) (int, int) {
	month -= n
	for month <= 0 {
		month += 12
		year--
	}
	return year, month
}

// monthBounds returns [first day of month, first day of next month) in UTC
func monthBounds(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func monthLabel(year, month int) string {
	return time.Month(month).String() + " " + strconv.Itoa(year)
}

// Summary computes totals, the budget trend and the per-category breakdowns.
// Incomes in categories named "Balance" are left out of every income figure.
func (s *Service) Summary(ctx context.Context, ownerID uint) (*FinancialSummary, error) {
	today := s.today()
	key, cacheable := s.reportCacheKey(ctx, ownerID, fmt.Sprintf("summary:%04d-%02d", today.Year(), today.Month()))
	var cached FinancialSummary
	if cacheable {
		if found, err := utils.GetCache(ctx, s.rdb, key, &cached); err == nil && found {
			return &cached, nil
		}
	}

	reports := s.repos.Reports
	sum := &FinancialSummary{BudgetTrend: make([]MonthStat, TrendMonths)}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if sum.TotalIncome, err = reports.SumEntries(gctx, ownerID, domain.KindIncome, true, nil, nil); err != nil {
			return fmt.Errorf("total income: %w", err)
		}
		if sum.TotalExpense, err = reports.SumEntries(gctx, ownerID, domain.KindExpense, false, nil, nil); err != nil {
			return fmt.Errorf("total expense: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// oldest month first
		for i := 0; i < TrendMonths; i++ {
			year, month := shiftMonth(today.Year(), int(today.Month()), TrendMonths-1-i)
			from, to := monthBounds(year, month)
			budget, err := reports.SumBudgets(gctx, ownerID, year, month)
			if err != nil {
				return fmt.Errorf("budgets %d-%02d: %w", year, month, err)
			}
			spent, err := reports.SumEntries(gctx, ownerID, domain.KindExpense, false, &from, &to)
			if err != nil {
				return fmt.Errorf("expenses %d-%02d: %w", year, month, err)
			}
			sum.BudgetTrend[i] = MonthStat{
				Year: year, Month: month, Label: monthLabel(year, month),
				TotalBudget: budget, TotalExpense: spent,
			}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		sum.IncomeByCategory, err = reports.SumEntriesByCategory(gctx, ownerID, domain.KindIncome, true)
		return err
	})
	g.Go(func() error {
		var err error
		sum.ExpenseByCategory, err = reports.SumEntriesByCategory(gctx, ownerID, domain.KindExpense, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sum.TotalSaving = sum.TotalIncome.Sub(sum.TotalExpense)

	if !cacheable {
		return sum, nil
	}
	if err := utils.SetCache(ctx, s.rdb, key, sum, s.opts.CacheTTL); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": ownerID, "error": err.Error()}).Warn("Failed to cache summary")
	}
	return sum, nil
}

// BudgetManagement reports budget and spending of every expense category for the current month
func (s *Service) BudgetManagement(ctx context.Context, ownerID uint) ([]BudgetUsage, error) {
	today := s.today()
	year, month := today.Year(), int(today.Month())
	key, cacheable := s.reportCacheKey(ctx, ownerID, fmt.Sprintf("budget-management:%04d-%02d", year, month))
	var cached []BudgetUsage
	if cacheable {
		if found, err := utils.GetCache(ctx, s.rdb, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	expenseOnly := false
	categories, err := s.repos.Categories.List(ctx, ownerID, &expenseOnly)
	if err != nil {
		return nil, err
	}
	budgets, err := s.repos.Reports.BudgetsPerCategory(ctx, ownerID, year, month)
	if err != nil {
		return nil, err
	}
	from, to := monthBounds(year, month)
	spent, err := s.repos.Reports.SumExpensesPerCategory(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]BudgetUsage, 0, len(categories))
	for _, c := range categories {
		out = append(out, BudgetUsage{
			CategoryID: c.ID,
			Category:   c.Name,
			Budget:     budgets[c.ID], // zero value when absent
			Spent:      spent[c.ID],
		})
	}

	if !cacheable {
		return out, nil
	}
	if err := utils.SetCache(ctx, s.rdb, key, out, s.opts.CacheTTL); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": ownerID, "error": err.Error()}).Warn("Failed to cache budget management")
	}
	return out, nil
}
