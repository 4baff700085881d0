package repository

import (
	"context"
	"time"

	"finance_tracker/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryTotal is the sum of one category's entries
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// ReportRepository runs the aggregate queries behind the summary views
type ReportRepository struct {
	db *gorm.DB
}

// entrySums starts an aggregate over the owner's entries of kind joined with categories
func (r *ReportRepository) entrySums(ctx context.Context, ownerID uint, kind domain.EntryKind, excludeBalance bool) *gorm.DB {
	t := kind.Table()
	q := r.db.WithContext(ctx).Table(t).
		Joins("JOIN categories ON categories.id = "+t+".category_id").
		Where(t+".user_id = ?", ownerID)
	if excludeBalance {
		q = q.Where("categories.name <> ?", domain.BalanceCategoryName)
	}
	return q
}

// SumEntries adds up the owner's entries of kind, optionally within [from, to)
func (r *ReportRepository) SumEntries(ctx context.Context, ownerID uint, kind domain.EntryKind, excludeBalance bool, from, to *time.Time) (decimal.Decimal, error) {
	t := kind.Table()
	q := r.entrySums(ctx, ownerID, kind, excludeBalance)
	if from != nil {
		q = q.Where(t+".date >= ?", *from)
	}
	if to != nil {
		q = q.Where(t+".date < ?", *to)
	}
	var total decimal.Decimal
	err := q.Select("COALESCE(SUM(" + t + ".amount), 0)").Row().Scan(&total)
	return total, err
}

// SumEntriesByCategory adds up the owner's entries of kind per category name, sorted by name
func (r *ReportRepository) SumEntriesByCategory(ctx context.Context, ownerID uint, kind domain.EntryKind, excludeBalance bool) ([]CategoryTotal, error) {
	t := kind.Table()
	var out []CategoryTotal
	err := r.entrySums(ctx, ownerID, kind, excludeBalance).
		Select("categories.name AS category, COALESCE(SUM(" + t + ".amount), 0) AS total").
		Group("categories.name").
		Order("categories.name ASC").
		Scan(&out).Error
	return out, err
}

// SumExpensesPerCategory adds up the owner's expenses in [from, to) keyed by category id
func (r *ReportRepository) SumExpensesPerCategory(ctx context.Context, ownerID uint, from, to time.Time) (map[uint]decimal.Decimal, error) {
	var rows []struct {
		CategoryID uint
		Total      decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&domain.Expense{}).
		Select("category_id, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND date >= ? AND date < ?", ownerID, from, to).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.CategoryID] = row.Total
	}
	return out, nil
}

// SumBudgets adds up all of the owner's budgets for one month
func (r *ReportRepository) SumBudgets(ctx context.Context, ownerID uint, year, month int) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&domain.Budget{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND year = ? AND month = ?", ownerID, year, month).
		Row().Scan(&total)
	return total, err
}

// BudgetsPerCategory returns the owner's budget amount per category id for one month
func (r *ReportRepository) BudgetsPerCategory(ctx context.Context, ownerID uint, year, month int) (map[uint]decimal.Decimal, error) {
	var budgets []domain.Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", ownerID, year, month).
		Find(&budgets).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		out[b.CategoryID] = b.Amount
	}
	return out, nil
}
