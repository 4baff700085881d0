package repository

import (
	"context"

	"finance_tracker/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetRepository stores monthly budgets
type BudgetRepository struct {
	db *gorm.DB
}

// List returns the owner's budgets newest period first, optionally for one year and/or month
func (r *BudgetRepository) List(ctx context.Context, ownerID uint, year, month *int) ([]domain.Budget, error) {
	q := r.db.WithContext(ctx).Preload("Category").Where("user_id = ?", ownerID)
	if year != nil {
		q = q.Where("year = ?", *year)
	}
	if month != nil {
		q = q.Where("month = ?", *month)
	}
	var out []domain.Budget
	err := q.Order("year DESC").Order("month DESC").Order("id DESC").Find(&out).Error
	return out, err
}

// Get loads one of the owner's budgets
func (r *BudgetRepository) Get(ctx context.Context, ownerID, id uint) (*domain.Budget, error) {
	var b domain.Budget
	if err := r.db.WithContext(ctx).Preload("Category").Where("user_id = ? AND id = ?", ownerID, id).First(&b).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// Exists reports whether the owner already budgets the category for year/month
func (r *BudgetRepository) Exists(ctx context.Context, ownerID, categoryID uint, year, month int, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Budget{}).
		Where("user_id = ? AND category_id = ? AND year = ? AND month = ?", ownerID, categoryID, year, month)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

// Create inserts a budget
func (r *BudgetRepository) Create(ctx context.Context, b *domain.Budget) error {
	return budgetTriggerError(r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error)
}

// Update stores the writable columns of an owned budget
func (r *BudgetRepository) Update(ctx context.Context, b *domain.Budget) error {
	err := r.db.WithContext(ctx).Model(&domain.Budget{}).
		Where("user_id = ? AND id = ?", b.UserID, b.ID).
		Updates(map[string]any{
			"category_id": b.CategoryID,
			"year":        b.Year,
			"month":       b.Month,
			"amount":      b.Amount,
		}).Error
	return budgetTriggerError(err)
}

// Delete removes an owned budget
func (r *BudgetRepository) Delete(ctx context.Context, ownerID, id uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", ownerID, id).Delete(&domain.Budget{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
