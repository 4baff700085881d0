package repository

import (
	"context"

	"finance_tracker/internal/domain"

	"gorm.io/gorm"
)

// CategoryRepository stores categories
type CategoryRepository struct {
	db *gorm.DB
}

// List returns the owner's categories by name, optionally only one kind
func (r *CategoryRepository) List(ctx context.Context, ownerID uint, isIncome *bool) ([]domain.Category, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if isIncome != nil {
		q = q.Where("is_income = ?", *isIncome)
	}
	var out []domain.Category
	err := q.Order("name ASC").Order("id ASC").Find(&out).Error
	return out, err
}

// Get loads one of the owner's categories
func (r *CategoryRepository) Get(ctx context.Context, ownerID, id uint) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", ownerID, id).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// NameTaken reports whether another category of the owner has the same name ignoring case
func (r *CategoryRepository) NameTaken(ctx context.Context, ownerID uint, name string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Category{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", ownerID, name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

// Create inserts a category for its owner
func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	return r.db.WithContext(ctx).Omit("User").Create(c).Error
}

// Update stores name and kind of an owned category
func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	return r.db.WithContext(ctx).Model(&domain.Category{}).
		Where("user_id = ? AND id = ?", c.UserID, c.ID).
		Updates(map[string]any{"name": c.Name, "is_income": c.IsIncome}).Error
}

// InUse reports whether any income, expense or budget references the category
func (r *CategoryRepository) InUse(ctx context.Context, ownerID, id uint) (bool, error) {
	for _, model := range []any{&domain.Income{}, &domain.Expense{}, &domain.Budget{}} {
		var n int64
		if err := r.db.WithContext(ctx).Model(model).
			Where("user_id = ? AND category_id = ?", ownerID, id).Count(&n).Error; err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

// Delete removes an owned category; referenced categories are refused by the foreign keys
func (r *CategoryRepository) Delete(ctx context.Context, ownerID, id uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", ownerID, id).Delete(&domain.Category{})
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return domain.ErrConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
