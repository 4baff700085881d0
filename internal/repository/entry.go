package repository

import (
	"context"
	"strings"
	"time"

	"finance_tracker/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntryFilter narrows an entry listing; zero values disable a filter
type EntryFilter struct {
	Date           *time.Time
	DateFrom       *time.Time
	DateTo         *time.Time
	Category       string // case-insensitive substring of the category name
	AmountMin      *decimal.Decimal
	AmountMax      *decimal.Decimal
	ExcludeBalance bool // skip rows whose category is named "Balance"
}

// EntryRepository stores incomes or expenses depending on kind
type EntryRepository struct {
	db   *gorm.DB
	kind domain.EntryKind
}

type entryRow interface {
	domain.Income | domain.Expense
	ToEntry() domain.Entry
}

func findEntries[T entryRow](q *gorm.DB) ([]domain.Entry, error) {
	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToEntry())
	}
	return out, nil
}

func (r *EntryRepository) find(q *gorm.DB) ([]domain.Entry, error) {
	if r.kind == domain.KindIncome {
		return findEntries[domain.Income](q)
	}
	return findEntries[domain.Expense](q)
}

// scoped starts a query over the owner's rows joined with their categories
func (r *EntryRepository) scoped(ctx context.Context, ownerID uint) *gorm.DB {
	t := r.kind.Table()
	return r.db.WithContext(ctx).
		Select(t+".*").
		Joins("JOIN categories ON categories.id = "+t+".category_id").
		Preload("Category").
		Where(t+".user_id = ?", ownerID)
}

// List returns the owner's entries newest date first, ties by creation time
func (r *EntryRepository) List(ctx context.Context, ownerID uint, f EntryFilter) ([]domain.Entry, error) {
	t := r.kind.Table()
	q := r.scoped(ctx, ownerID)
	if f.Date != nil {
		q = q.Where(t+".date = ?", *f.Date)
	}
	if f.DateFrom != nil {
		q = q.Where(t+".date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where(t+".date <= ?", *f.DateTo)
	}
	if f.Category != "" {
		q = q.Where("LOWER(categories.name) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(f.Category))+"%")
	}
	if f.AmountMin != nil {
		q = q.Where(t+".amount >= ?", *f.AmountMin)
	}
	if f.AmountMax != nil {
		q = q.Where(t+".amount <= ?", *f.AmountMax)
	}
	if f.ExcludeBalance {
		q = q.Where("categories.name <> ?", domain.BalanceCategoryName)
	}
	return r.find(q.Order(t + ".date DESC").Order(t + ".created_at DESC").Order(t + ".id DESC"))
}

// Get loads one of the owner's entries
func (r *EntryRepository) Get(ctx context.Context, ownerID, id uint) (*domain.Entry, error) {
	entries, err := r.find(r.scoped(ctx, ownerID).Where(r.kind.Table()+".id = ?", id).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrNotFound
	}
	return &entries[0], nil
}

// Create inserts the entry and fills in its id and creation time
func (r *EntryRepository) Create(ctx context.Context, e *domain.Entry) error {
	rec := r.kind.NewRecord(e.EntryFields)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error; err != nil {
		return err
	}
	created := rec.(interface{ ToEntry() domain.Entry }).ToEntry()
	e.ID, e.CreatedAt, e.Kind = created.ID, created.CreatedAt, r.kind
	return nil
}

// Update stores the writable columns of an owned entry
func (r *EntryRepository) Update(ctx context.Context, e *domain.Entry) error {
	return r.db.WithContext(ctx).Table(r.kind.Table()).
		Where("user_id = ? AND id = ?", e.UserID, e.ID).
		Updates(map[string]any{
			"category_id": e.CategoryID,
			"amount":      e.Amount,
			"date":        e.Date,
			"note":        e.Note,
		}).Error
}

// Delete removes an owned entry
func (r *EntryRepository) Delete(ctx context.Context, ownerID, id uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", ownerID, id).Delete(r.kind.NewRecord(domain.EntryFields{}))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
