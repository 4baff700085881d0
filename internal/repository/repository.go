// Package repository holds the storage calls. Every call that touches owned rows takes
// the owner's user id explicitly, so no query can run unscoped.
package repository

import (
	"errors"
	"strings"

	"finance_tracker/internal/domain"

	"gorm.io/gorm"
)

// Repositories groups the per-entity repositories over one connection
type Repositories struct {
	Users      *UserRepository
	Categories *CategoryRepository
	Incomes    *EntryRepository
	Expenses   *EntryRepository
	Budgets    *BudgetRepository
	Reports    *ReportRepository
}

// New builds every repository on db
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:      &UserRepository{db: db},
		Categories: &CategoryRepository{db: db},
		Incomes:    &EntryRepository{db: db, kind: domain.KindIncome},
		Expenses:   &EntryRepository{db: db, kind: domain.KindExpense},
		Budgets:    &BudgetRepository{db: db},
		Reports:    &ReportRepository{db: db},
	}
}

// Entries returns the repository for one entry kind
func (r *Repositories) Entries(kind domain.EntryKind) *EntryRepository {
	if kind == domain.KindIncome {
		return r.Incomes
	}
	return r.Expenses
}

// notFound maps gorm's missing row error onto the domain error
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// budgetTriggerError maps the storage trigger rejection onto a validation error
func budgetTriggerError(err error) error {
	if err != nil && strings.Contains(err.Error(), domain.BudgetCategoryMessage) {
		return domain.NewValidationError("category_id", domain.BudgetCategoryMessage)
	}
	return err
}

// sqliteForeignKeyFailure is how SQLite words a blocked delete. A RESTRICT action is reported
// as SQLITE_CONSTRAINT_TRIGGER, which gorm's sqlite dialector does not translate.
const sqliteForeignKeyFailure = "FOREIGN KEY constraint failed"

// isForeignKeyViolation reports whether err is a foreign key refusal on any dialect
func isForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(err.Error(), sqliteForeignKeyFailure)
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike escapes LIKE wildcards using '!' as the escape character
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
