package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceCategoryName is the category name whose incomes never count towards earnings.
const BalanceCategoryName = "Balance"

// EntryFields holds the columns shared by incomes and expenses
type EntryFields struct {
	ID         uint            `gorm:"primaryKey"`                  // Primary key
	UserID     uint            `gorm:"not null;index"`              // Owner
	CategoryID uint            `gorm:"not null;index"`              // Foreign key to Category
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"` // Positive amount
	Date       time.Time       `gorm:"type:date;not null;index"`    // User supplied date
	Note       string          `gorm:"type:text"`                   // Optional note
	CreatedAt  time.Time       // Server assigned
}

// Income Model
type Income struct {
	EntryFields
	User     User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`  // Owner relation
	Category Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"` // Referenced categories cannot be deleted
}

// ToEntry converts the row into a kind-tagged entry
func (i Income) ToEntry() Entry {
	return Entry{EntryFields: i.EntryFields, Category: i.Category, Kind: KindIncome}
}

// Expense Model
type Expense struct {
	EntryFields
	User     User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`  // Owner relation
	Category Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"` // Referenced categories cannot be deleted
}

// ToEntry converts the row into a kind-tagged entry
func (e Expense) ToEntry() Entry {
	return Entry{EntryFields: e.EntryFields, Category: e.Category, Kind: KindExpense}
}

// Entry is an income or expense row together with its category
type Entry struct {
	EntryFields
	Category Category
	Kind     EntryKind
}

// EntryKind tells incomes and expenses apart
type EntryKind int

const (
	KindIncome EntryKind = iota
	KindExpense
)

// String returns the entry kind name
func (k EntryKind) String() string {
	if k == KindIncome {
		return "Income"
	}
	return "Expense"
}

// AcceptsCategory reports whether a category may carry entries of this kind
func (k EntryKind) AcceptsCategory(c Category) bool {
	return c.IsIncome == (k == KindIncome)
}

// Table returns the table holding entries of this kind
func (k EntryKind) Table() string {
	if k == KindIncome {
		return "incomes"
	}
	return "expenses"
}

// NewRecord wraps the fields into the gorm model of this kind
func (k EntryKind) NewRecord(f EntryFields) any {
	if k == KindIncome {
		return &Income{EntryFields: f}
	}
	return &Expense{EntryFields: f}
}
