package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget Model
type Budget struct {
	ID         uint            `gorm:"primaryKey"`                             // Primary key
	UserID     uint            `gorm:"not null;uniqueIndex:idx_budget_period"` // Owner
	CategoryID uint            `gorm:"not null;uniqueIndex:idx_budget_period"` // Expense category
	Year       int             `gorm:"not null;uniqueIndex:idx_budget_period"` // 2000..2100
	Month      int             `gorm:"not null;uniqueIndex:idx_budget_period"` // 1..12
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`            // Positive amount
	CreatedAt  time.Time       // Server assigned
	User       User            `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`  // Owner relation
	Category   Category        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"` // Referenced categories cannot be deleted
}

// BudgetCategoryMessage is the rejection for budgets on income categories, shared with the storage trigger
const BudgetCategoryMessage = "Budget can only be associated with expense categories (is_income=False)."
