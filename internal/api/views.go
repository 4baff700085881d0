package api

import (
	"time" // Timestamps

	"finance_tracker/internal/domain"  // Importing domain models
	"finance_tracker/internal/service" // Report types

	"github.com/shopspring/decimal" // Decimal amounts
)

// money renders amounts with two decimals
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// CategoryView is the wire form of a category
type CategoryView struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	IsIncome bool   `json:"is_income"`
}

func categoryView(c domain.Category) CategoryView {
	return CategoryView{ID: c.ID, Name: c.Name, IsIncome: c.IsIncome}
}

// EntryView is the wire form of an income or expense
type EntryView struct {
	ID            uint         `json:"id"`
	Category      CategoryView `json:"category"`
	Amount        string       `json:"amount"`
	Date          string       `json:"date"`
	Note          string       `json:"note"`
	CreatedAt     time.Time    `json:"created_at"`
	IsIncomeEntry bool         `json:"is_income_entry"`
}

func entryView(e domain.Entry) EntryView {
	return EntryView{
		ID:            e.ID,
		Category:      categoryView(e.Category),
		Amount:        money(e.Amount),
		Date:          e.Date.Format(service.DateLayout),
		Note:          e.Note,
		CreatedAt:     e.CreatedAt,
		IsIncomeEntry: e.Kind == domain.KindIncome,
	}
}

// BudgetView is the wire form of a budget
type BudgetView struct {
	ID        uint         `json:"id"`
	Category  CategoryView `json:"category"`
	Year      int          `json:"year"`
	Month     int          `json:"month"`
	Amount    string       `json:"amount"`
	CreatedAt time.Time    `json:"created_at"`
}

func budgetView(b domain.Budget) BudgetView {
	return BudgetView{
		ID:        b.ID,
		Category:  categoryView(b.Category),
		Year:      b.Year,
		Month:     b.Month,
		Amount:    money(b.Amount),
		CreatedAt: b.CreatedAt,
	}
}

// UserView is the wire form of an account; secrets are never rendered
type UserView struct {
	ID         uint       `json:"id"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login"`
}

func userView(u *domain.User) UserView {
	return UserView{ID: u.ID, Email: u.Email, Username: u.Username, DateJoined: u.CreatedAt, LastLogin: u.LastLogin}
}

// TransactionView is one row of the merged transactions feed
type TransactionView struct {
	ID       uint   `json:"id"`
	Note     string `json:"note"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	IsIncome bool   `json:"is_income"`
}

func transactionView(e domain.Entry) TransactionView {
	return TransactionView{
		ID:       e.ID,
		Note:     e.Note,
		Category: e.Category.Name,
		Amount:   money(e.Amount),
		Date:     e.Date.Format(service.DateLayout),
		IsIncome: e.Kind == domain.KindIncome,
	}
}

type budgetStatView struct {
	Date         string `json:"date"`
	TotalBudget  string `json:"totalBudget"`
	TotalExpense string `json:"totalExpense"`
}

// categoryTotalView keeps the totalincome key for expense rows too, clients read both the same way
type categoryTotalView struct {
	Category    string `json:"category"`
	TotalIncome string `json:"totalincome"`
}

// SummaryView is the wire form of the financial summary
type SummaryView struct {
	BudgetStats       []budgetStatView    `json:"budgetStats"`
	IncomeCategories  []categoryTotalView `json:"incomeCategories"`
	ExpenseCategories []categoryTotalView `json:"expenseCategories"`
	TotalSaving       string              `json:"totalSaving"`
	TotalEarning      string              `json:"totalEarning"`
	TotalExpenses     string              `json:"totalExpenses"`
}

func summaryView(s *service.FinancialSummary) SummaryView {
	v := SummaryView{
		BudgetStats:       make([]budgetStatView, 0, len(s.BudgetTrend)),
		IncomeCategories:  make([]categoryTotalView, 0, len(s.IncomeByCategory)),
		ExpenseCategories: make([]categoryTotalView, 0, len(s.ExpenseByCategory)),
		TotalSaving:       money(s.TotalSaving),
		TotalEarning:      money(s.TotalIncome),
		TotalExpenses:     money(s.TotalExpense),
	}
	for _, m := range s.BudgetTrend {
		v.BudgetStats = append(v.BudgetStats, budgetStatView{Date: m.Label, TotalBudget: money(m.TotalBudget), TotalExpense: money(m.TotalExpense)})
	}
	for _, t := range s.IncomeByCategory {
		v.IncomeCategories = append(v.IncomeCategories, categoryTotalView{Category: t.Category, TotalIncome: money(t.Total)})
	}
	for _, t := range s.ExpenseByCategory {
		v.ExpenseCategories = append(v.ExpenseCategories, categoryTotalView{Category: t.Category, TotalIncome: money(t.Total)})
	}
	return v
}

// BudgetUsageView is one row of the budget management table
type BudgetUsageView struct {
	Category   string `json:"category"`
	BudgetAmt  string `json:"budgetAmt"`
	ExpenseAmt string `json:"expenseAmt"`
}

func budgetUsageViews(rows []service.BudgetUsage) []BudgetUsageView {
	out := make([]BudgetUsageView, 0, len(rows))
	for _, r := range rows {
		out = append(out, BudgetUsageView{Category: r.Category, BudgetAmt: money(r.Budget), ExpenseAmt: money(r.Spent)})
	}
	return out
}
