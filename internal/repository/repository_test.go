package repository

import (
	"context"
	"testing"
	"time"

	"finance_tracker/internal/db/dbtest"
	"finance_tracker/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repos *Repositories
	user  *domain.User
	other *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := New(dbtest.Open(t))
	ctx := context.Background()
	user := &domain.User{Email: "ann@example.com", Username: "ann@example.com", Password: "x"}
	other := &domain.User{Email: "bob@example.com", Username: "bob@example.com", Password: "x"}
	require.NoError(t, repos.Users.Create(ctx, user))
	require.NoError(t, repos.Users.Create(ctx, other))
	return &fixture{repos: repos, user: user, other: other}
}

func (f *fixture) category(t *testing.T, owner *domain.User, name string, isIncome bool) *domain.Category {
	t.Helper()
	c := &domain.Category{UserID: owner.ID, Name: name, IsIncome: isIncome}
	require.NoError(t, f.repos.Categories.Create(context.Background(), c))
	return c
}

func (f *fixture) entry(t *testing.T, kind domain.EntryKind, c *domain.Category, amount, date string) *domain.Entry {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	e := &domain.Entry{Kind: kind, EntryFields: domain.EntryFields{
		UserID: c.UserID, CategoryID: c.ID, Amount: decimal.RequireFromString(amount), Date: d,
	}}
	require.NoError(t, f.repos.Entries(kind).Create(context.Background(), e))
	return e
}

func TestBudgetTriggerRejectsIncomeCategory(t *testing.T) {
	f := newFixture(t)
	salary := f.category(t, f.user, "Salary", true)

	err := f.repos.Budgets.Create(context.Background(), &domain.Budget{
		UserID: f.user.ID, CategoryID: salary.ID, Year: 2025, Month: 11, Amount: decimal.NewFromInt(100),
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{domain.BudgetCategoryMessage}, verr.Fields["category_id"])
}

func TestBudgetTriggerGuardsUpdates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	food := f.category(t, f.user, "Food", false)
	salary := f.category(t, f.user, "Salary", true)

	b := &domain.Budget{UserID: f.user.ID, CategoryID: food.ID, Year: 2025, Month: 11, Amount: decimal.NewFromInt(100)}
	require.NoError(t, f.repos.Budgets.Create(ctx, b))

	b.CategoryID = salary.ID
	var verr *domain.ValidationError
	require.ErrorAs(t, f.repos.Budgets.Update(ctx, b), &verr)
}

func TestDeleteReferencedCategoryIsRefused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	food := f.category(t, f.user, "Food", false)
	f.entry(t, domain.KindExpense, food, "12.50", "2025-11-03")

	inUse, err := f.repos.Categories.InUse(ctx, f.user.ID, food.ID)
	require.NoError(t, err)
	assert.True(t, inUse)
	assert.ErrorIs(t, f.repos.Categories.Delete(ctx, f.user.ID, food.ID), domain.ErrConflict)

	unused := f.category(t, f.user, "Travel", false)
	assert.NoError(t, f.repos.Categories.Delete(ctx, f.user.ID, unused.ID))
}

func TestOwnerScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	food := f.category(t, f.user, "Food", false)
	e := f.entry(t, domain.KindExpense, food, "10", "2025-11-03")

	_, err := f.repos.Categories.Get(ctx, f.other.ID, food.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.repos.Expenses.Get(ctx, f.other.ID, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.repos.Expenses.Delete(ctx, f.other.ID, e.ID), domain.ErrNotFound)

	list, err := f.repos.Expenses.List(ctx, f.other.ID, EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNameTakenIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	food := f.category(t, f.user, "Food", false)

	taken, err := f.repos.Categories.NameTaken(ctx, f.user.ID, "FOOD", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = f.repos.Categories.NameTaken(ctx, f.user.ID, "food", food.ID)
	require.NoError(t, err)
	assert.False(t, taken, "a category does not clash with itself")

	taken, err = f.repos.Categories.NameTaken(ctx, f.other.ID, "Food", 0)
	require.NoError(t, err)
	assert.False(t, taken, "names are unique per user only")
}

func TestEntryListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	salary := f.category(t, f.user, "Salary", true)
	balance := f.category(t, f.user, domain.BalanceCategoryName, true)
	bonus := f.category(t, f.user, "100%_Bonus", true)

	f.entry(t, domain.KindIncome, salary, "5000", "2025-11-01")
	f.entry(t, domain.KindIncome, salary, "4000", "2025-10-01")
	f.entry(t, domain.KindIncome, balance, "900", "2025-11-02")
	f.entry(t, domain.KindIncome, bonus, "250", "2025-11-05")

	all, err := f.repos.Incomes.List(ctx, f.user.ID, EntryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "2025-11-05", all[0].Date.Format("2006-01-02"), "newest first")
	assert.Equal(t, "100%_Bonus", all[0].Category.Name, "category is preloaded")
	assert.Equal(t, domain.KindIncome, all[0].Kind)

	noBalance, err := f.repos.Incomes.List(ctx, f.user.ID, EntryFilter{ExcludeBalance: true})
	require.NoError(t, err)
	assert.Len(t, noBalance, 3)

	byName, err := f.repos.Incomes.List(ctx, f.user.ID, EntryFilter{Category: "SAL"})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	literal, err := f.repos.Incomes.List(ctx, f.user.ID, EntryFilter{Category: "%_"})
	require.NoError(t, err)
	require.Len(t, literal, 1, "LIKE wildcards are matched literally")

	from := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)
	window, err := f.repos.Incomes.List(ctx, f.user.ID, EntryFilter{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	assert.Len(t, window, 2)

	lo, hi := decimal.NewFromInt(500), decimal.NewFromInt(4500)
	byAmount, err := f.repos.Incomes.List(ctx, f.user.ID, EntryFilter{AmountMin: &lo, AmountMax: &hi})
	require.NoError(t, err)
	require.Len(t, byAmount, 2)
	assert.True(t, byAmount[0].Amount.Equal(decimal.NewFromInt(900)))
}

func TestReportSums(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	salary := f.category(t, f.user, "Salary", true)
	balance := f.category(t, f.user, domain.BalanceCategoryName, true)
	food := f.category(t, f.user, "Food", false)
	rent := f.category(t, f.user, "Rent", false)

	f.entry(t, domain.KindIncome, salary, "5000", "2025-11-01")
	f.entry(t, domain.KindIncome, balance, "700", "2025-11-01")
	f.entry(t, domain.KindExpense, food, "300", "2025-11-10")
	f.entry(t, domain.KindExpense, rent, "1200", "2025-11-01")
	f.entry(t, domain.KindExpense, food, "80", "2025-10-31")
	require.NoError(t, f.repos.Budgets.Create(ctx, &domain.Budget{UserID: f.user.ID, CategoryID: food.ID, Year: 2025, Month: 11, Amount: decimal.NewFromInt(1000)}))
	require.NoError(t, f.repos.Budgets.Create(ctx, &domain.Budget{UserID: f.user.ID, CategoryID: rent.ID, Year: 2025, Month: 11, Amount: decimal.NewFromInt(2000)}))

	income, err := f.repos.Reports.SumEntries(ctx, f.user.ID, domain.KindIncome, true, nil, nil)
	require.NoError(t, err)
	assert.True(t, income.Equal(decimal.NewFromInt(5000)), income.String())

	from := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	november, err := f.repos.Reports.SumEntries(ctx, f.user.ID, domain.KindExpense, false, &from, &to)
	require.NoError(t, err)
	assert.True(t, november.Equal(decimal.NewFromInt(1500)), november.String())

	byCategory, err := f.repos.Reports.SumEntriesByCategory(ctx, f.user.ID, domain.KindExpense, false)
	require.NoError(t, err)
	require.Len(t, byCategory, 2)
	assert.Equal(t, "Food", byCategory[0].Category)
	assert.True(t, byCategory[0].Total.Equal(decimal.NewFromInt(380)))

	perCategory, err := f.repos.Reports.SumExpensesPerCategory(ctx, f.user.ID, from, to)
	require.NoError(t, err)
	assert.True(t, perCategory[food.ID].Equal(decimal.NewFromInt(300)))

	budgets, err := f.repos.Reports.SumBudgets(ctx, f.user.ID, 2025, 11)
	require.NoError(t, err)
	assert.True(t, budgets.Equal(decimal.NewFromInt(3000)))

	empty, err := f.repos.Reports.SumBudgets(ctx, f.other.ID, 2025, 11)
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}
