package service

import (
	"context"
	"testing"

	"finance_tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBudgetRules(t *testing.T) {
	env := newTestEnv(t, november15)
	ctx := context.Background()
	ann := env.user(t, "ann@example.com")
	bob := env.user(t, "bob@example.com")
	food := env.category(t, ann.ID, "Food", false)
	salary := env.category(t, ann.ID, "Salary", true)
	bobs := env.category(t, bob.ID, "Food", false)

	_, err := env.svc.CreateBudget(ctx, ann.ID, BudgetInput{Year: ptr(2025), Month: ptr(11), Amount: nil})
	requireField(t, err, "category_id", msgRequired)
	requireField(t, err, "amount", msgRequired)

	_, err = env.svc.CreateBudget(ctx, ann.ID, budgetInput(bobs.ID, 2025, 11, "10"))
	requireField(t, err, "category_id", invalidPK(bobs.ID))

	_, err = env.svc.CreateBudget(ctx, ann.ID, budgetInput(salary.ID, 2025, 11, "10"))
	requireField(t, err, "category_id", domain.BudgetCategoryMessage)

	_, err = env.svc.CreateBudget(ctx, ann.ID, budgetInput(food.ID, 2025, 11, "0"))
	requireField(t, err, "amount", msgAmountPositive)

	_, err = env.svc.CreateBudget(ctx, ann.ID, budgetInput(food.ID, 2025, 13, "10"))
	requireField(t, err, "month", msgMonthRange)

	_, err = env.svc.CreateBudget(ctx, ann.ID, budgetInput(food.ID, 1999, 12, "10"))
	requireField(t, err, "year", msgYearRange)

	b, err := env.svc.CreateBudget(ctx, ann.ID, budgetInput(food.ID, 2025, 11, "3000"))
	require.NoError(t, err)
	assert.Equal(t, "Food", b.Category.Name)

	_, err = env.svc.CreateBudget(ctx, ann.ID, budgetInput(food.ID, 2025, 11, "10"))
	requireField(t, err, domain.NonFieldErrors, "A budget for category 'Food' in November 2025 already exists.")

	// Another month is a different budget
	_, err = env.svc.CreateBudget(ctx, ann.ID, budgetInput(food.ID, 2025, 12, "10"))
	assert.NoError(t, err)
}

func TestUpdateBudget(t *testing.T) {
	env := newTestEnv(t, november15)
	ctx := context.Background()
	u := env.user(t, "ann@example.com")
	food := env.category(t, u.ID, "Food", false)
	b := env.budget(t, u.ID, food.ID, 2025, 11, "100")
	other := env.budget(t, u.ID, food.ID, 2025, 10, "100")

	updated, err := env.svc.UpdateBudget(ctx, u.ID, b.ID, BudgetInput{Amount: budgetInput(0, 0, 0, "250").Amount}, true)
	require.NoError(t, err)
	assert.Equal(t, "250.00", updated.Amount.StringFixed(2))

	// Saving a budget onto itself is not a duplicate, moving onto another one is
	_, err = env.svc.UpdateBudget(ctx, u.ID, b.ID, BudgetInput{Month: ptr(11)}, true)
	require.NoError(t, err)
	_, err = env.svc.UpdateBudget(ctx, u.ID, other.ID, BudgetInput{Month: ptr(11)}, true)
	requireField(t, err, domain.NonFieldErrors, "A budget for category 'Food' in November 2025 already exists.")
}

func TestListBudgetsFilters(t *testing.T) {
	env := newTestEnv(t, november15)
	ctx := context.Background()
	u := env.user(t, "ann@example.com")
	food := env.category(t, u.ID, "Food", false)
	env.budget(t, u.ID, food.ID, 2025, 11, "100")
	env.budget(t, u.ID, food.ID, 2025, 10, "100")
	env.budget(t, u.ID, food.ID, 2024, 11, "100")

	all, err := env.svc.ListBudgets(ctx, u.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 2025, all[0].Year)
	assert.Equal(t, 11, all[0].Month)

	novembers, err := env.svc.ListBudgets(ctx, u.ID, nil, ptr(11))
	require.NoError(t, err)
	assert.Len(t, novembers, 2)

	one, err := env.svc.ListBudgets(ctx, u.ID, ptr(2025), ptr(10))
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestPutBudgetRequiresCategory(t *testing.T) {
	env := newTestEnv(t, november15)
	ctx := context.Background()
	u := env.user(t, "ann@example.com")
	food := env.category(t, u.ID, "Food", false)
	b := env.budget(t, u.ID, food.ID, 2025, 11, "100")

	full := budgetInput(food.ID, 2025, 12, "400")
	full.CategoryID = nil
	_, err := env.svc.UpdateBudget(ctx, u.ID, b.ID, full, false)
	requireField(t, err, "category_id", msgRequired)

	got, err := env.svc.GetBudget(ctx, u.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 11, got.Month, "rejected update leaves the budget unchanged")

	// PATCH keeps the stored category
	updated, err := env.svc.UpdateBudget(ctx, u.ID, b.ID, full, true)
	require.NoError(t, err)
	assert.Equal(t, food.ID, updated.CategoryID)
	assert.Equal(t, 12, updated.Month)
}
