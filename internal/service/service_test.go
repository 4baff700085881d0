package service

import (
	"context"
	"testing"
	"time"

	"finance_tracker/internal/db/dbtest"
	"finance_tracker/internal/domain"
	"finance_tracker/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// november15 is the fixed "now" of most tests
var november15 = time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	svc   *Service
	repos *repository.Repositories
	mr    *miniredis.Miniredis
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repos := repository.New(dbtest.Open(t))
	svc := New(repos, rdb, Options{
		JWTSecret:  "test-secret",
		BcryptCost: bcrypt.MinCost,
		Now:        func() time.Time { return now },
	})
	return &testEnv{svc: svc, repos: repos, mr: mr}
}

func (e *testEnv) user(t *testing.T, email string) *domain.User {
	t.Helper()
	u, _, err := e.svc.Register(context.Background(), email, "s3cret-pass")
	require.NoError(t, err)
	return u
}

func (e *testEnv) category(t *testing.T, owner uint, name string, isIncome bool) *domain.Category {
	t.Helper()
	c, err := e.svc.CreateCategory(context.Background(), owner, CategoryInput{Name: &name, IsIncome: &isIncome})
	require.NoError(t, err)
	return c
}

func (e *testEnv) entry(t *testing.T, kind domain.EntryKind, owner, categoryID uint, amount, date string) *domain.Entry {
	t.Helper()
	en, err := e.svc.CreateEntry(context.Background(), kind, owner, entryInput(categoryID, amount, date))
	require.NoError(t, err)
	return en
}

func (e *testEnv) budget(t *testing.T, owner, categoryID uint, year, month int, amount string) *domain.Budget {
	t.Helper()
	b, err := e.svc.CreateBudget(context.Background(), owner, budgetInput(categoryID, year, month, amount))
	require.NoError(t, err)
	return b
}

func entryInput(categoryID uint, amount, date string) EntryInput {
	a := decimal.RequireFromString(amount)
	return EntryInput{CategoryID: &categoryID, Amount: &a, Date: &date}
}

func budgetInput(categoryID uint, year, month int, amount string) BudgetInput {
	a := decimal.RequireFromString(amount)
	return BudgetInput{CategoryID: &categoryID, Year: &year, Month: &month, Amount: &a}
}

// requireField asserts err is a validation error carrying msg for field
func requireField(t *testing.T, err error, field, msg string) {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields[field], msg, "fields: %v", verr.Fields)
}

func ptr[T any](v T) *T { return &v }
