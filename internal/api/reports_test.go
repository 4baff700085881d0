package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSummaryWireFormat(t *testing.T) {
	s := newTestServer(t)
	token := s.getToken("ann@example.com")
	salary := s.create("/api/categories", token, gin.H{"name": "Salary", "is_income": true})
	food := s.create("/api/categories", token, gin.H{"name": "Food"})
	s.create("/api/incomes", token, gin.H{"category_id": salary, "amount": "5000", "date": "2025-11-01"})
	s.create("/api/expenses", token, gin.H{"category_id": food, "amount": "1500", "date": "2025-11-05"})
	s.create("/api/budgets", token, gin.H{"category_id": food, "year": 2025, "month": 11, "amount": "3000"})

	rr, env := s.do(http.MethodGet, "/api/summary", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Financial summary retrieved successfully", env.Message)
	summary := decode[SummaryView](t, env.Data)
	assert.Equal(t, "5000.00", summary.TotalEarning)
	assert.Equal(t, "1500.00", summary.TotalExpenses)
	assert.Equal(t, "3500.00", summary.TotalSaving)
	require.Len(t, summary.BudgetStats, 7)
	assert.Equal(t, budgetStatView{Date: "November 2025", TotalBudget: "3000.00", TotalExpense: "1500.00"}, summary.BudgetStats[6])
	assert.Equal(t, []categoryTotalView{{Category: "Salary", TotalIncome: "5000.00"}}, summary.IncomeCategories)
	assert.Equal(t, []categoryTotalView{{Category: "Food", TotalIncome: "1500.00"}}, summary.ExpenseCategories)
}

func TestEmptySummary(t *testing.T) {
	s := newTestServer(t)
	token := s.getToken("ann@example.com")

	rr, env := s.do(http.MethodGet, "/api/summary", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, string(env.Data), `"incomeCategories":[]`)
	summary := decode[SummaryView](t, env.Data)
	assert.Equal(t, "0.00", summary.TotalSaving)
	assert.Equal(t, "0.00", summary.TotalEarning)
}

func TestBudgetManagementWireFormat(t *testing.T) {
	s := newTestServer(t)
	token := s.getToken("ann@example.com")
	food := s.create("/api/categories", token, gin.H{"name": "Food"})
	s.create("/api/categories", token, gin.H{"name": "Rent"})
	s.create("/api/expenses", token, gin.H{"category_id": food, "amount": "1500", "date": "2025-11-05"})
	s.create("/api/budgets", token, gin.H{"category_id": food, "year": 2025, "month": 11, "amount": "3000"})

	rr, env := s.do(http.MethodGet, "/api/budget-management", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Budget management data retrieved successfully", env.Message)
	assert.Equal(t, []BudgetUsageView{
		{Category: "Food", BudgetAmt: "3000.00", ExpenseAmt: "1500.00"},
		{Category: "Rent", BudgetAmt: "0.00", ExpenseAmt: "0.00"},
	}, decode[[]BudgetUsageView](t, env.Data))
}

type transactionsPage struct {
	Data     []TransactionView `json:"data"`
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
}

func seedExpenses(s *testServer, token string, n int) {
	food := s.create("/api/categories", token, gin.H{"name": "Food"})
	for i := 1; i <= n; i++ {
		s.create("/api/expenses", token, gin.H{"category_id": food, "amount": i, "date": fmt.Sprintf("2025-10-%02d", i)})
	}
}

func TestTransactionsPagination(t *testing.T) {
	s := newTestServer(t)
	token := s.getToken("ann@example.com")
	seedExpenses(s, token, 12)

	rr, env := s.do(http.MethodGet, "/api/transactions", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Transactions retrieved successfully", env.Message)
	first := decode[transactionsPage](t, env.Data)
	assert.Equal(t, 12, first.Count)
	require.Len(t, first.Data, 10)
	assert.Equal(t, "2025-10-12", first.Data[0].Date)
	assert.Equal(t, "12.00", first.Data[0].Amount)
	assert.Equal(t, "Food", first.Data[0].Category)
	assert.False(t, first.Data[0].IsIncome)
	require.NotNil(t, first.Next)
	assert.Contains(t, *first.Next, "page=2")
	assert.Nil(t, first.Previous)

	rr, env = s.do(http.MethodGet, "/api/transactions?page=2", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	second := decode[transactionsPage](t, env.Data)
	assert.Len(t, second.Data, 2)
	assert.Nil(t, second.Next)
	require.NotNil(t, second.Previous)
	assert.NotContains(t, *second.Previous, "page=")

	rr, env = s.do(http.MethodGet, "/api/transactions?page=3", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Invalid page.", env.Message)

	rr, env = s.do(http.MethodGet, "/api/transactions?page_size=5&page=3", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[transactionsPage](t, env.Data).Data, 2)

	rr, env = s.do(http.MethodGet, "/api/transactions?page_size=1000", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[transactionsPage](t, env.Data).Data, 12)
}

func TestTransactionsFilters(t *testing.T) {
	s := newTestServer(t)
	token := s.getToken("ann@example.com")
	seedExpenses(s, token, 5)
	salary := s.create("/api/categories", token, gin.H{"name": "Salary", "is_income": true})
	balance := s.create("/api/categories", token, gin.H{"name": "Balance", "is_income": true})
	s.create("/api/incomes", token, gin.H{"category_id": salary, "amount": "5000", "date": "2025-10-03"})
	s.create("/api/incomes", token, gin.H{"category_id": balance, "amount": "100", "date": "2025-10-03"})

	for query, want := range map[string]int{
		"":                    6,
		"?is_income=true":     1,
		"?is_income=1":        1,
		"?is_income=false":    5,
		"?is_income=whatever": 5,
		"?category=foo":       5,
		"?date=2025-10-03":    2,
		"?date_from=2025-10-02&date_to=2025-10-04": 4,
		"?date_from=not-a-date":                    6,
		"?amount_min=3&amount_max=4":               2,
		"?amount_min=abc":                          6,
	} {
		rr, env := s.do(http.MethodGet, "/api/transactions"+query, token, nil)
		require.Equal(t, http.StatusOK, rr.Code, query)
		assert.Equal(t, want, decode[transactionsPage](t, env.Data).Count, query)
	}
}

func TestTransactionsEmptyFirstPage(t *testing.T) {
	s := newTestServer(t)
	token := s.getToken("ann@example.com")

	rr, env := s.do(http.MethodGet, "/api/transactions", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	page := decode[transactionsPage](t, env.Data)
	assert.Zero(t, page.Count)
	assert.Empty(t, page.Data)
}

func exportRequest(s *testServer, token, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/transactions/export"+query, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func TestExportCSV(t *testing.T) {
	s := newTestServer(t)
	token := s.getToken("ann@example.com")
	seedExpenses(s, token, 3)

	rr := exportRequest(s, token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rr.Header().Get("Content-Disposition"), ".csv")

	rows, err := csv.NewReader(bytes.NewReader(rr.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Date", "Type", "Category", "Amount", "Note"}, rows[0])
	assert.Equal(t, []string{"2025-10-03", "Expense", "Food", "3.00", ""}, rows[1])
}

func TestExportXLSX(t *testing.T) {
	s := newTestServer(t)
	token := s.getToken("ann@example.com")
	seedExpenses(s, token, 2)

	rr := exportRequest(s, token, "?format=xlsx")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, xlsxMIME, rr.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Category", rows[0][2])
	assert.Equal(t, "Food", rows[1][2])
	assert.Equal(t, "2", rows[1][3])
}

func TestExportUnknownFormat(t *testing.T) {
	s := newTestServer(t)
	token := s.getToken("ann@example.com")

	rr := exportRequest(s, token, "?format=pdf")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
