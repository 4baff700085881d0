package api

import (
	"net/http" // HTTP status codes

	"finance_tracker/internal/service" // Business rules

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Decimal amounts
)

// BudgetRequest is the budget body
type BudgetRequest struct {
	CategoryID *uint            `json:"category_id"`
	Year       *int             `json:"year"`
	Month      *int             `json:"month"`
	Amount     *decimal.Decimal `json:"amount"`
}

func (r BudgetRequest) input() service.BudgetInput {
	return service.BudgetInput{CategoryID: r.CategoryID, Year: r.Year, Month: r.Month, Amount: r.Amount}
}

// ListBudgetsHandler lists the caller's budgets; ?year= and ?month= filter, non numeric values are ignored
func ListBudgetsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		budgets, err := svc.ListBudgets(c.Request.Context(), currentUserID(c), queryInt(c, "year"), queryInt(c, "month"))
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]BudgetView, 0, len(budgets))
		for _, b := range budgets {
			out = append(out, budgetView(b))
		}
		respondOK(c, http.StatusOK, out, msgListed)
	}
}

// CreateBudgetHandler creates a monthly budget
func CreateBudgetHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BudgetRequest
		if err := bindJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
		budget, err := svc.CreateBudget(c.Request.Context(), currentUserID(c), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusCreated, budgetView(*budget), msgCreated)
	}
}

// GetBudgetHandler returns one of the caller's budgets
func GetBudgetHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		budget, err := svc.GetBudget(c.Request.Context(), currentUserID(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, budgetView(*budget), msgRetrieved)
	}
}

// UpdateBudgetHandler serves PUT and, with partial set, PATCH
func UpdateBudgetHandler(svc *service.Service, partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var req BudgetRequest
		if err := bindJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
		budget, err := svc.UpdateBudget(c.Request.Context(), currentUserID(c), id, req.input(), partial)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, budgetView(*budget), msgUpdated)
	}
}

// DeleteBudgetHandler deletes one of the caller's budgets
func DeleteBudgetHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := svc.DeleteBudget(c.Request.Context(), currentUserID(c), id); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, nil, msgDeleted)
	}
}
