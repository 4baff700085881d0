package api

import (
	"net/http" // HTTP status codes

	"finance_tracker/internal/service" // Reporting engine

	"github.com/gin-gonic/gin" // Gin web framework
)

// SummaryHandler returns the caller's dashboard summary
func SummaryHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := svc.Summary(c.Request.Context(), currentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, summaryView(summary), "Financial summary retrieved successfully")
	}
}

// BudgetManagementHandler returns this month's budget against spending per expense category
func BudgetManagementHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := svc.BudgetManagement(c.Request.Context(), currentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, budgetUsageViews(rows), "Budget management data retrieved successfully")
	}
}
