package api

import (
	"net/http" // HTTP status codes
	"time"     // Date filters

	"finance_tracker/internal/domain"  // Importing domain models
	"finance_tracker/internal/service" // Business rules

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Amount filters
)

// transactionFilter reads the feed filters from the query; malformed dates and amounts are ignored
func transactionFilter(c *gin.Context) service.TransactionFilter {
	f := service.TransactionFilter{IsIncome: queryBool(c, "is_income")}
	f.Date = queryDate(c, "date")
	f.DateFrom = queryDate(c, "date_from")
	f.DateTo = queryDate(c, "date_to")
	f.Category = c.Query("category")
	f.AmountMin = queryDecimal(c, "amount_min")
	f.AmountMax = queryDecimal(c, "amount_max")
	return f
}

func queryDate(c *gin.Context, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	d, err := service.ParseDate(raw)
	if err != nil {
		return nil
	}
	return &d
}

func queryDecimal(c *gin.Context, key string) *decimal.Decimal {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}

// TransactionsHandler returns one page of the merged income/expense feed
func TransactionsHandler(svc *service.Service, pager Paginator) gin.HandlerFunc {
	return func(c *gin.Context) {
		feed, err := svc.Transactions(c.Request.Context(), currentUserID(c), transactionFilter(c))
		if err != nil {
			respondError(c, err)
			return
		}
		pg, err := pager.Paginate(c, len(feed))
		if err != nil {
			respondError(c, err)
			return
		}
		rows := make([]TransactionView, 0, pg.End-pg.Start)
		for _, e := range feed[pg.Start:pg.End] {
			rows = append(rows, transactionView(e))
		}
		respondOK(c, http.StatusOK, gin.H{
			"data":     rows,
			"count":    len(feed),
			"next":     pg.Next,
			"previous": pg.Previous,
		}, "Transactions retrieved successfully")
	}
}

// ExportTransactionsHandler streams the whole filtered feed as csv (default) or xlsx
func ExportTransactionsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		format := c.DefaultQuery("format", formatCSV)
		if format != formatCSV && format != formatXLSX {
			respondError(c, domain.NewValidationError("format", "Unsupported format. Use csv or xlsx."))
			return
		}
		feed, err := svc.Transactions(c.Request.Context(), currentUserID(c), transactionFilter(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if err := writeExport(c, format, feed); err != nil {
			respondError(c, err)
		}
	}
}
