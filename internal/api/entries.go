package api

import (
	"net/http" // HTTP status codes

	"finance_tracker/internal/domain"  // Entry kinds
	"finance_tracker/internal/service" // Business rules

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Decimal amounts
)

// EntryRequest is the income/expense body; amount accepts a JSON number or string
type EntryRequest struct {
	CategoryID *uint            `json:"category_id"`
	Amount     *decimal.Decimal `json:"amount"`
	Date       *string          `json:"date"`
	Note       *string          `json:"note"`
}

func (r EntryRequest) input() service.EntryInput {
	return service.EntryInput{CategoryID: r.CategoryID, Amount: r.Amount, Date: r.Date, Note: r.Note}
}

// The same handlers serve /incomes and /expenses, kind picks the table

// ListEntriesHandler lists the caller's entries of kind, newest first
func ListEntriesHandler(svc *service.Service, kind domain.EntryKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := svc.ListEntries(c.Request.Context(), kind, currentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]EntryView, 0, len(entries))
		for _, e := range entries {
			out = append(out, entryView(e))
		}
		respondOK(c, http.StatusOK, out, msgListed)
	}
}

// CreateEntryHandler records an income or expense
func CreateEntryHandler(svc *service.Service, kind domain.EntryKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EntryRequest
		if err := bindJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
		entry, err := svc.CreateEntry(c.Request.Context(), kind, currentUserID(c), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusCreated, entryView(*entry), msgCreated)
	}
}

// GetEntryHandler returns one of the caller's entries
func GetEntryHandler(svc *service.Service, kind domain.EntryKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		entry, err := svc.GetEntry(c.Request.Context(), kind, currentUserID(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, entryView(*entry), msgRetrieved)
	}
}

// UpdateEntryHandler serves PUT and, with partial set, PATCH
func UpdateEntryHandler(svc *service.Service, kind domain.EntryKind, partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var req EntryRequest
		if err := bindJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
		entry, err := svc.UpdateEntry(c.Request.Context(), kind, currentUserID(c), id, req.input(), partial)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, entryView(*entry), msgUpdated)
	}
}

// DeleteEntryHandler deletes one of the caller's entries
func DeleteEntryHandler(svc *service.Service, kind domain.EntryKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := svc.DeleteEntry(c.Request.Context(), kind, currentUserID(c), id); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, nil, msgDeleted)
	}
}
