package api

import (
	"net/http" // HTTP status codes

	"finance_tracker/internal/service" // Business rules

	"github.com/gin-gonic/gin" // Gin web framework
)

// CategoryRequest is the category body; absent fields stay nil
type CategoryRequest struct {
	Name     *string `json:"name"`
	IsIncome *bool   `json:"is_income"`
}

func (r CategoryRequest) input() service.CategoryInput {
	return service.CategoryInput{Name: r.Name, IsIncome: r.IsIncome}
}

// ListCategoriesHandler lists the caller's categories, ?is_income=true|1 for income ones
func ListCategoriesHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.ListCategories(c.Request.Context(), currentUserID(c), queryBool(c, "is_income"))
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]CategoryView, 0, len(categories))
		for _, cat := range categories {
			out = append(out, categoryView(cat))
		}
		respondOK(c, http.StatusOK, out, msgListed)
	}
}

// CreateCategoryHandler creates a category for the caller
func CreateCategoryHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest
		if err := bindJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
		cat, err := svc.CreateCategory(c.Request.Context(), currentUserID(c), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusCreated, categoryView(*cat), msgCreated)
	}
}

// GetCategoryHandler returns one of the caller's categories
func GetCategoryHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		cat, err := svc.GetCategory(c.Request.Context(), currentUserID(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, categoryView(*cat), msgRetrieved)
	}
}

// UpdateCategoryHandler serves PUT and, with partial set, PATCH
func UpdateCategoryHandler(svc *service.Service, partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var req CategoryRequest
		if err := bindJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
		cat, err := svc.UpdateCategory(c.Request.Context(), currentUserID(c), id, req.input(), partial)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, categoryView(*cat), msgUpdated)
	}
}

// DeleteCategoryHandler deletes a category nothing references
func DeleteCategoryHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := svc.DeleteCategory(c.Request.Context(), currentUserID(c), id); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, nil, msgDeleted)
	}
}
