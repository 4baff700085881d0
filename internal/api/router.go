package api

import (
	"time" // CORS preflight cache

	"finance_tracker/internal/config"     // Application configuration
	"finance_tracker/internal/domain"     // Entry kinds
	"finance_tracker/internal/middleware" // Custom middleware
	"finance_tracker/internal/repository" // User lookups for auth
	"finance_tracker/internal/service"    // Business rules

	"github.com/gin-contrib/cors"            // CORS middleware
	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Validator engine access
	"github.com/go-playground/validator/v10" // Field name registration
)

// NewRouter wires middleware and every route under /api
func NewRouter(cfg *config.Config, svc *service.Service, users *repository.UserRepository) *gin.Engine {
	// Report binding errors by their JSON field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	api := r.Group("/api")

	// Public auth routes
	api.POST("/auth/register", RegisterHandler(svc)) // Registration endpoint
	api.POST("/auth/login", LoginHandler(svc))       // Login endpoint
	api.POST("/auth/refresh", RefreshHandler(svc))   // Token rotation endpoint

	// Everything else needs an access token of an existing user
	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.CurrentUserMiddleware(users))

	authed.POST("/auth/logout", LogoutHandler(svc))
	authed.GET("/users/:id", GetUserHandler(svc))

	categories := authed.Group("/categories")
	categories.GET("", ListCategoriesHandler(svc))
	categories.POST("", CreateCategoryHandler(svc))
	categories.GET("/:id", GetCategoryHandler(svc))
	categories.PUT("/:id", UpdateCategoryHandler(svc, false))
	categories.PATCH("/:id", UpdateCategoryHandler(svc, true))
	categories.DELETE("/:id", DeleteCategoryHandler(svc))

	for path, kind := range map[string]domain.EntryKind{"/incomes": domain.KindIncome, "/expenses": domain.KindExpense} {
		entries := authed.Group(path)
		entries.GET("", ListEntriesHandler(svc, kind))
		entries.POST("", CreateEntryHandler(svc, kind))
		entries.GET("/:id", GetEntryHandler(svc, kind))
		entries.PUT("/:id", UpdateEntryHandler(svc, kind, false))
		entries.PATCH("/:id", UpdateEntryHandler(svc, kind, true))
		entries.DELETE("/:id", DeleteEntryHandler(svc, kind))
	}

	budgets := authed.Group("/budgets")
	budgets.GET("", ListBudgetsHandler(svc))
	budgets.POST("", CreateBudgetHandler(svc))
	budgets.GET("/:id", GetBudgetHandler(svc))
	budgets.PUT("/:id", UpdateBudgetHandler(svc, false))
	budgets.PATCH("/:id", UpdateBudgetHandler(svc, true))
	budgets.DELETE("/:id", DeleteBudgetHandler(svc))

	pager := Paginator{PageSize: cfg.PageSize, MaxPageSize: cfg.MaxPageSize}
	authed.GET("/summary", SummaryHandler(svc))
	authed.GET("/budget-management", BudgetManagementHandler(svc))
	authed.GET("/transactions", TransactionsHandler(svc, pager))
	authed.GET("/transactions/export", ExportTransactionsHandler(svc))

	return r
}

// corsConfig allows the configured origins with credentials, or every origin without them
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
