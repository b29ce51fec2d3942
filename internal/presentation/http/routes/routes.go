package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopkeeper-api/internal/config"
	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	domainRepo "github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/sangkips/shopkeeper-api/internal/infrastructure/logger"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/handler"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/middleware"
	"github.com/sangkips/shopkeeper-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Billing     *handler.BillingHandler
	Credit      *handler.CreditHandler
	Supplier    *handler.SupplierHandler
	Product     *handler.ProductHandler
	Expense     *handler.ExpenseHandler
	Dashboard   *handler.DashboardHandler
	Printer     *handler.PrinterHandler
	Maintenance *handler.MaintenanceHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	DB              *gorm.DB
	Logger          *zap.Logger
	// Done stops background work such as rate limiter cleanup. Nil leaves
	// the cleanup loop unstarted.
	Done <-chan struct{}
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(logger.RequestID(deps.Logger))
	router.Use(logger.GinMiddleware(deps.Logger))
	router.Use(logger.Recovery(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", health(deps))

	rateLimiter := middleware.NewRateLimiter(
		middleware.RateLimiterConfigFor(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration),
	)
	if deps.Done != nil {
		go rateLimiter.Run(deps.Done)
	}

	v1 := router.Group("/api/v1")
	{
		// Public routes are limited per client IP
		auth := v1.Group("/auth")
		auth.Use(rateLimiter.Middleware())
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func health(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, code := "ok", http.StatusOK
		if sqlDB, err := deps.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"service":  deps.Cfg.App.Name,
			"database": deps.DB.Dialector.Name(),
		})
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		TTL:  deps.Cfg.Retention.IdempotencyTTL,
	})
	adminOnly := middleware.RequireRole(entity.RoleAdmin)

	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	registerBillingRoutes(protected, h, idempotent, adminOnly)
	registerCreditRoutes(protected, h, idempotent)
	registerSupplierRoutes(protected, h, idempotent, adminOnly)
	registerProductRoutes(protected, h, adminOnly)
	registerExpenseRoutes(protected, h, adminOnly)

	protected.GET("/dashboard",
		middleware.RequirePermission(entity.PermDashboardView), h.Dashboard.GetStats)

	registerPrinterRoutes(protected, h)
	registerAdminRoutes(protected, h, adminOnly)
}

func registerBillingRoutes(protected *gin.RouterGroup, h *Handlers, idempotent, adminOnly gin.HandlerFunc) {
	billing := protected.Group("/billing")
	billing.Use(middleware.RequirePermission(entity.PermBillingWrite))
	{
		billing.POST("", idempotent, h.Billing.CreateBill)
		billing.GET("", h.Billing.ListBills)
		billing.GET("/daily", h.Billing.DailySales)
		billing.GET("/summary", h.Billing.SalesSummary)
		billing.GET("/:bill_number", h.Billing.GetBill)
	}

	protected.DELETE("/transactions/:id", adminOnly,
		middleware.RequirePermission(entity.PermTransactionsDelete), h.Billing.DeleteTransaction)
}

func registerCreditRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	credit := protected.Group("/credit-bills")
	credit.Use(middleware.RequirePermission(entity.PermCreditManage))
	{
		credit.GET("/customers", h.Credit.ListCustomers)
		credit.GET("/summary", h.Credit.Summary)
		credit.GET("/customer/:name", h.Credit.CustomerBills)
		credit.GET("/customer/:name/summary", h.Credit.CustomerSummary)
		credit.POST("/customer/:name/pay", idempotent, h.Credit.PayCustomer)
		credit.GET("/:bill_number", h.Credit.BillDetail)
		credit.POST("/:bill_number/pay", idempotent, h.Credit.PayBill)
	}
}

func registerSupplierRoutes(protected *gin.RouterGroup, h *Handlers, idempotent, adminOnly gin.HandlerFunc) {
	suppliers := protected.Group("/supplier-bills")
	suppliers.Use(middleware.RequirePermission(entity.PermSupplierManage))
	{
		suppliers.POST("", h.Supplier.AddBill)
		suppliers.GET("", h.Supplier.ListBills)
		suppliers.GET("/suppliers", h.Supplier.Suppliers)
		suppliers.GET("/summary", h.Supplier.Summary)
		suppliers.GET("/supplier/:name", h.Supplier.SupplierBills)
		suppliers.GET("/supplier/:name/summary", h.Supplier.SupplierSummary)
		suppliers.POST("/supplier/:name/pay", idempotent, h.Supplier.PaySupplier)
		suppliers.GET("/:id", h.Supplier.GetBill)
		suppliers.POST("/:id/pay", idempotent, h.Supplier.PayBill)
		suppliers.DELETE("/:id", adminOnly, h.Supplier.DeleteBill)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers, adminOnly gin.HandlerFunc) {
	products := protected.Group("/products")
	products.Use(middleware.RequirePermission(entity.PermStockManage))
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", adminOnly, h.Product.Delete)
		products.POST("/:id/stock/add", h.Product.AddStock)
		products.POST("/:id/stock/remove", h.Product.RemoveStock)
		products.GET("/:id/stock/history", h.Product.StockHistory)
	}

	protected.GET("/stock/report",
		middleware.RequirePermission(entity.PermStockManage), h.Product.StockReport)
}

func registerExpenseRoutes(protected *gin.RouterGroup, h *Handlers, adminOnly gin.HandlerFunc) {
	expenses := protected.Group("/expenses")
	expenses.Use(middleware.RequirePermission(entity.PermExpenseManage))
	{
		expenses.POST("", h.Expense.Create)
		expenses.GET("", h.Expense.List)
		expenses.GET("/summary", h.Expense.DailySummary)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", adminOnly, h.Expense.Delete)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	printerGroup.Use(middleware.RequirePermission(entity.PermPrinterUse))
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/bills/:bill_number", h.Printer.PrintBill)
	}
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers, adminOnly gin.HandlerFunc) {
	users := protected.Group("/users")
	users.Use(adminOnly)
	{
		users.GET("", h.User.ListUsers)
		users.POST("", h.User.CreateUser)
		users.PATCH("/:id/active", h.User.SetActive)
	}

	maintenance := protected.Group("/maintenance")
	maintenance.Use(adminOnly)
	{
		maintenance.GET("/storage", h.Maintenance.Storage)
		maintenance.POST("/cleanup", h.Maintenance.Cleanup)
	}
}
