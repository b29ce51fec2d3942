// Package bootstrap wires repositories, services and handlers from a config
// and an open database. The API server, the shopctl CLI and the router tests
// share it so they all run the same object graph.
package bootstrap

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopkeeper-api/internal/application/service"
	"github.com/sangkips/shopkeeper-api/internal/config"
	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	domainRepo "github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/sangkips/shopkeeper-api/internal/infrastructure/repository"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/handler"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/routes"
	"github.com/sangkips/shopkeeper-api/pkg/printer"
	"github.com/sangkips/shopkeeper-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services holds every use-case service
type Services struct {
	Auth        *service.AuthService
	User        *service.UserService
	Billing     *service.BillingService
	Credit      *service.CreditService
	Supplier    *service.SupplierService
	Product     *service.ProductService
	Expense     *service.ExpenseService
	Dashboard   *service.DashboardService
	Printer     *service.PrinterService
	Maintenance *service.MaintenanceService
}

// App is the wired application
type App struct {
	Cfg             *config.Config
	DB              *gorm.DB
	Logger          *zap.Logger
	JWTManager      *utils.JWTManager
	IdempotencyRepo domainRepo.IdempotencyRepository
	Services        *Services
}

// Options overrides parts of the graph, mainly for tests
type Options struct {
	Printer  printer.Printer
	Location *time.Location
}

// New builds the application. A printer that cannot be configured falls back
// to the null printer so billing keeps working.
func New(cfg *config.Config, db *gorm.DB, log *zap.Logger, opts Options) *App {
	loc := opts.Location
	if loc == nil {
		loc = cfg.Shop.Location()
	}

	p := opts.Printer
	if p == nil {
		var err error
		p, err = printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
		if err != nil {
			log.Warn("Failed to initialize printer, receipts will not be printed", zap.Error(err))
			p = printer.NewNullPrinter()
		}
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.JWT.RefreshExpiryHours)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	supplierBillRepo := repository.NewSupplierBillRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	reportRepo := repository.NewReportRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	header := entity.ReceiptHeader{
		ShopName: cfg.Shop.Name,
		Address:  cfg.Shop.Address,
		Phone:    cfg.Shop.Phone,
	}

	services := &Services{
		Auth:      service.NewAuthService(userRepo, jwtManager, log.Named("auth")),
		User:      service.NewUserService(userRepo, log.Named("users")),
		Billing:   service.NewBillingService(saleRepo, productRepo, loc, log.Named("billing")),
		Credit:    service.NewCreditService(saleRepo, repository.NewCreditLedger(db), loc, log.Named("credit")),
		Supplier:  service.NewSupplierService(supplierBillRepo, repository.NewSupplierLedger(db), loc, log.Named("supplier")),
		Product:   service.NewProductService(productRepo, log.Named("products")),
		Expense:   service.NewExpenseService(expenseRepo, loc, log.Named("expenses")),
		Dashboard: service.NewDashboardService(reportRepo, loc, log.Named("dashboard")),
		Printer:   service.NewPrinterService(p, saleRepo, header, cfg.Printer.Width, loc, log.Named("printer")),
		Maintenance: service.NewMaintenanceService(
			maintenanceRepo, productRepo, idempotencyRepo, loc, log.Named("maintenance"),
		),
	}

	return &App{
		Cfg:             cfg,
		DB:              db,
		Logger:          log,
		JWTManager:      jwtManager,
		IdempotencyRepo: idempotencyRepo,
		Services:        services,
	}
}

// RetentionDefaults are the configured cleanup windows
func (a *App) RetentionDefaults() service.CleanupOptions {
	return service.CleanupOptions{
		BillingDays:  a.Cfg.Retention.BillingDays,
		SupplierDays: a.Cfg.Retention.SupplierDays,
		ExpenseDays:  a.Cfg.Retention.ExpenseDays,
	}
}

// Router builds the HTTP router. done stops background cleanup and may be nil.
func (a *App) Router(done <-chan struct{}) *gin.Engine {
	s := a.Services
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(s.Auth, s.User),
		User:        handler.NewUserHandler(s.User),
		Billing:     handler.NewBillingHandler(s.Billing),
		Credit:      handler.NewCreditHandler(s.Credit, s.Printer),
		Supplier:    handler.NewSupplierHandler(s.Supplier, s.Printer),
		Product:     handler.NewProductHandler(s.Product),
		Expense:     handler.NewExpenseHandler(s.Expense),
		Dashboard:   handler.NewDashboardHandler(s.Dashboard),
		Printer:     handler.NewPrinterHandler(s.Printer),
		Maintenance: handler.NewMaintenanceHandler(s.Maintenance, a.RetentionDefaults()),
	}

	return routes.Setup(handlers, &routes.Deps{
		JWTManager:      a.JWTManager,
		Cfg:             a.Cfg,
		IdempotencyRepo: a.IdempotencyRepo,
		DB:              a.DB,
		Logger:          a.Logger,
		Done:            done,
	})
}
