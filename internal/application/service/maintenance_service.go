package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"go.uber.org/zap"
)

// MaintenanceService purges records past their retention window
type MaintenanceService struct {
	maintenanceRepo repository.MaintenanceRepository
	productRepo     repository.ProductRepository
	idempotencyRepo repository.IdempotencyRepository
	clock           shopClock
	logger          *zap.Logger
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	maintenanceRepo repository.MaintenanceRepository,
	productRepo repository.ProductRepository,
	idempotencyRepo repository.IdempotencyRepository,
	loc *time.Location,
	logger *zap.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		maintenanceRepo: maintenanceRepo,
		productRepo:     productRepo,
		idempotencyRepo: idempotencyRepo,
		clock:           newShopClock(loc),
		logger:          logger,
	}
}

// CleanupOptions selects what to purge. A zero day count skips that table.
type CleanupOptions struct {
	BillingDays      int
	SupplierDays     int
	ExpenseDays      int
	InactiveProducts bool
	DryRun           bool
}

// CleanupReport counts the rows removed, or that would be removed on a dry run
type CleanupReport struct {
	DryRun          bool  `json:"dry_run"`
	Sales           int64 `json:"sales"`
	SupplierBills   int64 `json:"supplier_bills"`
	Expenses        int64 `json:"expenses"`
	Products        int64 `json:"products"`
	IdempotencyKeys int64 `json:"idempotency_keys"`
}

// Cleanup runs every purge the options ask for. Inactive products and
// expired idempotency keys are left alone on a dry run.
func (s *MaintenanceService) Cleanup(ctx context.Context, opts CleanupOptions) (*CleanupReport, error) {
	now := s.clock.Now()
	report := &CleanupReport{DryRun: opts.DryRun}

	var err error
	if opts.BillingDays > 0 {
		if report.Sales, err = s.maintenanceRepo.PurgeSales(ctx, now.AddDate(0, 0, -opts.BillingDays), opts.DryRun); err != nil {
			return nil, fmt.Errorf("purge sales: %w", err)
		}
	}
	if opts.SupplierDays > 0 {
		cutoff := dateOnly(now.AddDate(0, 0, -opts.SupplierDays))
		if report.SupplierBills, err = s.maintenanceRepo.PurgeSupplierBills(ctx, cutoff, opts.DryRun); err != nil {
			return nil, fmt.Errorf("purge supplier bills: %w", err)
		}
	}
	if opts.ExpenseDays > 0 {
		cutoff := dateOnly(now.AddDate(0, 0, -opts.ExpenseDays))
		if report.Expenses, err = s.maintenanceRepo.PurgeExpenses(ctx, cutoff, opts.DryRun); err != nil {
			return nil, fmt.Errorf("purge expenses: %w", err)
		}
	}

	if !opts.DryRun {
		if opts.InactiveProducts {
			if report.Products, err = s.productRepo.DeleteInactive(ctx); err != nil {
				return nil, fmt.Errorf("purge inactive products: %w", err)
			}
		}
		if report.IdempotencyKeys, err = s.idempotencyRepo.DeleteExpired(ctx, now); err != nil {
			return nil, fmt.Errorf("purge idempotency keys: %w", err)
		}
	}

	s.logger.Info("cleanup finished",
		zap.Bool("dry_run", opts.DryRun),
		zap.Int64("sales", report.Sales),
		zap.Int64("supplier_bills", report.SupplierBills),
		zap.Int64("expenses", report.Expenses),
		zap.Int64("products", report.Products),
		zap.Int64("idempotency_keys", report.IdempotencyKeys),
	)
	return report, nil
}

// StorageSummary returns the row count of every shop table
func (s *MaintenanceService) StorageSummary(ctx context.Context) (map[string]int64, error) {
	return s.maintenanceRepo.TableCounts(ctx)
}
