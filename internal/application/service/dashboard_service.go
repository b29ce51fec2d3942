package service

import (
	"context"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	reportRepo repository.ReportRepository
	clock      shopClock
	logger     *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(reportRepo repository.ReportRepository, loc *time.Location, logger *zap.Logger) *DashboardService {
	return &DashboardService{reportRepo: reportRepo, clock: newShopClock(loc), logger: logger}
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	inventory, err := s.reportRepo.Inventory(ctx)
	if err != nil {
		return nil, err
	}

	stats := &repository.DashboardStats{InventoryStats: *inventory}

	// Sales over all time
	stats.BillCount, stats.TotalSales, err = s.reportRepo.SalesBetween(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	stats.AverageBill = decimal.Zero
	if stats.BillCount > 0 {
		stats.AverageBill = stats.TotalSales.Div(decimal.NewFromInt(stats.BillCount)).Round(2)
	}

	today := s.clock.Now()
	from, to := s.clock.dayBounds(today)
	if _, stats.TodaySales, err = s.reportRepo.SalesBetween(ctx, &from, &to); err != nil {
		return nil, err
	}
	if stats.TodayExpenses, err = s.reportRepo.ExpensesOn(ctx, dateOnly(today)); err != nil {
		return nil, err
	}

	if stats.OutstandingCredit, err = s.reportRepo.OutstandingCredit(ctx); err != nil {
		return nil, err
	}
	if stats.OutstandingSupplier, err = s.reportRepo.OutstandingSupplier(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
