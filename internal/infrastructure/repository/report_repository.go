package repository

import (
	"context"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/enum"
	domainRepo "github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

type amountRow struct {
	Count  int64
	Amount decimal.NullDecimal
}

func (r *reportRepository) Inventory(ctx context.Context) (*domainRepo.InventoryStats, error) {
	var row struct {
		ProductCount   int64
		LowStockCount  int64
		InventoryValue decimal.NullDecimal
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS product_count,
			COALESCE(SUM(CASE WHEN quantity <= minimum_stock THEN 1 ELSE 0 END), 0) AS low_stock_count,
			SUM(quantity * unit_price) AS inventory_value
		FROM products
	`).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &domainRepo.InventoryStats{
		ProductCount:   row.ProductCount,
		LowStockCount:  row.LowStockCount,
		InventoryValue: money(row.InventoryValue),
	}, nil
}

func (r *reportRepository) SalesBetween(ctx context.Context, from, to *time.Time) (int64, decimal.Decimal, error) {
	var row amountRow
	err := r.db.WithContext(ctx).Table("transactions").
		Scopes(CountedSales, Between("created_at", from, to)).
		Select("COUNT(*) AS count, SUM(total_amount) AS amount").
		Scan(&row).Error
	if err != nil {
		return 0, decimal.Zero, err
	}
	return row.Count, money(row.Amount), nil
}

func (r *reportRepository) ExpensesOn(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	var row amountRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS count, SUM(amount) AS amount
		FROM expenses
		WHERE expense_date = ?
	`, civilDate(day)).Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return money(row.Amount), nil
}

func (r *reportRepository) OutstandingCredit(ctx context.Context) (decimal.Decimal, error) {
	var row amountRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS count, SUM(total_amount - paid_amount) AS amount
		FROM transactions
		WHERE is_credit = ? AND bill_type = ? AND payment_status <> ?
	`, true, enum.BillTypeCredit, settlement.StatusPaid).Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return money(row.Amount), nil
}

func (r *reportRepository) OutstandingSupplier(ctx context.Context) (decimal.Decimal, error) {
	var row amountRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS count, SUM(total_amount - paid_amount) AS amount
		FROM supplier_bills
		WHERE status <> ?
	`, settlement.StatusPaid).Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return money(row.Amount), nil
}
