package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryStats aggregates the product catalogue
type InventoryStats struct {
	ProductCount   int64           `json:"product_count"`
	LowStockCount  int64           `json:"low_stock_count"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// DashboardStats is everything the owner dashboard shows
type DashboardStats struct {
	InventoryStats
	BillCount           int64           `json:"bill_count"`
	TotalSales          decimal.Decimal `json:"total_sales"`
	AverageBill         decimal.Decimal `json:"average_bill"`
	TodaySales          decimal.Decimal `json:"today_sales"`
	TodayExpenses       decimal.Decimal `json:"today_expenses"`
	OutstandingCredit   decimal.Decimal `json:"outstanding_credit"`
	OutstandingSupplier decimal.Decimal `json:"outstanding_supplier"`
}

// ReportRepository defines interface for reporting/aggregation queries
type ReportRepository interface {
	// Inventory returns catalogue counts and total stock value
	Inventory(ctx context.Context) (*InventoryStats, error)

	// SalesBetween returns count and total of non-credit, non-replacement sales
	SalesBetween(ctx context.Context, from, to *time.Time) (count int64, total decimal.Decimal, err error)

	// ExpensesOn returns the total spent on a given day
	ExpensesOn(ctx context.Context, day time.Time) (decimal.Decimal, error)

	// OutstandingCredit returns what customers still owe on open credit bills
	OutstandingCredit(ctx context.Context) (decimal.Decimal, error)

	// OutstandingSupplier returns what the shop still owes suppliers
	OutstandingSupplier(ctx context.Context) (decimal.Decimal, error)
}
