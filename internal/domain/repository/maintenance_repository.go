package repository

import (
	"context"
	"time"
)

// MaintenanceRepository purges records past their retention window.
// With dryRun set each method only counts what it would delete.
type MaintenanceRepository interface {
	// PurgeSales removes sales created before cutoff together with their
	// items and payments
	PurgeSales(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error)
	// PurgeSupplierBills removes supplier bills dated before cutoff with their payments
	PurgeSupplierBills(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error)
	PurgeExpenses(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error)
	// TableCounts returns the row count of every shop table
	TableCounts(ctx context.Context) (map[string]int64, error)
}
