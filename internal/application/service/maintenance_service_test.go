package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	jan := time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC)
	old := f.creditBill(t, "Ravi", "100", jan)
	_, err := f.credit.PayCustomer(ctx, "Ravi", &PaymentInput{Amount: decPtr("10")})
	require.NoError(t, err)
	f.creditBill(t, "Ravi", "50", march(8))

	f.supplierBill(t, "Metro", "M-OLD", "100", 1)
	janBill := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	_, err = f.supplier.AddBill(ctx, &AddBillInput{SupplierName: "Metro", BillNumber: "M-JAN", BillDate: &janBill, TotalAmount: dec("10")})
	require.NoError(t, err)

	lastWeek := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	_, err = f.expenses.CreateExpense(ctx, &ExpenseInput{Description: "Old", Amount: dec("5"), Date: &lastWeek})
	require.NoError(t, err)
	_, err = f.expenses.CreateExpense(ctx, &ExpenseInput{Description: "New", Amount: dec("5")})
	require.NoError(t, err)

	f.product(t, "Empty", 0, "10")
	f.product(t, "Stocked", 3, "10")

	require.NoError(t, f.db.Create(&entity.IdempotencyKey{
		Key: "k1", UserID: "u1", Endpoint: "POST /api/v1/billing", ResponseCode: 201,
		ExpiresAt: fixedNow.Add(-time.Hour),
	}).Error)

	opts := CleanupOptions{BillingDays: 45, SupplierDays: 60, ExpenseDays: 7, InactiveProducts: true, DryRun: true}
	report, err := f.maint.Cleanup(ctx, opts)
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, int64(1), report.Sales)
	assert.Equal(t, int64(1), report.SupplierBills)
	assert.Equal(t, int64(1), report.Expenses)
	assert.Zero(t, report.Products)
	assert.Zero(t, report.IdempotencyKeys)

	counts, err := f.maint.StorageSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["transactions"])

	opts.DryRun = false
	report, err = f.maint.Cleanup(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.Sales)
	assert.Equal(t, int64(1), report.Products)
	assert.Equal(t, int64(1), report.IdempotencyKeys)

	counts, err = f.maint.StorageSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["transactions"])
	assert.Zero(t, counts["credit_bill_payments"])
	assert.Equal(t, int64(1), counts["supplier_bills"])
	assert.Equal(t, int64(1), counts["expenses"])
	assert.Equal(t, int64(1), counts["products"])

	_, err = f.billing.GetBill(ctx, old.BillNumber)
	require.Error(t, err)
}
