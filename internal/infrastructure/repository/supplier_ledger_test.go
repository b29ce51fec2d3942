package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplierLedger_OrdersByBillDate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// inserted first but dated later
	later := seedSupplierBill(t, db, "S-2", "Metro", "300", day(5))
	earlier := seedSupplierBill(t, db, "S-1", "Metro", "100", day(2))

	paidAt := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	ledger := &supplierLedger{db: db, now: func() time.Time { return paidAt }}

	result, err := settlement.NewEngine(ledger, nil).Allocate(ctx, settlement.PaymentRequest{
		Party: "Metro", Amount: dec("150"), Date: day(20),
	})
	require.NoError(t, err)
	require.Len(t, result.Allocations, 2)
	assert.Equal(t, earlier.ID, result.Allocations[0].BillID)
	assert.Equal(t, later.ID, result.Allocations[1].BillID)
	assert.Equal(t, settlement.StatusPartial, result.FinalStatus)

	var bill entity.SupplierBill
	require.NoError(t, db.First(&bill, earlier.ID).Error)
	assert.Equal(t, settlement.StatusPaid, bill.Status)
	require.NotNil(t, bill.PaidAt)
	assert.True(t, paidAt.Equal(bill.PaidAt.UTC()))

	require.NoError(t, db.First(&bill, later.ID).Error)
	assert.Nil(t, bill.PaidAt)
	assert.True(t, dec("50").Equal(bill.PaidAmount))
}

func TestSupplierLedger_SettlePartyIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedSupplierBill(t, db, "S-1", "Metro", "100", day(1))
	seedSupplierBill(t, db, "S-2", "Metro", "40.50", day(3))

	engine := settlement.NewEngine(NewSupplierLedger(db), nil)
	out, err := engine.SettleParty(ctx, "Metro", day(4), "")
	require.NoError(t, err)
	assert.Equal(t, settlement.StatusPaid, out.Status)
	assert.Len(t, out.Allocations, 2)

	out, err = engine.SettleParty(ctx, "Metro", day(5), "")
	require.NoError(t, err)
	assert.Equal(t, settlement.StatusPaid, out.Status)
	assert.Empty(t, out.Allocations)

	var payments int64
	require.NoError(t, db.Model(&entity.SupplierBillPayment{}).Count(&payments).Error)
	assert.Equal(t, int64(2), payments)

	summary, err := engine.PartySummary(ctx, "Metro")
	require.NoError(t, err)
	assert.Equal(t, settlement.StatusPaid, summary.Status)
	assert.True(t, dec("140.50").Equal(summary.ReceivedAmount))
}
