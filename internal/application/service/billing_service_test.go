package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/enum"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/sangkips/shopkeeper-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAppError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperror.IsAppError(err), "expected AppError, got %v", err)
	assert.Equal(t, code, apperror.GetAppError(err).Code)
}

func TestCreateBill_RegularBillTakesCatalogueDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.product(t, "Rice", 10, "60")

	sale, err := f.billing.CreateBill(ctx, &CreateBillInput{
		CustomerName: "Walk-in",
		Items: []BillItemInput{
			{ProductID: rice.ID, Quantity: 2},
			{Name: "Carry bag", Quantity: 1, UnitPrice: decPtr("5.50")},
		},
	})
	require.NoError(t, err)

	assert.Regexp(t, `^BILL-20240310110000-[0-9A-F]{4}$`, sale.BillNumber)
	assert.True(t, dec("125.50").Equal(sale.TotalAmount))
	assert.Equal(t, enum.BillTypeRegular, sale.BillType)
	assert.Equal(t, enum.PaymentMethodCash, sale.PaymentMethod)
	assert.Equal(t, settlement.StatusPaid, sale.PaymentStatus)
	assert.True(t, sale.PaidAmount.Equal(sale.TotalAmount))
	assert.True(t, sale.CashAmount.Equal(sale.TotalAmount))
	require.Len(t, sale.Items, 2)
	assert.Equal(t, "Rice", sale.Items[0].ProductName)
	assert.Nil(t, sale.Items[1].ProductID)

	p, err := f.products.GetProduct(ctx, rice.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, p.Quantity)

	history, err := f.products.StockHistory(ctx, rice.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, enum.MovementTypeSale, history[0].MovementType)
}

func TestCreateBill_CreditBillStartsUnpaid(t *testing.T) {
	f := newFixture(t)

	sale, err := f.billing.CreateBill(context.Background(), &CreateBillInput{
		CustomerName: "Ravi Traders",
		BillType:     enum.BillTypeCredit,
		Items:        []BillItemInput{{Name: "Oil tin", Quantity: 3, UnitPrice: decPtr("900")}},
	})
	require.NoError(t, err)
	assert.True(t, sale.IsCredit)
	assert.Equal(t, settlement.StatusUnpaid, sale.PaymentStatus)
	assert.True(t, sale.PaidAmount.IsZero())
	assert.True(t, dec("2700").Equal(sale.Balance()))
}

func TestCreateBill_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sugar := f.product(t, "Sugar", 1, "45")

	tests := []struct {
		name  string
		input *CreateBillInput
		code  int
	}{
		{"no items", &CreateBillInput{}, http.StatusBadRequest},
		{"credit without customer", &CreateBillInput{
			BillType: enum.BillTypeCredit,
			Items:    []BillItemInput{{Name: "x", Quantity: 1, UnitPrice: decPtr("1")}},
		}, http.StatusBadRequest},
		{"manual line without price", &CreateBillInput{
			Items: []BillItemInput{{Name: "x", Quantity: 1}},
		}, http.StatusBadRequest},
		{"zero quantity", &CreateBillInput{
			Items: []BillItemInput{{ProductID: sugar.ID, Quantity: 0}},
		}, http.StatusBadRequest},
		{"unknown product", &CreateBillInput{
			Items: []BillItemInput{{ProductID: 999, Quantity: 1}},
		}, http.StatusNotFound},
		{"credit bill with zero total", &CreateBillInput{
			CustomerName: "Ravi Traders",
			BillType:     enum.BillTypeCredit,
			Items:        []BillItemInput{{Name: "Free sample", Quantity: 2, UnitPrice: decPtr("0")}},
		}, http.StatusUnprocessableEntity},
		{"split does not add up", &CreateBillInput{
			PaymentMethod: enum.PaymentMethodSplit,
			CashAmount:    decPtr("20"),
			UPIAmount:     decPtr("20"),
			Items:         []BillItemInput{{ProductID: sugar.ID, Quantity: 1}},
		}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.billing.CreateBill(ctx, tt.input)
			assertAppError(t, err, tt.code)
		})
	}
}

func TestCreateBill_SplitPayment(t *testing.T) {
	f := newFixture(t)
	sugar := f.product(t, "Sugar", 5, "45")

	sale, err := f.billing.CreateBill(context.Background(), &CreateBillInput{
		PaymentMethod: enum.PaymentMethodSplit,
		CashAmount:    decPtr("40"),
		UPIAmount:     decPtr("50"),
		Items:         []BillItemInput{{ProductID: sugar.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, dec("40").Equal(sale.CashAmount))
	assert.True(t, dec("50").Equal(sale.UPIAmount))
}

func TestCreateBill_InsufficientStockWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dal := f.product(t, "Dal", 1, "110")
	salt := f.product(t, "Salt", 10, "20")

	_, err := f.billing.CreateBill(ctx, &CreateBillInput{
		Items: []BillItemInput{
			{ProductID: salt.ID, Quantity: 2},
			{ProductID: dal.ID, Quantity: 3},
		},
	})
	assertAppError(t, err, http.StatusBadRequest)
	assert.Contains(t, err.Error(), "Dal")

	var count int64
	require.NoError(t, f.db.Model(&entity.Sale{}).Count(&count).Error)
	assert.Zero(t, count)

	p, err := f.products.GetProduct(ctx, salt.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)
}

func TestDailySales_CountsRegularBillsOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.billing.CreateBill(ctx, &CreateBillInput{
		Items: []BillItemInput{{Name: "Soap", Quantity: 2, UnitPrice: decPtr("30")}},
	})
	require.NoError(t, err)
	_, err = f.billing.CreateBill(ctx, &CreateBillInput{
		BillType: enum.BillTypeReplacement,
		Items:    []BillItemInput{{Name: "Soap", Quantity: 1, UnitPrice: decPtr("30")}},
	})
	require.NoError(t, err)
	f.creditBill(t, "Ravi", "500", fixedNow)

	out, err := f.billing.DailySales(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", out.Date)
	assert.Equal(t, int64(1), out.BillCount)
	assert.True(t, dec("60").Equal(out.TotalAmount))

	yesterday := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	out, err = f.billing.DailySales(ctx, &yesterday)
	require.NoError(t, err)
	assert.Zero(t, out.BillCount)
}

func TestGetBillAndDeleteTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.billing.GetBill(ctx, "BILL-NOPE")
	assertAppError(t, err, http.StatusNotFound)

	sale := f.creditBill(t, "Ravi", "100", fixedNow)
	_, err = f.credit.PayCustomer(ctx, "Ravi", &PaymentInput{Amount: decPtr("40")})
	require.NoError(t, err)

	got, err := f.billing.GetBill(ctx, sale.BillNumber)
	require.NoError(t, err)
	assert.Len(t, got.Payments, 1)

	require.NoError(t, f.billing.DeleteTransaction(ctx, sale.ID))
	assertAppError(t, f.billing.DeleteTransaction(ctx, sale.ID), http.StatusNotFound)

	var payments int64
	require.NoError(t, f.db.Model(&entity.CreditPayment{}).Count(&payments).Error)
	assert.Zero(t, payments)
}

func TestListBills_FiltersByType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.creditBill(t, "Ravi", "100", fixedNow)
	_, err := f.billing.CreateBill(ctx, &CreateBillInput{
		Items: []BillItemInput{{Name: "Pen", Quantity: 1, UnitPrice: decPtr("10")}},
	})
	require.NoError(t, err)

	credit := enum.BillTypeCredit
	page, err := f.billing.ListBills(ctx, &ListBillsInput{BillType: &credit})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Ravi", page.Items[0].CustomerName)
	assert.Equal(t, int64(1), page.Pagination.Total)
}
