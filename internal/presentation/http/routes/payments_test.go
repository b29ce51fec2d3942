package routes_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentOutcome struct {
	Party       string                  `json:"party"`
	Status      settlement.Status       `json:"status"`
	Allocations []settlement.Allocation `json:"allocations"`
	Applied     decimal.Decimal         `json:"applied"`
	Unapplied   decimal.Decimal         `json:"unapplied"`
	Print       *struct {
		Printed bool `json:"printed"`
		Receipt struct {
			Title string `json:"title"`
		} `json:"receipt"`
	} `json:"print"`
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (s *testServer) creditBill(token, customer, amount string) entity.Sale {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/v1/billing", map[string]interface{}{
		"customer_name": customer,
		"bill_type":     "CREDIT",
		"items":         []map[string]interface{}{{"name": "Wholesale", "quantity": 1, "unit_price": amount}},
	}, token)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var sale entity.Sale
	decode(s.t, rec, &sale)
	require.Equal(s.t, settlement.StatusUnpaid, sale.PaymentStatus)
	return sale
}

func (s *testServer) pay(token, path string, body interface{}) paymentOutcome {
	s.t.Helper()
	rec := s.do(http.MethodPost, path, body, token)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var out paymentOutcome
	decode(s.t, rec, &out)
	return out
}

func TestCreditPaymentCascade(t *testing.T) {
	s := newTestServer(t)
	admin := s.admin()

	first := s.creditBill(admin, "Ravi Stores", "100")
	second := s.creditBill(admin, "Ravi Stores", "50")
	s.creditBill(admin, "Other Co", "70")

	out := s.pay(admin, "/api/v1/credit-bills/customer/Ravi%20Stores/pay", map[string]interface{}{
		"payment_amount": "120", "payment_date": "2024-03-15", "notes": "cash",
	})
	assert.Equal(t, "Ravi Stores", out.Party)
	assert.Equal(t, settlement.StatusPartial, out.Status)
	require.Len(t, out.Allocations, 2)
	assert.Equal(t, first.BillNumber, out.Allocations[0].BillNumber)
	assert.True(t, dec("100").Equal(out.Allocations[0].Applied))
	assert.Equal(t, settlement.StatusPaid, out.Allocations[0].NewStatus)
	assert.Equal(t, second.BillNumber, out.Allocations[1].BillNumber)
	assert.True(t, dec("20").Equal(out.Allocations[1].Applied))
	assert.True(t, dec("30").Equal(out.Allocations[1].NewBalance))
	assert.True(t, out.Unapplied.IsZero())

	rec := s.do(http.MethodGet, "/api/v1/credit-bills/"+second.BillNumber, nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail entity.Sale
	decode(t, rec, &detail)
	assert.Equal(t, settlement.StatusPartial, detail.PaymentStatus)
	require.Len(t, detail.Payments, 1)
	assert.Equal(t, "cash", detail.Payments[0].Notes)
	assert.Equal(t, "2024-03-15", detail.Payments[0].PaymentDate.Format("2006-01-02"))

	// no amount settles whatever the customer still owes
	out = s.pay(admin, "/api/v1/credit-bills/"+second.BillNumber+"/pay", map[string]interface{}{})
	assert.Equal(t, settlement.StatusPaid, out.Status)
	require.Len(t, out.Allocations, 1)
	assert.True(t, dec("30").Equal(out.Allocations[0].Applied))

	// settling again is a no-op
	out = s.pay(admin, "/api/v1/credit-bills/customer/Ravi%20Stores/pay", map[string]interface{}{"payment_amount": nil})
	assert.Equal(t, settlement.StatusPaid, out.Status)
	assert.Empty(t, out.Allocations)

	rec = s.do(http.MethodGet, "/api/v1/credit-bills/customer/Ravi%20Stores/summary", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary settlement.PartySummary
	decode(t, rec, &summary)
	assert.Equal(t, 2, summary.BillCount)
	assert.True(t, summary.Balance.IsZero())
	assert.Equal(t, settlement.StatusPaid, summary.Status)

	rec = s.do(http.MethodGet, "/api/v1/credit-bills/customers?status=UNPAID", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var unpaid []settlement.PartySummary
	decode(t, rec, &unpaid)
	require.Len(t, unpaid, 1)
	assert.Equal(t, "Other Co", unpaid[0].Party)
}

func TestCreditPaymentErrors(t *testing.T) {
	s := newTestServer(t)
	admin := s.admin()
	bill := s.creditBill(admin, "Ravi", "100")

	cases := []struct {
		name string
		path string
		body interface{}
		code int
	}{
		{"zero amount", "/api/v1/credit-bills/customer/Ravi/pay", map[string]interface{}{"payment_amount": 0}, http.StatusUnprocessableEntity},
		{"negative amount", "/api/v1/credit-bills/customer/Ravi/pay", map[string]interface{}{"payment_amount": "-5"}, http.StatusUnprocessableEntity},
		{"not a number", "/api/v1/credit-bills/customer/Ravi/pay", map[string]interface{}{"payment_amount": "ten"}, http.StatusUnprocessableEntity},
		{"not a number on a bill", "/api/v1/credit-bills/" + bill.BillNumber + "/pay", map[string]interface{}{"payment_amount": "1O0"}, http.StatusUnprocessableEntity},
		{"not a number to a supplier", "/api/v1/supplier-bills/supplier/Acme/pay", map[string]interface{}{"payment_amount": "ten"}, http.StatusUnprocessableEntity},
		{"bad date", "/api/v1/credit-bills/customer/Ravi/pay", map[string]interface{}{"payment_amount": 5, "payment_date": "15/03/2024"}, http.StatusBadRequest},
		{"no open bills", "/api/v1/credit-bills/customer/Nobody/pay", map[string]interface{}{"payment_amount": 5}, http.StatusBadRequest},
		{"unknown bill", "/api/v1/credit-bills/BILL-NOPE/pay", map[string]interface{}{"payment_amount": 5}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, tc.path, tc.body, admin)
			assert.Equal(t, tc.code, rec.Code, rec.Body.String())
		})
	}

	rec := s.do(http.MethodGet, "/api/v1/credit-bills/"+bill.BillNumber, nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail entity.Sale
	decode(t, rec, &detail)
	assert.True(t, detail.PaidAmount.IsZero(), "failed payments must not touch the bill")
}

func TestCreditOverpayment(t *testing.T) {
	s := newTestServer(t)
	admin := s.admin()
	s.creditBill(admin, "Ravi", "100")
	s.creditBill(admin, "Ravi", "50")

	out := s.pay(admin, "/api/v1/credit-bills/customer/Ravi/pay?print=true", map[string]interface{}{"payment_amount": 200})
	assert.Equal(t, settlement.StatusPaid, out.Status)
	assert.True(t, dec("150").Equal(out.Applied))
	assert.True(t, dec("50").Equal(out.Unapplied))

	require.NotNil(t, out.Print)
	assert.False(t, out.Print.Printed)
	assert.Equal(t, "PAYMENT RECEIVED", out.Print.Receipt.Title)

	rec := s.do(http.MethodGet, "/api/v1/credit-bills/summary", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSupplierPayments(t *testing.T) {
	s := newTestServer(t)
	staff := s.staff()

	add := func(number, date, total string) entity.SupplierBill {
		rec := s.do(http.MethodPost, "/api/v1/supplier-bills", map[string]interface{}{
			"supplier_name": "Acme Traders",
			"bill_number":   number,
			"bill_date":     date,
			"total_amount":  total,
		}, staff)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var bill entity.SupplierBill
		decode(t, rec, &bill)
		return bill
	}

	// added out of order, paid by bill date
	newer := add("INV-2", "2024-02-10", "300")
	older := add("INV-1", "2024-01-05", "200")
	assert.Equal(t, settlement.StatusUnpaid, older.Status)

	out := s.pay(staff, "/api/v1/supplier-bills/supplier/Acme%20Traders/pay", map[string]interface{}{"payment_amount": 250.5})
	require.Len(t, out.Allocations, 2)
	assert.Equal(t, "INV-1", out.Allocations[0].BillNumber)
	assert.Equal(t, settlement.StatusPaid, out.Allocations[0].NewStatus)
	assert.Equal(t, "INV-2", out.Allocations[1].BillNumber)
	assert.True(t, dec("50.5").Equal(out.Allocations[1].Applied))
	assert.Equal(t, settlement.StatusPartial, out.Status)

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/v1/supplier-bills/%d", older.ID), nil, staff)
	require.Equal(t, http.StatusOK, rec.Code)
	var paid entity.SupplierBill
	decode(t, rec, &paid)
	assert.Equal(t, settlement.StatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)
	assert.Len(t, paid.Payments, 1)

	// empty amount on the supplier route changes nothing
	out = s.pay(staff, "/api/v1/supplier-bills/supplier/Acme%20Traders/pay", map[string]interface{}{})
	assert.Equal(t, settlement.StatusPaid, out.Status)
	assert.Empty(t, out.Allocations)

	// empty amount on the bill route settles that bill
	out = s.pay(staff, fmt.Sprintf("/api/v1/supplier-bills/%d/pay", newer.ID), map[string]interface{}{"payment_amount": ""})
	assert.Equal(t, settlement.StatusPaid, out.Status)
	require.Len(t, out.Allocations, 1)
	assert.True(t, dec("249.5").Equal(out.Allocations[0].Applied))

	rec = s.do(http.MethodGet, "/api/v1/supplier-bills/suppliers", nil, staff)
	require.Equal(t, http.StatusOK, rec.Code)
	var groups []settlement.PartySummary
	decode(t, rec, &groups)
	require.Len(t, groups, 1)
	assert.True(t, groups[0].Balance.IsZero())

	rec = s.do(http.MethodGet, "/api/v1/supplier-bills/summary", nil, staff)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/supplier-bills/supplier/Nobody/summary", nil, staff)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddSupplierBillValidation(t *testing.T) {
	s := newTestServer(t)
	staff := s.staff()

	rec := s.do(http.MethodPost, "/api/v1/supplier-bills", map[string]interface{}{
		"supplier_name": "Acme", "bill_number": "X1", "total_amount": "-5",
	}, staff)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec, nil)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "total_amount", env.Errors[0].Field)
	assert.Equal(t, "must be a positive number", env.Errors[0].Message)

	rec = s.do(http.MethodPost, "/api/v1/supplier-bills", map[string]interface{}{
		"supplier_name": "Acme", "bill_number": "X1",
	}, staff)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env = decode(t, rec, nil)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "is required", env.Errors[0].Message)

	rec = s.do(http.MethodPost, "/api/v1/supplier-bills", map[string]interface{}{
		"supplier_name": "Acme", "bill_number": "X1", "total_amount": 10,
		"bill_date": "2024-03-10", "due_date": "2024-03-01",
	}, staff)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bill := map[string]interface{}{"supplier_name": "Acme", "bill_number": "X1", "total_amount": 10}
	rec = s.do(http.MethodPost, "/api/v1/supplier-bills", bill, staff)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.do(http.MethodPost, "/api/v1/supplier-bills", bill, staff)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
