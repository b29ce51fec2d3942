package routes_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testServer) createProduct(token, name string, qty int, price string) entity.Product {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": name, "unit_price": price, "quantity": qty,
	}, token)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var p entity.Product
	decode(s.t, rec, &p)
	return p
}

func (s *testServer) getProduct(token string, id uint) entity.Product {
	s.t.Helper()
	rec := s.do(http.MethodGet, fmt.Sprintf("/api/v1/products/%d", id), nil, token)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var p entity.Product
	decode(s.t, rec, &p)
	return p
}

func TestCreateBill(t *testing.T) {
	s := newTestServer(t)
	staff := s.staff()
	rice := s.createProduct(staff, "Rice 1kg", 10, "50")

	rec := s.do(http.MethodPost, "/api/v1/billing", map[string]interface{}{
		"customer_name":  "Walk-in",
		"payment_method": "CASH",
		"items": []map[string]interface{}{
			{"product_id": rice.ID, "quantity": 2},
			{"name": "Carry bag", "quantity": 1, "unit_price": 5.5},
		},
	}, staff)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var sale entity.Sale
	decode(t, rec, &sale)
	assert.Regexp(t, `^BILL-\d{14}-[0-9A-F]{4}$`, sale.BillNumber)
	assert.True(t, decimal.RequireFromString("105.5").Equal(sale.TotalAmount), sale.TotalAmount.String())
	assert.Equal(t, "PAID", sale.PaymentStatus.String())
	assert.True(t, sale.PaidAmount.Equal(sale.TotalAmount))
	assert.Equal(t, "staff", sale.CreatedBy)
	assert.Len(t, sale.Items, 2)

	assert.Equal(t, 8, s.getProduct(staff, rice.ID).Quantity)

	rec = s.do(http.MethodGet, "/api/v1/billing/"+sale.BillNumber, nil, staff)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/billing/BILL-NOPE", nil, staff)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/billing?bill_type=REGULAR", nil, staff)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items      []entity.Sale `json:"items"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	decode(t, rec, &page)
	assert.EqualValues(t, 1, page.Pagination.Total)

	rec = s.do(http.MethodGet, "/api/v1/billing/daily", nil, staff)
	require.Equal(t, http.StatusOK, rec.Code)
	var daily struct {
		Date        string          `json:"date"`
		BillCount   int64           `json:"bill_count"`
		TotalAmount decimal.Decimal `json:"total_amount"`
	}
	decode(t, rec, &daily)
	assert.NotEmpty(t, daily.Date)
	assert.EqualValues(t, 1, daily.BillCount)
	assert.True(t, decimal.RequireFromString("105.5").Equal(daily.TotalAmount))
}

func TestCreateBillInsufficientStock(t *testing.T) {
	s := newTestServer(t)
	staff := s.staff()
	oil := s.createProduct(staff, "Oil 1L", 1, "120")

	rec := s.do(http.MethodPost, "/api/v1/billing", map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": oil.ID, "quantity": 3}},
	}, staff)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec, nil)
	assert.Contains(t, env.Message, "Oil 1L")

	assert.Equal(t, 1, s.getProduct(staff, oil.ID).Quantity)
	var count int64
	require.NoError(t, s.db.Model(&entity.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateBillValidation(t *testing.T) {
	s := newTestServer(t)
	staff := s.staff()

	rec := s.do(http.MethodPost, "/api/v1/billing", map[string]interface{}{"items": []interface{}{}}, staff)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec, nil)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "items", env.Errors[0].Field)

	rec = s.do(http.MethodPost, "/api/v1/billing", map[string]interface{}{
		"items": []map[string]interface{}{{"name": "Tea", "quantity": 0, "unit_price": "10"}},
	}, staff)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env = decode(t, rec, nil)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "items[0].quantity", env.Errors[0].Field)

	rec = s.do(http.MethodPost, "/api/v1/billing", map[string]interface{}{
		"bill_type": "CREDIT",
		"items":     []map[string]interface{}{{"name": "Tea", "quantity": 1, "unit_price": "10"}},
	}, staff)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "credit bill without customer")

	rec = s.do(http.MethodPost, "/api/v1/billing", `{"items": [`, staff)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSplitPayment(t *testing.T) {
	s := newTestServer(t)
	staff := s.staff()

	item := []map[string]interface{}{{"name": "Sugar", "quantity": 2, "unit_price": "45"}}

	rec := s.do(http.MethodPost, "/api/v1/billing", map[string]interface{}{
		"payment_method": "SPLIT", "cash_amount": "50", "upi_amount": "30", "items": item,
	}, staff)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "split must add up to the total")

	rec = s.do(http.MethodPost, "/api/v1/billing", map[string]interface{}{
		"payment_method": "SPLIT", "cash_amount": "50", "upi_amount": "40", "items": item,
	}, staff)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sale entity.Sale
	decode(t, rec, &sale)
	assert.True(t, decimal.NewFromInt(50).Equal(sale.CashAmount))
	assert.True(t, decimal.NewFromInt(40).Equal(sale.UPIAmount))
}

func TestIdempotentBillCreation(t *testing.T) {
	s := newTestServer(t)
	staff := s.staff()

	body := map[string]interface{}{
		"items": []map[string]interface{}{{"name": "Bread", "quantity": 1, "unit_price": "30"}},
	}

	first := s.do(http.MethodPost, "/api/v1/billing", body, staff, "Idempotency-Key", "till-1-0001")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	second := s.do(http.MethodPost, "/api/v1/billing", body, staff, "Idempotency-Key", "till-1-0001")
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	var count int64
	require.NoError(t, s.db.Model(&entity.Sale{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	body["customer_name"] = "Someone else"
	third := s.do(http.MethodPost, "/api/v1/billing", body, staff, "Idempotency-Key", "till-1-0001")
	assert.Equal(t, http.StatusUnprocessableEntity, third.Code)

	// keys are scoped per user
	fourth := s.do(http.MethodPost, "/api/v1/billing", body, s.admin(), "Idempotency-Key", "till-1-0001")
	assert.Equal(t, http.StatusCreated, fourth.Code)
}

func TestDeleteTransaction(t *testing.T) {
	s := newTestServer(t)
	admin := s.admin()

	rec := s.do(http.MethodPost, "/api/v1/billing", map[string]interface{}{
		"customer_name": "Ravi", "bill_type": "CREDIT",
		"items": []map[string]interface{}{{"name": "Wholesale lot", "quantity": 1, "unit_price": "500"}},
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sale entity.Sale
	decode(t, rec, &sale)

	rec = s.do(http.MethodPost, "/api/v1/credit-bills/customer/Ravi/pay", map[string]interface{}{"payment_amount": 100}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/transactions/%d", sale.ID), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var payments int64
	require.NoError(t, s.db.Model(&entity.CreditPayment{}).Count(&payments).Error)
	assert.Zero(t, payments)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/transactions/%d", sale.ID), nil, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
