package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopkeeper-api/internal/application/service"
	"github.com/sangkips/shopkeeper-api/internal/domain/enum"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/dto/response"
)

// BillingHandler handles counter sales
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// CreateBill handles creating a bill
// @Summary Create Bill
// @Tags billing
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection key"
// @Param request body request.CreateBillRequest true "Bill"
// @Success 201 {object} response.APIResponse
// @Router /billing [post]
func (h *BillingHandler) CreateBill(c *gin.Context) {
	var req request.CreateBillRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]service.BillItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.BillItemInput{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.Ptr(),
		})
	}

	sale, err := h.billingService.CreateBill(c.Request.Context(), &service.CreateBillInput{
		CustomerName:  req.CustomerName,
		Items:         items,
		PaymentMethod: req.PaymentMethod,
		CashAmount:    req.CashAmount.Ptr(),
		UPIAmount:     req.UPIAmount.Ptr(),
		BillType:      req.BillType,
		CreatedBy:     GetUsername(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", sale)
}

// GetBill returns a bill with its items
func (h *BillingHandler) GetBill(c *gin.Context) {
	sale, err := h.billingService.GetBill(c.Request.Context(), c.Param("bill_number"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill retrieved successfully", sale)
}

// ListBills handles listing recent bills
func (h *BillingHandler) ListBills(c *gin.Context) {
	input := &service.ListBillsInput{
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", 20),
		Search:  c.Query("search"),
	}
	if v := c.Query("bill_type"); v != "" {
		bt := enum.BillType(v)
		if !bt.Valid() {
			response.BadRequest(c, "Invalid bill_type")
			return
		}
		input.BillType = &bt
	}

	var ok bool
	if input.StartDate, ok = parseDateQuery(c, "start_date"); !ok {
		return
	}
	if input.EndDate, ok = parseDateQuery(c, "end_date"); !ok {
		return
	}

	result, err := h.billingService.ListBills(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// DailySales returns the sales total of one day, today by default
func (h *BillingHandler) DailySales(c *gin.Context) {
	day, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}

	out, err := h.billingService.DailySales(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Daily sales retrieved successfully", out)
}

// SalesSummary returns count, total, average and max over a date range
func (h *BillingHandler) SalesSummary(c *gin.Context) {
	from, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	out, err := h.billingService.SalesSummary(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales summary retrieved successfully", out)
}

// DeleteTransaction removes a sale with its items and payments
func (h *BillingHandler) DeleteTransaction(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.billingService.DeleteTransaction(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Transaction deleted successfully", nil)
}

// paymentInput converts a payment body into the service input
func paymentInput(req *request.PaymentRequest) (*service.PaymentInput, error) {
	amount, err := service.ParsePaymentAmount(string(req.PaymentAmount))
	if err != nil {
		return nil, err
	}
	return &service.PaymentInput{
		Amount: amount,
		Date:   req.PaymentDate.Ptr(),
		Notes:  req.Notes,
	}, nil
}

// paymentResponse is the outcome of a payment plus the printed slip, when
// one was asked for
type paymentResponse struct {
	*service.PaymentOutcome
	Print *service.PrintJob `json:"print,omitempty"`
}
