package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopkeeper-api/internal/application/service"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/dto/response"
)

// CreditHandler serves wholesale credit bills and customer payments
type CreditHandler struct {
	creditService  *service.CreditService
	printerService *service.PrinterService
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(creditService *service.CreditService, printerService *service.PrinterService) *CreditHandler {
	return &CreditHandler{creditService: creditService, printerService: printerService}
}

// ListCustomers returns one row per credit customer
func (h *CreditHandler) ListCustomers(c *gin.Context) {
	status, err := settlement.ParseStatus(c.Query("status"))
	if err != nil {
		response.BadRequest(c, "Invalid status filter")
		return
	}

	customers, err := h.creditService.ListCustomers(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Credit customers retrieved successfully", customers)
}

// CustomerBills returns a customer's credit bills oldest first
func (h *CreditHandler) CustomerBills(c *gin.Context) {
	bills, err := h.creditService.CustomerBills(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer bills retrieved successfully", bills)
}

// CustomerSummary returns the aggregated view of one customer
func (h *CreditHandler) CustomerSummary(c *gin.Context) {
	summary, err := h.creditService.CustomerSummary(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer summary retrieved successfully", summary)
}

// BillDetail returns a credit bill with its payment history
func (h *CreditHandler) BillDetail(c *gin.Context) {
	bill, err := h.creditService.BillDetail(c.Request.Context(), c.Param("bill_number"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Credit bill retrieved successfully", bill)
}

// PayBill records a payment starting from the customer of the given bill
// @Summary Pay Credit Bill
// @Tags credit
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param bill_number path string true "Bill number"
// @Param print query bool false "Print an allocation slip"
// @Param request body request.PaymentRequest true "Payment"
// @Success 200 {object} response.APIResponse
// @Router /credit-bills/{bill_number}/pay [post]
func (h *CreditHandler) PayBill(c *gin.Context) {
	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	input, err := paymentInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	outcome, err := h.creditService.PayBill(c.Request.Context(), c.Param("bill_number"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, outcome)
}

// PayCustomer records a payment against all of a customer's open bills
func (h *CreditHandler) PayCustomer(c *gin.Context) {
	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	input, err := paymentInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	outcome, err := h.creditService.PayCustomer(c.Request.Context(), c.Param("name"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, outcome)
}

func (h *CreditHandler) respond(c *gin.Context, outcome *service.PaymentOutcome) {
	resp := paymentResponse{PaymentOutcome: outcome}
	if wantsPrint(c) {
		resp.Print = h.printerService.PrintPayment(c.Request.Context(), "PAYMENT RECEIVED", outcome)
	}
	response.OK(c, "Payment recorded successfully", resp)
}

// Summary returns credit totals across all customers
func (h *CreditHandler) Summary(c *gin.Context) {
	summary, err := h.creditService.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Credit summary retrieved successfully", summary)
}
