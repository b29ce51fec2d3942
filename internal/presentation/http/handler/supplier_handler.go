package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopkeeper-api/internal/application/service"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/dto/response"
)

// SupplierHandler serves purchase bills and payments to suppliers
type SupplierHandler struct {
	supplierService *service.SupplierService
	printerService  *service.PrinterService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(supplierService *service.SupplierService, printerService *service.PrinterService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService, printerService: printerService}
}

// AddBill records a supplier bill
func (h *SupplierHandler) AddBill(c *gin.Context) {
	var req request.AddSupplierBillRequest
	if !bindJSON(c, &req) {
		return
	}

	bill, err := h.supplierService.AddBill(c.Request.Context(), &service.AddBillInput{
		SupplierName: req.SupplierName,
		BillNumber:   req.BillNumber,
		BillDate:     req.BillDate.Ptr(),
		DueDate:      req.DueDate.Ptr(),
		TotalAmount:  req.TotalAmount.Value,
		Description:  req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Supplier bill added successfully", bill)
}

func statusQuery(c *gin.Context) (settlement.Status, bool) {
	status, err := settlement.ParseStatus(c.Query("status"))
	if err != nil {
		response.BadRequest(c, "Invalid status filter")
		return "", false
	}
	return status, true
}

// ListBills returns supplier bills, newest bill date first
func (h *SupplierHandler) ListBills(c *gin.Context) {
	status, ok := statusQuery(c)
	if !ok {
		return
	}

	bills, err := h.supplierService.ListBills(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Supplier bills retrieved successfully", bills)
}

// Suppliers returns one row per supplier
func (h *SupplierHandler) Suppliers(c *gin.Context) {
	status, ok := statusQuery(c)
	if !ok {
		return
	}

	groups, err := h.supplierService.Suppliers(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Suppliers retrieved successfully", groups)
}

// SupplierBills returns one supplier's bills with payment history
func (h *SupplierHandler) SupplierBills(c *gin.Context) {
	bills, err := h.supplierService.SupplierBills(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Supplier bills retrieved successfully", bills)
}

// SupplierSummary returns the aggregated view of one supplier
func (h *SupplierHandler) SupplierSummary(c *gin.Context) {
	summary, err := h.supplierService.SupplierSummary(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Supplier summary retrieved successfully", summary)
}

// GetBill returns a supplier bill with its history
func (h *SupplierHandler) GetBill(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	bill, err := h.supplierService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Supplier bill retrieved successfully", bill)
}

// PayBill pays a single bill, cascading any remainder to the supplier's
// other open bills
func (h *SupplierHandler) PayBill(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	input, err := paymentInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	outcome, err := h.supplierService.PayBill(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, outcome)
}

// PaySupplier spreads a payment over a supplier's open bills
func (h *SupplierHandler) PaySupplier(c *gin.Context) {
	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	input, err := paymentInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	outcome, err := h.supplierService.PaySupplier(c.Request.Context(), c.Param("name"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, outcome)
}

func (h *SupplierHandler) respond(c *gin.Context, outcome *service.PaymentOutcome) {
	resp := paymentResponse{PaymentOutcome: outcome}
	if wantsPrint(c) {
		resp.Print = h.printerService.PrintPayment(c.Request.Context(), "SUPPLIER PAYMENT", outcome)
	}
	response.OK(c, "Payment recorded successfully", resp)
}

// DeleteBill removes a supplier bill and its payments
func (h *SupplierHandler) DeleteBill(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.supplierService.DeleteBill(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Supplier bill deleted successfully", nil)
}

// Summary returns supplier dues and this month's payments
func (h *SupplierHandler) Summary(c *gin.Context) {
	summary, err := h.supplierService.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Supplier summary retrieved successfully", summary)
}
