package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopkeeper-api/internal/application/service"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus(c.Request.Context())
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	h.respond(c, h.printerService.TestPrint(c.Request.Context()))
}

// PrintBill prints a sale receipt.
func (h *PrinterHandler) PrintBill(c *gin.Context) {
	job, err := h.printerService.PrintBill(c.Request.Context(), c.Param("bill_number"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, job)
}

// respond returns the receipt even when nothing was printed, so the till can
// still show it
func (h *PrinterHandler) respond(c *gin.Context, job *service.PrintJob) {
	msg := "Receipt printed"
	switch {
	case job.PrinterError != "":
		msg = "Receipt generated, printing failed"
	case !job.Printed:
		msg = "Receipt generated (printer disabled)"
	}
	response.OK(c, msg, job)
}
