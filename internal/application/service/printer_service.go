package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/enum"
	"github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/sangkips/shopkeeper-api/pkg/apperror"
	"github.com/sangkips/shopkeeper-api/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer  printer.Printer
	saleRepo repository.SaleRepository
	header   entity.ReceiptHeader
	width    int
	clock    shopClock
	logger   *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	saleRepo repository.SaleRepository,
	header entity.ReceiptHeader,
	width int,
	loc *time.Location,
	logger *zap.Logger,
) *PrinterService {
	return &PrinterService{
		printer:  p,
		saleRepo: saleRepo,
		header:   header,
		width:    width,
		clock:    newShopClock(loc),
		logger:   logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// PrintJob is a rendered receipt and whether it reached the printer. A
// failed print still returns the receipt so the till can show it.
type PrintJob struct {
	Receipt      *entity.Receipt `json:"receipt"`
	Printed      bool            `json:"printed"`
	PrinterError string          `json:"printer_error,omitempty"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	kind := s.printer.Kind()
	return &PrinterStatus{
		Configured: kind != "none",
		Connected:  s.printer.Ready(ctx),
		Type:       kind,
	}
}

// TestPrint sends a test page to the printer.
func (s *PrinterService) TestPrint(ctx context.Context) *PrintJob {
	total := decimal.NewFromInt(20)
	receipt := &entity.Receipt{
		Header:     s.header,
		Title:      "PRINTER TEST",
		BillNumber: "TEST-001",
		Date:       s.clock.Now().Format("2006-01-02 15:04"),
		Cashier:    "System",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: decimal.NewFromInt(10), Total: decimal.NewFromInt(10)},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: decimal.NewFromInt(5), Total: decimal.NewFromInt(10)},
		},
		Total: total,
		Paid:  total,
		Due:   decimal.Zero,
	}
	return s.print(ctx, receipt)
}

// PrintBill renders a sale receipt and sends it to the printer.
func (s *PrinterService) PrintBill(ctx context.Context, billNumber string) (*PrintJob, error) {
	sale, err := s.saleRepo.GetByBillNumber(ctx, billNumber)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return s.print(ctx, s.saleReceipt(sale)), nil
}

func (s *PrinterService) saleReceipt(sale *entity.Sale) *entity.Receipt {
	title := "TAX INVOICE"
	switch {
	case sale.IsCredit:
		title = "CREDIT BILL"
	case sale.BillType == enum.BillTypeReplacement:
		title = "REPLACEMENT"
	}

	receipt := &entity.Receipt{
		Header:        s.header,
		Title:         title,
		BillNumber:    sale.BillNumber,
		Date:          sale.CreatedAt.In(s.clock.loc).Format("2006-01-02 15:04"),
		Cashier:       sale.CreatedBy,
		Party:         sale.CustomerName,
		PaymentMethod: sale.PaymentMethod.String(),
		Total:         sale.TotalAmount,
		Paid:          sale.PaidAmount,
		Due:           sale.Balance(),
		Footer:        "Thank you, visit again!",
	}
	if sale.IsCredit {
		receipt.PaymentMethod = ""
	}
	for _, item := range sale.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.TotalPrice,
		})
	}
	return receipt
}

// PrintPayment renders a slip listing how a payment was spread over bills.
func (s *PrinterService) PrintPayment(ctx context.Context, title string, outcome *PaymentOutcome) *PrintJob {
	receipt := &entity.Receipt{
		Header: s.header,
		Title:  title,
		Date:   s.clock.Now().Format("2006-01-02 15:04"),
		Party:  outcome.Party,
		Total:  outcome.Applied,
		Paid:   outcome.Applied,
		Due:    decimal.Zero,
		Footer: "Balance status: " + outcome.Status.String(),
	}
	for _, a := range outcome.Allocations {
		receipt.Allocations = append(receipt.Allocations, entity.ReceiptAllocation{
			BillNumber: a.BillNumber,
			Applied:    a.Applied,
			Status:     a.NewStatus.String(),
			Balance:    a.NewBalance,
		})
	}
	return s.print(ctx, receipt)
}

func (s *PrinterService) print(ctx context.Context, receipt *entity.Receipt) *PrintJob {
	job := &PrintJob{Receipt: receipt}
	if s.printer.Kind() == "none" {
		return job
	}
	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.width)); err != nil {
		s.logger.Warn("printer error", zap.String("bill_number", receipt.BillNumber), zap.Error(err))
		job.PrinterError = err.Error()
		return job
	}
	job.Printed = true
	return job
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.Align(printer.AlignCenter).Large(true).Bold(true).
		Line(r.Header.ShopName).
		Large(false).Bold(false)
	if r.Header.Address != "" {
		doc.Line(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Line("Ph: " + r.Header.Phone)
	}
	doc.Align(printer.AlignLeft).Rule('-')
	if r.Title != "" {
		doc.Heading(r.Title)
	}

	if r.BillNumber != "" {
		doc.Pair("Bill:", r.BillNumber)
	}
	doc.Pair("Date:", r.Date)
	if r.Cashier != "" {
		doc.Pair("Cashier:", r.Cashier)
	}
	if r.Party != "" {
		doc.Pair("Customer:", r.Party)
	}
	if r.PaymentMethod != "" {
		doc.Pair("Payment:", r.PaymentMethod)
	}
	doc.Rule('-')

	// Items
	for _, item := range r.Items {
		doc.Pair(fmt.Sprintf("%dx %s", item.Quantity, item.Name), amount(item.Total))
		if item.Quantity > 1 {
			doc.Line("  @ " + amount(item.UnitPrice) + " each")
		}
	}

	// Allocations
	for _, a := range r.Allocations {
		doc.Pair(a.BillNumber, amount(a.Applied))
		doc.Line("  " + a.Status + ", balance " + amount(a.Balance))
	}
	if len(r.Items) > 0 || len(r.Allocations) > 0 {
		doc.Rule('-')
	}

	// Totals
	doc.Bold(true).Pair("TOTAL:", amount(r.Total)).Bold(false)
	if r.Paid.IsPositive() && !r.Paid.Equal(r.Total) {
		doc.Pair("Paid:", amount(r.Paid))
	}
	if r.Due.IsPositive() {
		doc.Pair("Due:", amount(r.Due))
	}

	// Footer
	if r.Footer != "" {
		doc.Rule('-').Align(printer.AlignCenter).Line(r.Footer).Align(printer.AlignLeft)
	}

	return doc.Feed(3).Cut().Bytes()
}
