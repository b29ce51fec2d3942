package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/sangkips/shopkeeper-api/internal/infrastructure/repository"
	"github.com/sangkips/shopkeeper-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingPrinter captures jobs instead of talking to a device
type recordingPrinter struct {
	jobs [][]byte
	err  error
}

func (p *recordingPrinter) Print(_ context.Context, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}
func (p *recordingPrinter) Kind() string               { return "network" }
func (p *recordingPrinter) Ready(context.Context) bool { return p.err == nil }

func newPrinterService(t *testing.T, f *fixture, p printer.Printer) *PrinterService {
	t.Helper()
	svc := NewPrinterService(p, repository.NewSaleRepository(f.db),
		entity.ReceiptHeader{ShopName: "Sri Stores", Phone: "98450 00000"}, 32, ist, zap.NewNop())
	svc.clock.now = func() time.Time { return fixedNow }
	return svc
}

func TestPrintBill(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dev := &recordingPrinter{}
	svc := newPrinterService(t, f, dev)

	sale, err := f.billing.CreateBill(ctx, &CreateBillInput{
		Items: []BillItemInput{{Name: "Soap", Quantity: 2, UnitPrice: decPtr("30")}},
	})
	require.NoError(t, err)

	job, err := svc.PrintBill(ctx, sale.BillNumber)
	require.NoError(t, err)
	assert.True(t, job.Printed)
	assert.Equal(t, "TAX INVOICE", job.Receipt.Title)
	assert.Equal(t, "2024-03-10 11:00", job.Receipt.Date)
	require.Len(t, dev.jobs, 1)
	assert.True(t, bytes.Contains(dev.jobs[0], []byte("Sri Stores")))
	assert.True(t, bytes.Contains(dev.jobs[0], []byte("2x Soap")))

	_, err = svc.PrintBill(ctx, "BILL-NOPE")
	assertAppError(t, err, http.StatusNotFound)
}

func TestPrint_FailureStillReturnsReceipt(t *testing.T) {
	f := newFixture(t)
	svc := newPrinterService(t, f, &recordingPrinter{err: errors.New("paper out")})

	job := svc.TestPrint(context.Background())
	assert.False(t, job.Printed)
	assert.Equal(t, "paper out", job.PrinterError)
	assert.Len(t, job.Receipt.Items, 2)

	status := svc.GetStatus(context.Background())
	assert.True(t, status.Configured)
	assert.False(t, status.Connected)
}

func TestPrintPayment_NullPrinter(t *testing.T) {
	f := newFixture(t)
	svc := newPrinterService(t, f, printer.NewNullPrinter())

	job := svc.PrintPayment(context.Background(), "PAYMENT RECEIPT", &PaymentOutcome{
		Party:   "Ravi",
		Status:  settlement.StatusPartial,
		Applied: dec("250"),
		Allocations: []settlement.Allocation{
			{BillNumber: "B1", Applied: dec("200"), NewStatus: settlement.StatusPaid},
			{BillNumber: "B2", Applied: dec("50"), NewStatus: settlement.StatusPartial, NewBalance: dec("250")},
		},
	})
	assert.False(t, job.Printed)
	assert.Empty(t, job.PrinterError)
	require.Len(t, job.Receipt.Allocations, 2)
	assert.Equal(t, "PARTIAL", job.Receipt.Allocations[1].Status)
	assert.False(t, svc.GetStatus(context.Background()).Configured)
}

func TestFormatReceipt(t *testing.T) {
	out := FormatReceipt(&entity.Receipt{
		Header: entity.ReceiptHeader{ShopName: "Shop"},
		Date:   "2024-03-10 11:00",
		Items:  []entity.ReceiptItem{{Name: "Rice", Quantity: 3, UnitPrice: dec("10"), Total: dec("30")}},
		Total:  dec("30"),
		Paid:   dec("20"),
		Due:    dec("10"),
	}, 32)

	assert.True(t, bytes.Contains(out, []byte("  @ 10.00 each")))
	assert.True(t, bytes.Contains(out, []byte("Due:")))
	assert.True(t, bytes.Contains(out, []byte("Paid:")))
}
