package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/sangkips/shopkeeper-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SupplierService manages the bills the shop owes its suppliers
type SupplierService struct {
	billRepo repository.SupplierBillRepository
	ledger   repository.SupplierLedger
	engine   *settlement.Engine
	clock    shopClock
	logger   *zap.Logger
}

// NewSupplierService creates a new supplier service
func NewSupplierService(
	billRepo repository.SupplierBillRepository,
	ledger repository.SupplierLedger,
	loc *time.Location,
	logger *zap.Logger,
) *SupplierService {
	return &SupplierService{
		billRepo: billRepo,
		ledger:   ledger,
		engine:   settlement.NewEngine(ledger, logger.Named("supplier")),
		clock:    newShopClock(loc),
		logger:   logger,
	}
}

// AddBillInput represents a purchase bill received from a supplier
type AddBillInput struct {
	SupplierName string
	BillNumber   string
	BillDate     *time.Time
	DueDate      *time.Time
	TotalAmount  decimal.Decimal
	Description  string
}

// AddBill records a new unpaid supplier bill
func (s *SupplierService) AddBill(ctx context.Context, input *AddBillInput) (*entity.SupplierBill, error) {
	supplier := strings.TrimSpace(input.SupplierName)
	number := strings.TrimSpace(input.BillNumber)
	if supplier == "" || number == "" {
		return nil, apperror.NewBadRequestError("Supplier name and bill number are required")
	}
	if !input.TotalAmount.IsPositive() {
		return nil, apperror.NewUnprocessableError("Total amount must be a positive number")
	}

	billDate := s.clock.dateOr(input.BillDate)
	if input.DueDate != nil && input.DueDate.Before(dateOnly(billDate)) {
		return nil, apperror.NewBadRequestError("Due date cannot be before the bill date")
	}

	existing, err := s.billRepo.GetByNumber(ctx, supplier, number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Bill " + number + " already recorded for " + supplier)
	}

	bill := &entity.SupplierBill{
		SupplierName: supplier,
		BillNumber:   number,
		BillDate:     dateOnly(billDate),
		DueDate:      input.DueDate,
		TotalAmount:  input.TotalAmount.Round(2),
		PaidAmount:   decimal.Zero,
		Status:       settlement.StatusUnpaid,
		Description:  input.Description,
	}
	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}

	s.logger.Info("supplier bill added",
		zap.String("supplier", supplier),
		zap.String("bill_number", number),
		zap.String("total", bill.TotalAmount.StringFixed(2)),
	)
	return bill, nil
}

// ListBills returns bills newest first, optionally filtered by status
func (s *SupplierService) ListBills(ctx context.Context, status settlement.Status) ([]entity.SupplierBill, error) {
	return s.billRepo.List(ctx, status)
}

// Suppliers returns one summary per supplier, optionally filtered by status
func (s *SupplierService) Suppliers(ctx context.Context, status settlement.Status) ([]settlement.PartySummary, error) {
	bills, err := s.ledger.AllBills(ctx)
	if err != nil {
		return nil, err
	}
	summaries := settlement.FilterByStatus(settlement.GroupByParty(bills), status)
	if summaries == nil {
		summaries = []settlement.PartySummary{}
	}
	return summaries, nil
}

// SupplierBills returns one supplier's bills, oldest first, each with its payments
func (s *SupplierService) SupplierBills(ctx context.Context, supplier string) ([]entity.SupplierBill, error) {
	return s.billRepo.ListBySupplier(ctx, strings.TrimSpace(supplier))
}

// SupplierSummary returns the aggregated position of one supplier
func (s *SupplierService) SupplierSummary(ctx context.Context, supplier string) (*settlement.PartySummary, error) {
	summary, err := s.engine.PartySummary(ctx, supplier)
	if err != nil {
		return nil, settlementError(err)
	}
	if summary.BillCount == 0 {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return summary, nil
}

// GetBill returns a bill with its payment history
func (s *SupplierService) GetBill(ctx context.Context, id uint) (*entity.SupplierBill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Supplier bill")
	}
	return bill, nil
}

// PaySupplier spreads a payment over the supplier's open bills, oldest bill
// date first. A request without an amount changes nothing and reports PAID.
func (s *SupplierService) PaySupplier(ctx context.Context, supplier string, input *PaymentInput) (*PaymentOutcome, error) {
	supplier = strings.TrimSpace(supplier)
	if supplier == "" {
		return nil, apperror.NewBadRequestError("Supplier name is required")
	}
	if input.Amount == nil {
		return &PaymentOutcome{
			Party:       supplier,
			Status:      settlement.StatusPaid,
			Allocations: []settlement.Allocation{},
			Applied:     decimal.Zero,
			Unapplied:   decimal.Zero,
		}, nil
	}
	return s.allocate(ctx, supplier, *input.Amount, input)
}

// SettleSupplier pays off everything still owed to the supplier
func (s *SupplierService) SettleSupplier(ctx context.Context, supplier string, input *PaymentInput) (*PaymentOutcome, error) {
	st, err := s.engine.SettleParty(ctx, supplier, s.clock.dateOr(input.Date), input.Notes)
	if err != nil {
		return nil, settlementError(err)
	}
	return outcomeFromSettlement(supplier, st), nil
}

// PayBill applies a payment quoted against one bill. An amount cascades over
// the supplier's open bills. A missing or zero amount settles just this bill.
func (s *SupplierService) PayBill(ctx context.Context, id uint, input *PaymentInput) (*PaymentOutcome, error) {
	bill, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Amount == nil || input.Amount.IsZero() {
		st, err := s.engine.SettleBill(ctx, id, s.clock.dateOr(input.Date), input.Notes)
		if err != nil {
			return nil, settlementError(err)
		}
		return outcomeFromSettlement(bill.SupplierName, st), nil
	}
	return s.allocate(ctx, bill.SupplierName, *input.Amount, input)
}

func (s *SupplierService) allocate(ctx context.Context, supplier string, amount decimal.Decimal, input *PaymentInput) (*PaymentOutcome, error) {
	result, err := s.engine.Allocate(ctx, settlement.PaymentRequest{
		Party:  supplier,
		Amount: amount,
		Date:   s.clock.dateOr(input.Date),
		Note:   input.Notes,
	})
	if err != nil {
		return nil, settlementError(err)
	}
	return outcomeFromResult(result), nil
}

// DeleteBill removes a bill and its payment history
func (s *SupplierService) DeleteBill(ctx context.Context, id uint) error {
	if _, err := s.GetBill(ctx, id); err != nil {
		return err
	}
	return s.billRepo.Delete(ctx, id)
}

// Summary reports what is owed and what was paid in the current month
func (s *SupplierService) Summary(ctx context.Context) (*repository.SupplierSummary, error) {
	start, end := s.clock.monthBounds(s.clock.Now())
	return s.billRepo.Summary(ctx, start, end)
}

// dateOnly drops the clock part, keeping the calendar day as written
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
