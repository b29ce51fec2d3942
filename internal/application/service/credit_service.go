package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/sangkips/shopkeeper-api/pkg/apperror"
	"go.uber.org/zap"
)

// CreditService manages wholesale customers buying on credit
type CreditService struct {
	saleRepo repository.SaleRepository
	ledger   repository.CreditLedger
	engine   *settlement.Engine
	clock    shopClock
	logger   *zap.Logger
}

// NewCreditService creates a new credit service
func NewCreditService(
	saleRepo repository.SaleRepository,
	ledger repository.CreditLedger,
	loc *time.Location,
	logger *zap.Logger,
) *CreditService {
	return &CreditService{
		saleRepo: saleRepo,
		ledger:   ledger,
		engine:   settlement.NewEngine(ledger, logger.Named("credit")),
		clock:    newShopClock(loc),
		logger:   logger,
	}
}

// ListCustomers returns one summary per credit customer, most recently
// billed first, optionally restricted to a party status
func (s *CreditService) ListCustomers(ctx context.Context, status settlement.Status) ([]settlement.PartySummary, error) {
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

// CustomerBills returns a customer's credit bills, oldest first
func (s *CreditService) CustomerBills(ctx context.Context, customer string) ([]entity.Sale, error) {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}
	return s.saleRepo.ListCredit(ctx, customer)
}

// CustomerSummary returns the aggregated position of one customer
func (s *CreditService) CustomerSummary(ctx context.Context, customer string) (*settlement.PartySummary, error) {
	summary, err := s.engine.PartySummary(ctx, customer)
	if err != nil {
		return nil, settlementError(err)
	}
	if summary.BillCount == 0 {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return summary, nil
}

// BillDetail returns a credit bill with its items and payment history
func (s *CreditService) BillDetail(ctx context.Context, billNumber string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByBillNumber(ctx, billNumber)
	if err != nil {
		return nil, err
	}
	if sale == nil || !sale.IsCredit {
		return nil, apperror.NewNotFoundError("Credit bill")
	}
	return sale, nil
}

// PayBill records a payment quoted against one credit bill. The amount
// cascades across the customer's open bills oldest first, so it may land on
// other bills than the one named. Without an amount the customer's whole
// balance is settled.
func (s *CreditService) PayBill(ctx context.Context, billNumber string, input *PaymentInput) (*PaymentOutcome, error) {
	bill, err := s.ledger.BillByNumber(ctx, billNumber)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Credit bill")
	}
	return s.pay(ctx, bill.Party, input)
}

// PayCustomer records a payment from a customer against their open bills
func (s *CreditService) PayCustomer(ctx context.Context, customer string, input *PaymentInput) (*PaymentOutcome, error) {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}
	return s.pay(ctx, customer, input)
}

func (s *CreditService) pay(ctx context.Context, customer string, input *PaymentInput) (*PaymentOutcome, error) {
	date := s.clock.dateOr(input.Date)

	if input.Amount == nil {
		st, err := s.engine.SettleParty(ctx, customer, date, input.Notes)
		if err != nil {
			return nil, settlementError(err)
		}
		return outcomeFromSettlement(customer, st), nil
	}

	result, err := s.engine.Allocate(ctx, settlement.PaymentRequest{
		Party:  customer,
		Amount: *input.Amount,
		Date:   date,
		Note:   input.Notes,
	})
	if err != nil {
		return nil, settlementError(err)
	}
	return outcomeFromResult(result), nil
}

// Summary aggregates the whole credit book
func (s *CreditService) Summary(ctx context.Context) (*repository.CreditSummary, error) {
	return s.saleRepo.CreditSummary(ctx)
}
