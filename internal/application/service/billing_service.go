package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/enum"
	"github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/sangkips/shopkeeper-api/pkg/apperror"
	"github.com/sangkips/shopkeeper-api/pkg/pagination"
	"github.com/sangkips/shopkeeper-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BillingService raises counter bills and reports on sales
type BillingService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	clock       shopClock
	logger      *zap.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	loc *time.Location,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		clock:       newShopClock(loc),
		logger:      logger,
	}
}

// BillItemInput is one line of a new bill. ProductID 0 marks a manual line.
type BillItemInput struct {
	ProductID uint
	Name      string
	Quantity  int
	UnitPrice *decimal.Decimal
}

// CreateBillInput represents the create bill input
type CreateBillInput struct {
	CustomerName  string
	Items         []BillItemInput
	PaymentMethod enum.PaymentMethod
	CashAmount    *decimal.Decimal
	UPIAmount     *decimal.Decimal
	BillType      enum.BillType
	CreatedBy     string
}

// CreateBill validates the lines, prices them and writes the bill together
// with its stock decrements
func (s *BillingService) CreateBill(ctx context.Context, input *CreateBillInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Bill must contain at least one item")
	}

	billType := input.BillType
	if billType == "" {
		billType = enum.BillTypeRegular
	}
	if !billType.Valid() {
		return nil, apperror.NewBadRequestError("Unknown bill type " + billType.String())
	}
	customer := strings.TrimSpace(input.CustomerName)
	if billType.IsCredit() && customer == "" {
		return nil, apperror.NewBadRequestError("Customer name is required for credit bills")
	}

	// Batch fetch all products in one query (prevents N+1)
	var productIDs []uint
	for _, item := range input.Items {
		if item.ProductID != 0 {
			productIDs = append(productIDs, item.ProductID)
		}
	}
	products := make(map[uint]entity.Product, len(productIDs))
	if len(productIDs) > 0 {
		found, err := s.productRepo.GetByIDs(ctx, productIDs)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			products[p.ID] = p
		}
	}

	items := make([]entity.SaleItem, 0, len(input.Items))
	decrements := make(map[uint]int)
	total := decimal.Zero
	for i, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Quantity must be greater than zero")
		}

		item := entity.SaleItem{Quantity: line.Quantity, ProductName: strings.TrimSpace(line.Name)}
		if line.ProductID == 0 {
			if item.ProductName == "" || line.UnitPrice == nil {
				return nil, apperror.NewBadRequestError("Manual item " + itoa(i+1) + " needs a name and unit price")
			}
			item.UnitPrice = *line.UnitPrice
		} else {
			product, ok := products[line.ProductID]
			if !ok {
				return nil, apperror.NewNotFoundError("Product " + itoa(int(line.ProductID)))
			}
			id := product.ID
			item.ProductID = &id
			if item.ProductName == "" {
				item.ProductName = product.Name
			}
			item.UnitPrice = product.UnitPrice
			if line.UnitPrice != nil {
				item.UnitPrice = *line.UnitPrice
			}
			decrements[id] += line.Quantity
		}
		if item.UnitPrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Unit price cannot be negative")
		}

		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		total = total.Add(item.TotalPrice)
		items = append(items, item)
	}

	now := s.clock.now()
	sale := &entity.Sale{
		BillNumber:   utils.GenerateBillNumber(now, s.clock.loc),
		CustomerName: customer,
		TotalAmount:  total,
		BillType:     billType,
		IsCredit:     billType.IsCredit(),
		CreatedBy:    input.CreatedBy,
		CreatedAt:    now.UTC(),
		Items:        items,
	}
	if err := s.applyPayment(sale, input); err != nil {
		return nil, err
	}

	failed, err := s.saleRepo.CreateWithStock(ctx, sale, decrements)
	if err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		names := make([]string, 0, len(failed))
		for _, id := range failed {
			names = append(names, products[id].Name)
		}
		return nil, apperror.NewBadRequestError("Insufficient stock for: " + strings.Join(names, ", "))
	}

	s.logger.Info("bill created",
		zap.String("bill_number", sale.BillNumber),
		zap.String("bill_type", billType.String()),
		zap.String("total", sale.TotalAmount.StringFixed(2)),
	)
	return sale, nil
}

// applyPayment fills the tender fields. Credit bills start UNPAID and must
// carry a positive total, since a zero total would already derive as PAID;
// every other bill is settled at the counter.
func (s *BillingService) applyPayment(sale *entity.Sale, input *CreateBillInput) error {
	method := input.PaymentMethod
	if method == "" {
		method = enum.PaymentMethodCash
	}
	if !method.Valid() {
		return apperror.NewBadRequestError("Unknown payment method " + method.String())
	}
	sale.PaymentMethod = method
	sale.CashAmount = decimal.Zero
	sale.UPIAmount = decimal.Zero

	if sale.IsCredit {
		if !sale.TotalAmount.IsPositive() {
			return apperror.NewUnprocessableError("Credit bill total must be a positive number")
		}
		sale.PaidAmount = decimal.Zero
		sale.PaymentStatus = settlement.Derive(sale.TotalAmount, sale.PaidAmount)
		return nil
	}

	switch method {
	case enum.PaymentMethodCash:
		sale.CashAmount = sale.TotalAmount
	case enum.PaymentMethodUPI:
		sale.UPIAmount = sale.TotalAmount
	case enum.PaymentMethodSplit:
		if input.CashAmount == nil || input.UPIAmount == nil {
			return apperror.NewBadRequestError("Split payment needs cash and UPI amounts")
		}
		if input.CashAmount.IsNegative() || input.UPIAmount.IsNegative() {
			return apperror.NewBadRequestError("Split amounts cannot be negative")
		}
		tendered := input.CashAmount.Add(*input.UPIAmount)
		if tendered.Sub(sale.TotalAmount).Abs().GreaterThan(settlement.Epsilon) {
			return apperror.NewBadRequestError("Cash and UPI amounts must add up to " + sale.TotalAmount.StringFixed(2))
		}
		sale.CashAmount = *input.CashAmount
		sale.UPIAmount = *input.UPIAmount
	}

	sale.PaymentStatus = settlement.StatusPaid
	sale.PaidAmount = sale.TotalAmount
	return nil
}

// GetBill returns a bill with its items and payments
func (s *BillingService) GetBill(ctx context.Context, billNumber string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByBillNumber(ctx, billNumber)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return sale, nil
}

// ListBillsInput represents the filters for listing bills
type ListBillsInput struct {
	Page      int
	PerPage   int
	Search    string
	BillType  *enum.BillType
	StartDate *time.Time
	EndDate   *time.Time
}

// ListBills returns recent bills, newest first
func (s *BillingService) ListBills(ctx context.Context, input *ListBillsInput) (*pagination.PaginatedResult[entity.Sale], error) {
	params := &pagination.PaginationParams{Page: input.Page, PerPage: input.PerPage}
	params.Validate()

	sales, total, err := s.saleRepo.List(ctx, &repository.SaleFilterParams{
		Pagination: params,
		Search:     input.Search,
		BillType:   input.BillType,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	})
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(sales, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// DailySalesOutput is the sales total of one shop day
type DailySalesOutput struct {
	Date string `json:"date"`
	*repository.SalesTotals
}

// DailySales totals regular bills for the given day, today when nil
func (s *BillingService) DailySales(ctx context.Context, day *time.Time) (*DailySalesOutput, error) {
	from, to := s.clock.dayBounds(s.clock.dateOr(day))
	totals, err := s.saleRepo.DailySales(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &DailySalesOutput{Date: from.Format("2006-01-02"), SalesTotals: totals}, nil
}

// SalesSummary totals regular bills over an optional date range. The end
// date is inclusive.
func (s *BillingService) SalesSummary(ctx context.Context, from, to *time.Time) (*repository.SalesTotals, error) {
	var start, end *time.Time
	if from != nil {
		d, _ := s.clock.dayBounds(*from)
		start = &d
	}
	if to != nil {
		_, d := s.clock.dayBounds(*to)
		end = &d
	}
	return s.saleRepo.Summary(ctx, start, end)
}

// DeleteTransaction removes a bill together with its items and payments
func (s *BillingService) DeleteTransaction(ctx context.Context, id uint) error {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Transaction")
	}
	if err := s.saleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("transaction deleted", zap.Uint("id", id), zap.String("bill_number", sale.BillNumber))
	return nil
}
