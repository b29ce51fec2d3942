package repository

import (
	"context"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/enum"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/sangkips/shopkeeper-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SaleRepository defines the interface for sale (bill) data operations
type SaleRepository interface {
	// CreateWithStock inserts the sale with its items and decrements stock for
	// stocked lines in one transaction. When a product lacks stock nothing is
	// written and its id is returned in failedIDs.
	CreateWithStock(ctx context.Context, sale *entity.Sale, decrements map[uint]int) (failedIDs []uint, err error)
	GetByID(ctx context.Context, id uint) (*entity.Sale, error)
	// GetByBillNumber loads the sale with items and payments
	GetByBillNumber(ctx context.Context, billNumber string) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// Delete removes payments and items before the sale itself
	Delete(ctx context.Context, id uint) error
	DailySales(ctx context.Context, from, to time.Time) (*SalesTotals, error)
	Summary(ctx context.Context, from, to *time.Time) (*SalesTotals, error)

	// ListCredit returns credit sales, oldest first, optionally for one customer
	ListCredit(ctx context.Context, customer string) ([]entity.Sale, error)
	// CreditPayments returns the payment history of one credit sale
	CreditPayments(ctx context.Context, saleID uint) ([]entity.CreditPayment, error)
	CreditSummary(ctx context.Context) (*CreditSummary, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	BillType   *enum.BillType
	StartDate  *time.Time
	EndDate    *time.Time
}

// SalesTotals aggregates non-credit, non-replacement sales
type SalesTotals struct {
	BillCount   int64           `json:"bill_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CashAmount  decimal.Decimal `json:"cash_amount"`
	UPIAmount   decimal.Decimal `json:"upi_amount"`
	Average     decimal.Decimal `json:"average_bill"`
	Largest     decimal.Decimal `json:"largest_bill"`
}

// CreditSummary aggregates the customer credit book
type CreditSummary struct {
	UnpaidCount   int64           `json:"unpaid_count"`
	PartialCount  int64           `json:"partial_count"`
	PaidCount     int64           `json:"paid_count"`
	TotalCredit   decimal.Decimal `json:"total_credit"`
	TotalReceived decimal.Decimal `json:"total_received"`
	TotalBalance  decimal.Decimal `json:"total_balance"`
}

// CreditLedger is the customer side of the settlement ledger
type CreditLedger interface {
	settlement.Ledger
	// AllBills returns every credit bill as ledger bills
	AllBills(ctx context.Context) ([]settlement.Bill, error)
	// BillByNumber resolves a credit bill number, nil when unknown
	BillByNumber(ctx context.Context, billNumber string) (*settlement.Bill, error)
}
