package repository

import (
	"context"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

// SupplierBillRepository defines the interface for supplier bill data operations
type SupplierBillRepository interface {
	Create(ctx context.Context, bill *entity.SupplierBill) error
	// GetByID loads the bill with its payment history
	GetByID(ctx context.Context, id uint) (*entity.SupplierBill, error)
	// GetByNumber finds a bill by the supplier's own bill number
	GetByNumber(ctx context.Context, supplier, number string) (*entity.SupplierBill, error)
	// List returns bills newest first by bill date
	List(ctx context.Context, status settlement.Status) ([]entity.SupplierBill, error)
	// ListBySupplier returns one supplier's bills, oldest first, with payments
	ListBySupplier(ctx context.Context, supplier string) ([]entity.SupplierBill, error)
	// Delete removes the bill's payments before the bill
	Delete(ctx context.Context, id uint) error
	Summary(ctx context.Context, monthStart, monthEnd time.Time) (*SupplierSummary, error)
}

// SupplierSummary aggregates what the shop owes its suppliers
type SupplierSummary struct {
	TotalUnpaid   decimal.Decimal `json:"total_unpaid"`
	UnpaidCount   int64           `json:"unpaid_count"`
	PartialCount  int64           `json:"partial_count"`
	PaidThisMonth decimal.Decimal `json:"paid_this_month"`
}

// SupplierLedger is the supplier side of the settlement ledger
type SupplierLedger interface {
	settlement.Ledger
	AllBills(ctx context.Context) ([]settlement.Bill, error)
}
