package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/enum"
	domainRepo "github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// errInsufficientStock rolls back a sale transaction when a product runs short
var errInsufficientStock = errors.New("insufficient stock")

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) CreateWithStock(ctx context.Context, sale *entity.Sale, decrements map[uint]int) ([]uint, error) {
	var failedIDs []uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, qty := range decrements {
			result := tx.Model(&entity.Product{}).
				Where("id = ? AND quantity >= ?", id, qty).
				Update("quantity", gorm.Expr("quantity - ?", qty))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}
		if len(failedIDs) > 0 {
			return errInsufficientStock
		}

		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		if len(decrements) == 0 {
			return nil
		}
		movements := make([]entity.StockMovement, 0, len(decrements))
		for id, qty := range decrements {
			movements = append(movements, entity.StockMovement{
				ProductID:    id,
				MovementType: enum.MovementTypeSale,
				Quantity:     qty,
				Reason:       "Sale " + sale.BillNumber,
			})
		}
		return tx.Create(&movements).Error
	})

	if errors.Is(err, errInsufficientStock) {
		return failedIDs, nil
	}
	return nil, err
}

func (r *saleRepository) GetByID(ctx context.Context, id uint) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).Preload("Items").First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByBillNumber(ctx context.Context, billNumber string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_date, id") }).
		First(&sale, "bill_number = ?", billNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Scopes(
			Search(params.Search, "bill_number", "customer_name"),
			Between("created_at", params.StartDate, params.EndDate),
		)
	if params.BillType != nil {
		query = query.Where("bill_type = ?", *params.BillType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC, id DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", id).Delete(&entity.CreditPayment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("transaction_id = ?", id).Delete(&entity.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Sale{}, "id = ?", id).Error
	})
}

type salesTotalsRow struct {
	BillCount   int64
	TotalAmount decimal.NullDecimal
	CashAmount  decimal.NullDecimal
	UPIAmount   decimal.NullDecimal
	Largest     decimal.NullDecimal
}

func (r *saleRepository) totals(ctx context.Context, from, to *time.Time) (*domainRepo.SalesTotals, error) {
	var row salesTotalsRow
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Scopes(CountedSales, Between("created_at", from, to)).
		Select(`COUNT(*) AS bill_count,
			SUM(total_amount) AS total_amount,
			SUM(cash_amount) AS cash_amount,
			SUM(upi_amount) AS upi_amount,
			MAX(total_amount) AS largest`).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}

	totals := &domainRepo.SalesTotals{
		BillCount:   row.BillCount,
		TotalAmount: money(row.TotalAmount),
		CashAmount:  money(row.CashAmount),
		UPIAmount:   money(row.UPIAmount),
		Largest:     money(row.Largest),
		Average:     decimal.Zero,
	}
	if row.BillCount > 0 {
		totals.Average = totals.TotalAmount.Div(decimal.NewFromInt(row.BillCount)).Round(2)
	}
	return totals, nil
}

func (r *saleRepository) DailySales(ctx context.Context, from, to time.Time) (*domainRepo.SalesTotals, error) {
	return r.totals(ctx, &from, &to)
}

func (r *saleRepository) Summary(ctx context.Context, from, to *time.Time) (*domainRepo.SalesTotals, error) {
	return r.totals(ctx, from, to)
}

func (r *saleRepository) ListCredit(ctx context.Context, customer string) ([]entity.Sale, error) {
	var sales []entity.Sale
	query := r.db.WithContext(ctx).Scopes(CreditOnly)
	if customer != "" {
		query = query.Where("customer_name = ?", customer)
	}
	err := query.Order("created_at, id").Find(&sales).Error
	return sales, err
}

func (r *saleRepository) CreditPayments(ctx context.Context, saleID uint) ([]entity.CreditPayment, error) {
	var payments []entity.CreditPayment
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", saleID).
		Order("payment_date, id").
		Find(&payments).Error
	return payments, err
}

type creditSummaryRow struct {
	UnpaidCount   int64
	PartialCount  int64
	PaidCount     int64
	TotalCredit   decimal.NullDecimal
	TotalReceived decimal.NullDecimal
}

func (r *saleRepository) CreditSummary(ctx context.Context) (*domainRepo.CreditSummary, error) {
	var row creditSummaryRow
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Scopes(CreditOnly).
		Select(`COALESCE(SUM(CASE WHEN payment_status = ? THEN 1 ELSE 0 END), 0) AS unpaid_count,
			COALESCE(SUM(CASE WHEN payment_status = ? THEN 1 ELSE 0 END), 0) AS partial_count,
			COALESCE(SUM(CASE WHEN payment_status = ? THEN 1 ELSE 0 END), 0) AS paid_count,
			SUM(total_amount) AS total_credit,
			SUM(paid_amount) AS total_received`,
			settlement.StatusUnpaid, settlement.StatusPartial, settlement.StatusPaid).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("credit summary: %w", err)
	}

	credit, received := money(row.TotalCredit), money(row.TotalReceived)
	return &domainRepo.CreditSummary{
		UnpaidCount:   row.UnpaidCount,
		PartialCount:  row.PartialCount,
		PaidCount:     row.PaidCount,
		TotalCredit:   credit,
		TotalReceived: received,
		TotalBalance:  credit.Sub(received),
	}, nil
}
