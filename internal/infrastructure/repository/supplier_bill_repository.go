package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	domainRepo "github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type supplierBillRepository struct {
	db *gorm.DB
}

// NewSupplierBillRepository creates a new supplier bill repository
func NewSupplierBillRepository(db *gorm.DB) domainRepo.SupplierBillRepository {
	return &supplierBillRepository{db: db}
}

func orderedPayments(db *gorm.DB) *gorm.DB {
	return db.Order("payment_date, id")
}

func (r *supplierBillRepository) Create(ctx context.Context, bill *entity.SupplierBill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *supplierBillRepository) GetByID(ctx context.Context, id uint) (*entity.SupplierBill, error) {
	var bill entity.SupplierBill
	err := r.db.WithContext(ctx).
		Preload("Payments", orderedPayments).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *supplierBillRepository) GetByNumber(ctx context.Context, supplier, number string) (*entity.SupplierBill, error) {
	var bill entity.SupplierBill
	err := r.db.WithContext(ctx).
		First(&bill, "supplier_name = ? AND bill_number = ?", supplier, number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *supplierBillRepository) List(ctx context.Context, status settlement.Status) ([]entity.SupplierBill, error) {
	var bills []entity.SupplierBill
	query := r.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("bill_date DESC, id DESC").Find(&bills).Error
	return bills, err
}

func (r *supplierBillRepository) ListBySupplier(ctx context.Context, supplier string) ([]entity.SupplierBill, error) {
	var bills []entity.SupplierBill
	err := r.db.WithContext(ctx).
		Preload("Payments", orderedPayments).
		Where("supplier_name = ?", supplier).
		Order("bill_date, id").
		Find(&bills).Error
	return bills, err
}

func (r *supplierBillRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", id).Delete(&entity.SupplierBillPayment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.SupplierBill{}, "id = ?", id).Error
	})
}

type supplierSummaryRow struct {
	TotalUnpaid  decimal.NullDecimal
	UnpaidCount  int64
	PartialCount int64
}

func (r *supplierBillRepository) Summary(ctx context.Context, monthStart, monthEnd time.Time) (*domainRepo.SupplierSummary, error) {
	var row supplierSummaryRow
	err := r.db.WithContext(ctx).Model(&entity.SupplierBill{}).
		Where("status <> ?", settlement.StatusPaid).
		Select(`SUM(total_amount - paid_amount) AS total_unpaid,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS unpaid_count,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS partial_count`,
			settlement.StatusUnpaid, settlement.StatusPartial).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("supplier summary: %w", err)
	}

	var paid struct{ Amount decimal.NullDecimal }
	err = r.db.WithContext(ctx).Model(&entity.SupplierBill{}).
		Where("status = ?", settlement.StatusPaid).
		Scopes(Between("paid_at", &monthStart, &monthEnd)).
		Select("SUM(paid_amount) AS amount").
		Scan(&paid).Error
	if err != nil {
		return nil, fmt.Errorf("supplier paid this month: %w", err)
	}

	return &domainRepo.SupplierSummary{
		TotalUnpaid:   money(row.TotalUnpaid),
		UnpaidCount:   row.UnpaidCount,
		PartialCount:  row.PartialCount,
		PaidThisMonth: money(paid.Amount),
	}, nil
}
