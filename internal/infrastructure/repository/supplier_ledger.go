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

// supplierLedger exposes supplier bills as settlement bills, ordered by bill date
type supplierLedger struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSupplierLedger creates the supplier ledger
func NewSupplierLedger(db *gorm.DB) domainRepo.SupplierLedger {
	return &supplierLedger{db: db, now: time.Now}
}

func (l *supplierLedger) Atomically(ctx context.Context, fn func(tx settlement.Store) error) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&supplierLedger{db: tx, now: l.now})
	})
}

func (l *supplierLedger) OpenBills(ctx context.Context, party string) ([]settlement.Bill, error) {
	var bills []entity.SupplierBill
	err := l.db.WithContext(ctx).
		Scopes(ForUpdate).
		Where("supplier_name = ? AND status <> ?", party, settlement.StatusPaid).
		Order("bill_date, id").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return supplierBillsToBills(bills), nil
}

func (l *supplierLedger) InsertPayment(ctx context.Context, p *settlement.Payment) error {
	row := entity.SupplierBillPayment{
		BillID:      p.BillID,
		Amount:      p.Amount,
		PaymentDate: civilDate(p.Date),
		Notes:       p.Note,
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	p.ID = row.ID
	return nil
}

// UpdateBill also stamps paid_at when the bill becomes PAID
func (l *supplierLedger) UpdateBill(ctx context.Context, id uint, received decimal.Decimal, status settlement.Status) error {
	updates := map[string]interface{}{
		"paid_amount": received,
		"status":      status,
	}
	if status == settlement.StatusPaid {
		updates["paid_at"] = l.now().UTC()
	}

	result := l.db.WithContext(ctx).Model(&entity.SupplierBill{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("supplier bill %d not updated", id)
	}
	return nil
}

func (l *supplierLedger) GetBill(ctx context.Context, id uint) (*settlement.Bill, error) {
	var bill entity.SupplierBill
	err := l.db.WithContext(ctx).
		Scopes(ForUpdate).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b := bill.AsBill()
	return &b, nil
}

func (l *supplierLedger) PartyBills(ctx context.Context, party string) ([]settlement.Bill, error) {
	var bills []entity.SupplierBill
	err := l.db.WithContext(ctx).
		Where("supplier_name = ?", party).
		Order("bill_date, id").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return supplierBillsToBills(bills), nil
}

func (l *supplierLedger) AllBills(ctx context.Context) ([]settlement.Bill, error) {
	var bills []entity.SupplierBill
	err := l.db.WithContext(ctx).Order("bill_date, id").Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return supplierBillsToBills(bills), nil
}

func supplierBillsToBills(rows []entity.SupplierBill) []settlement.Bill {
	bills := make([]settlement.Bill, len(rows))
	for i := range rows {
		bills[i] = rows[i].AsBill()
	}
	return bills
}
