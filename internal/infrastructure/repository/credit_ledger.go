package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	domainRepo "github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// creditLedger exposes credit sales as settlement bills. The customer name
// is the party and the sale's created_at is the FIFO key.
type creditLedger struct {
	db *gorm.DB
}

// NewCreditLedger creates the customer credit ledger
func NewCreditLedger(db *gorm.DB) domainRepo.CreditLedger {
	return &creditLedger{db: db}
}

func (l *creditLedger) Atomically(ctx context.Context, fn func(tx settlement.Store) error) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&creditLedger{db: tx})
	})
}

func (l *creditLedger) OpenBills(ctx context.Context, party string) ([]settlement.Bill, error) {
	var sales []entity.Sale
	err := l.db.WithContext(ctx).
		Scopes(CreditOnly, ForUpdate).
		Where("customer_name = ? AND payment_status <> ?", party, settlement.StatusPaid).
		Order("created_at, id").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return salesToBills(sales), nil
}

func (l *creditLedger) InsertPayment(ctx context.Context, p *settlement.Payment) error {
	row := entity.CreditPayment{
		SaleID:      p.BillID,
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

func (l *creditLedger) UpdateBill(ctx context.Context, id uint, received decimal.Decimal, status settlement.Status) error {
	result := l.db.WithContext(ctx).Model(&entity.Sale{}).
		Scopes(CreditOnly).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"paid_amount":    received,
			"payment_status": status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("credit bill %d not updated", id)
	}
	return nil
}

func (l *creditLedger) GetBill(ctx context.Context, id uint) (*settlement.Bill, error) {
	var sale entity.Sale
	err := l.db.WithContext(ctx).
		Scopes(CreditOnly, ForUpdate).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	bill := sale.AsBill()
	return &bill, nil
}

func (l *creditLedger) PartyBills(ctx context.Context, party string) ([]settlement.Bill, error) {
	var sales []entity.Sale
	err := l.db.WithContext(ctx).
		Scopes(CreditOnly).
		Where("customer_name = ?", party).
		Order("created_at, id").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return salesToBills(sales), nil
}

func (l *creditLedger) AllBills(ctx context.Context) ([]settlement.Bill, error) {
	var sales []entity.Sale
	err := l.db.WithContext(ctx).
		Scopes(CreditOnly).
		Order("created_at, id").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return salesToBills(sales), nil
}

func (l *creditLedger) BillByNumber(ctx context.Context, billNumber string) (*settlement.Bill, error) {
	var sale entity.Sale
	err := l.db.WithContext(ctx).
		Scopes(CreditOnly).
		First(&sale, "bill_number = ?", billNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	bill := sale.AsBill()
	return &bill, nil
}

func salesToBills(sales []entity.Sale) []settlement.Bill {
	bills := make([]settlement.Bill, len(sales))
	for i := range sales {
		bills[i] = sales[i].AsBill()
	}
	return bills
}
