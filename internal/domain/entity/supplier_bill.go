package entity

import (
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

// SupplierBill represents a purchase bill the shop owes a supplier
type SupplierBill struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	SupplierName string            `gorm:"size:255;not null;index;uniqueIndex:idx_supplier_bill_number" json:"supplier_name"`
	BillNumber   string            `gorm:"size:100;not null;uniqueIndex:idx_supplier_bill_number" json:"bill_number"`
	BillDate     time.Time         `gorm:"type:date;not null;index" json:"bill_date"`
	DueDate      *time.Time        `gorm:"type:date" json:"due_date,omitempty"`
	TotalAmount  decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PaidAmount   decimal.Decimal   `gorm:"type:decimal(12,2);default:0" json:"paid_amount"`
	Status       settlement.Status `gorm:"size:10;not null;default:'UNPAID';index" json:"status"`
	Description  string            `gorm:"type:text" json:"description,omitempty"`
	PaidAt       *time.Time        `json:"paid_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`

	// Relationships
	Payments []SupplierBillPayment `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// TableName returns the table name for the SupplierBill model
func (SupplierBill) TableName() string {
	return "supplier_bills"
}

// Balance returns the amount still owed to the supplier on this bill
func (b *SupplierBill) Balance() decimal.Decimal {
	return b.TotalAmount.Sub(b.PaidAmount)
}

// AsBill converts the supplier bill to the ledger view used by the allocation engine
func (b *SupplierBill) AsBill() settlement.Bill {
	return settlement.Bill{
		ID:       b.ID,
		Number:   b.BillNumber,
		Party:    b.SupplierName,
		Total:    b.TotalAmount,
		Received: b.PaidAmount,
		Status:   b.Status,
		OpenedAt: b.BillDate,
		DueDate:  b.DueDate,
	}
}

// SupplierBillPayment is one payment made against a supplier bill
type SupplierBillPayment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	BillID      uint            `gorm:"not null;index" json:"bill_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"payment_amount"`
	PaymentDate time.Time       `gorm:"type:date;not null" json:"payment_date"`
	Notes       string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName returns the table name for the SupplierBillPayment model
func (SupplierBillPayment) TableName() string {
	return "supplier_bill_payments"
}
