package entity

import (
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/enum"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

// Sale represents a bill raised at the counter. Credit sales are also the
// customer side of the settlement ledger.
type Sale struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	BillNumber    string             `gorm:"size:64;uniqueIndex;not null" json:"bill_number"`
	CustomerName  string             `gorm:"size:255;index" json:"customer_name"`
	TotalAmount   decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PaymentMethod enum.PaymentMethod `gorm:"size:10;not null;default:'CASH'" json:"payment_method"`
	CashAmount    decimal.Decimal    `gorm:"type:decimal(12,2);default:0" json:"cash_amount"`
	UPIAmount     decimal.Decimal    `gorm:"type:decimal(12,2);default:0;column:upi_amount" json:"upi_amount"`
	BillType      enum.BillType      `gorm:"size:16;not null;default:'REGULAR';index" json:"bill_type"`
	IsCredit      bool               `gorm:"not null;default:false;index" json:"is_credit"`
	PaymentStatus settlement.Status  `gorm:"size:10;not null;default:'PAID'" json:"payment_status"`
	PaidAmount    decimal.Decimal    `gorm:"type:decimal(12,2);default:0" json:"paid_amount"`
	CreatedBy     string             `gorm:"size:255" json:"created_by,omitempty"`
	CreatedAt     time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Items    []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payments []CreditPayment `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "transactions"
}

// Balance returns what the customer still owes on a credit sale
func (s *Sale) Balance() decimal.Decimal {
	return s.TotalAmount.Sub(s.PaidAmount)
}

// AsBill converts the sale to the ledger view used by the allocation engine
func (s *Sale) AsBill() settlement.Bill {
	return settlement.Bill{
		ID:       s.ID,
		Number:   s.BillNumber,
		Party:    s.CustomerName,
		Total:    s.TotalAmount,
		Received: s.PaidAmount,
		Status:   s.PaymentStatus,
		OpenedAt: s.CreatedAt,
	}
}

// SaleItem represents a line item on a sale. ProductID is nil for manual lines.
type SaleItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	SaleID      uint            `gorm:"column:transaction_id;not null;index" json:"transaction_id"`
	ProductID   *uint           `gorm:"index" json:"product_id,omitempty"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "transaction_items"
}

// CreditPayment is one instalment received against a credit sale
type CreditPayment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	SaleID      uint            `gorm:"column:transaction_id;not null;index" json:"transaction_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"payment_amount"`
	PaymentDate time.Time       `gorm:"type:date;not null" json:"payment_date"`
	Notes       string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName returns the table name for the CreditPayment model
func (CreditPayment) TableName() string {
	return "credit_bill_payments"
}
