package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a day-to-day shop expense
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category    string          `gorm:"size:100;not null;default:'General';index" json:"category"`
	ExpenseDate time.Time       `gorm:"type:date;not null;index" json:"expense_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
