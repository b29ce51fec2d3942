package settlement

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Bill is the ledger view of anything a party owes on: a customer credit
// sale or a supplier purchase bill.
type Bill struct {
	ID       uint
	Number   string
	Party    string
	Total    decimal.Decimal
	Received decimal.Decimal
	Status   Status
	OpenedAt time.Time
	DueDate  *time.Time
}

// Balance is the amount still owed on the bill.
func (b Bill) Balance() decimal.Decimal {
	return b.Total.Sub(b.Received)
}

// Payment is one amount applied to one bill.
type Payment struct {
	ID     uint
	BillID uint
	Amount decimal.Decimal
	Date   time.Time
	Note   string
}

// PaymentRequest describes money received from (or paid to) a party.
type PaymentRequest struct {
	Party  string
	Amount decimal.Decimal
	Date   time.Time
	Note   string
}

// Allocation records how much of a payment landed on a bill and what state
// the bill was left in.
type Allocation struct {
	BillID     uint            `json:"bill_id"`
	BillNumber string          `json:"bill_number"`
	Applied    decimal.Decimal `json:"applied"`
	NewStatus  Status          `json:"new_status"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// Result is the outcome of a successful allocation.
type Result struct {
	Party       string          `json:"party"`
	FinalStatus Status          `json:"status"`
	Allocations []Allocation    `json:"allocations"`
	Applied     decimal.Decimal `json:"applied"`
	// Unapplied is the overpayment left after every open bill was settled.
	// It is not stored anywhere.
	Unapplied decimal.Decimal `json:"unapplied"`
}

// Settlement is the outcome of a settle-in-full request.
type Settlement struct {
	Status      Status       `json:"status"`
	Allocations []Allocation `json:"allocations"`
}

// ParseAmount parses a user supplied payment amount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}
