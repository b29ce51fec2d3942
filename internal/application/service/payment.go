package service

import (
	"strings"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

// PaymentInput is money received from a customer or paid to a supplier. A nil
// Amount asks for the outstanding balance to be settled in full.
type PaymentInput struct {
	Amount *decimal.Decimal
	Date   *time.Time
	Notes  string
}

// ParsePaymentAmount reads an optional payment amount. Blank means none was
// given. Text that is not a number is an invalid amount; zero and negative
// values are judged by the settlement rules of the operation.
func ParsePaymentAmount(raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, settlementError(settlement.ErrInvalidAmount)
	}
	return &amount, nil
}

// PaymentOutcome reports how a payment was spread over a party's bills
type PaymentOutcome struct {
	Party       string                  `json:"party"`
	Status      settlement.Status       `json:"status"`
	Allocations []settlement.Allocation `json:"allocations"`
	Applied     decimal.Decimal         `json:"applied"`
	Unapplied   decimal.Decimal         `json:"unapplied"`
}

func outcomeFromResult(r *settlement.Result) *PaymentOutcome {
	return &PaymentOutcome{
		Party:       r.Party,
		Status:      r.FinalStatus,
		Allocations: nonNilAllocations(r.Allocations),
		Applied:     r.Applied,
		Unapplied:   r.Unapplied,
	}
}

func outcomeFromSettlement(party string, st *settlement.Settlement) *PaymentOutcome {
	applied := decimal.Zero
	for _, a := range st.Allocations {
		applied = applied.Add(a.Applied)
	}
	return &PaymentOutcome{
		Party:       party,
		Status:      st.Status,
		Allocations: nonNilAllocations(st.Allocations),
		Applied:     applied,
		Unapplied:   decimal.Zero,
	}
}

func nonNilAllocations(a []settlement.Allocation) []settlement.Allocation {
	if a == nil {
		return []settlement.Allocation{}
	}
	return a
}
