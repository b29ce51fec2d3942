package settlement

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PartySummary is the aggregated position of one customer or supplier.
type PartySummary struct {
	Party             string          `json:"party"`
	BillCount         int             `json:"bill_count"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	ReceivedAmount    decimal.Decimal `json:"received_amount"`
	Balance           decimal.Decimal `json:"balance"`
	OpenBills         int             `json:"open_bills"`
	PartialBills      int             `json:"partial_bills"`
	UnpaidBills       int             `json:"unpaid_bills"`
	FirstSeen         *time.Time      `json:"first_seen,omitempty"`
	LastSeen          *time.Time      `json:"last_seen,omitempty"`
	PrimaryBillNumber string          `json:"primary_bill_number,omitempty"`
	Status            Status          `json:"status"`
}

// ClassifyParty applies the party level status rule.
func ClassifyParty(openBills int, received decimal.Decimal) Status {
	switch {
	case openBills == 0:
		return StatusPaid
	case received.IsPositive():
		return StatusPartial
	default:
		return StatusUnpaid
	}
}

// Summarize aggregates bills that all belong to party. An empty slice gives
// a zeroed summary.
func Summarize(party string, bills []Bill) PartySummary {
	s := PartySummary{
		Party:          party,
		TotalAmount:    decimal.Zero,
		ReceivedAmount: decimal.Zero,
		Balance:        decimal.Zero,
	}

	var oldestOpen, newest *Bill
	for i := range bills {
		b := &bills[i]
		s.BillCount++
		s.TotalAmount = s.TotalAmount.Add(b.Total)
		s.ReceivedAmount = s.ReceivedAmount.Add(b.Received)

		switch b.Status {
		case StatusPartial:
			s.PartialBills++
		case StatusUnpaid:
			s.UnpaidBills++
		}
		if b.Status.IsOpen() {
			s.OpenBills++
			if oldestOpen == nil || before(b, oldestOpen) {
				oldestOpen = b
			}
		}

		opened := b.OpenedAt
		if s.FirstSeen == nil || opened.Before(*s.FirstSeen) {
			s.FirstSeen = &opened
		}
		if s.LastSeen == nil || opened.After(*s.LastSeen) {
			s.LastSeen = &opened
		}
		if newest == nil || before(newest, b) {
			newest = b
		}
	}

	s.Balance = s.TotalAmount.Sub(s.ReceivedAmount)
	s.Status = ClassifyParty(s.OpenBills, s.ReceivedAmount)

	switch {
	case oldestOpen != nil:
		s.PrimaryBillNumber = oldestOpen.Number
	case newest != nil:
		s.PrimaryBillNumber = newest.Number
	}
	return s
}

// GroupByParty builds one summary per party, most recently active first.
func GroupByParty(bills []Bill) []PartySummary {
	byParty := make(map[string][]Bill)
	order := make([]string, 0)
	for _, b := range bills {
		if _, seen := byParty[b.Party]; !seen {
			order = append(order, b.Party)
		}
		byParty[b.Party] = append(byParty[b.Party], b)
	}

	summaries := make([]PartySummary, 0, len(order))
	for _, party := range order {
		summaries = append(summaries, Summarize(party, byParty[party]))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		li, lj := summaries[i].LastSeen, summaries[j].LastSeen
		if !li.Equal(*lj) {
			return li.After(*lj)
		}
		return summaries[i].Party < summaries[j].Party
	})
	return summaries
}

// FilterByStatus keeps the summaries whose party status matches. An empty
// status keeps everything.
func FilterByStatus(summaries []PartySummary, status Status) []PartySummary {
	if status == "" {
		return summaries
	}
	out := make([]PartySummary, 0, len(summaries))
	for _, s := range summaries {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out
}

func before(a, b *Bill) bool {
	if !a.OpenedAt.Equal(b.OpenedAt) {
		return a.OpenedAt.Before(b.OpenedAt)
	}
	return a.ID < b.ID
}
