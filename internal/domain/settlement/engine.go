package settlement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Engine distributes payments across a party's open bills, oldest first.
type Engine struct {
	ledger Ledger
	logger *zap.Logger
}

// NewEngine creates an allocation engine over the given ledger.
func NewEngine(ledger Ledger, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{ledger: ledger, logger: logger}
}

// Allocate applies req.Amount to the party's open bills in FIFO order.
// All payment rows and bill updates are committed together or not at all.
// Any amount left once every open bill is paid is reported as Unapplied and
// otherwise dropped.
func (e *Engine) Allocate(ctx context.Context, req PaymentRequest) (*Result, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var result *Result
	err := e.ledger.Atomically(ctx, func(tx Store) error {
		bills, err := tx.OpenBills(ctx, req.Party)
		if err != nil {
			return persistenceError("load open bills", err)
		}

		allocations, remaining, err := apply(ctx, tx, bills, req.Amount, req.Date, req.Note)
		if err != nil {
			return err
		}
		if len(allocations) == 0 {
			return ErrNoEligibleBills
		}

		result = &Result{
			Party:       req.Party,
			FinalStatus: allocations[len(allocations)-1].NewStatus,
			Allocations: allocations,
			Applied:     req.Amount.Sub(remaining),
			Unapplied:   remaining,
		}
		return nil
	})
	if err != nil {
		return nil, e.fail("allocate payment", req.Party, err)
	}

	if result.Unapplied.IsPositive() {
		e.logger.Warn("overpayment discarded",
			zap.String("party", req.Party),
			zap.String("unapplied", result.Unapplied.StringFixed(2)),
		)
	}
	e.logger.Info("payment allocated",
		zap.String("party", req.Party),
		zap.String("amount", req.Amount.StringFixed(2)),
		zap.Int("bills", len(result.Allocations)),
		zap.String("status", result.FinalStatus.String()),
	)
	return result, nil
}

// SettleParty pays off everything the party still owes. When nothing is
// outstanding the open bills are simply flagged PAID and no payment rows are
// written, so repeated calls are harmless.
func (e *Engine) SettleParty(ctx context.Context, party string, date time.Time, note string) (*Settlement, error) {
	var out *Settlement
	err := e.ledger.Atomically(ctx, func(tx Store) error {
		bills, err := tx.OpenBills(ctx, party)
		if err != nil {
			return persistenceError("load open bills", err)
		}

		outstanding := decimal.Zero
		for _, b := range bills {
			if balance := b.Balance(); balance.IsPositive() {
				outstanding = outstanding.Add(balance)
			}
		}

		if !outstanding.IsPositive() {
			for _, b := range bills {
				if err := tx.UpdateBill(ctx, b.ID, b.Received, StatusPaid); err != nil {
					return persistenceError(fmt.Sprintf("close bill %s", b.Number), err)
				}
			}
			out = &Settlement{Status: StatusPaid, Allocations: []Allocation{}}
			return nil
		}

		allocations, _, err := apply(ctx, tx, bills, outstanding, date, note)
		if err != nil {
			return err
		}
		out = &Settlement{
			Status:      allocations[len(allocations)-1].NewStatus,
			Allocations: allocations,
		}
		return nil
	})
	if err != nil {
		return nil, e.fail("settle party", party, err)
	}

	e.logger.Info("party settled",
		zap.String("party", party),
		zap.Int("bills", len(out.Allocations)),
	)
	return out, nil
}

// SettleBill pays off a single bill without cascading to the party's other bills.
func (e *Engine) SettleBill(ctx context.Context, billID uint, date time.Time, note string) (*Settlement, error) {
	var out *Settlement
	err := e.ledger.Atomically(ctx, func(tx Store) error {
		bill, err := tx.GetBill(ctx, billID)
		if err != nil {
			return persistenceError("load bill", err)
		}
		if bill == nil {
			return ErrBillNotFound
		}

		if !bill.Status.IsOpen() || !bill.Balance().IsPositive() {
			if bill.Status != StatusPaid {
				if err := tx.UpdateBill(ctx, bill.ID, bill.Received, StatusPaid); err != nil {
					return persistenceError(fmt.Sprintf("close bill %s", bill.Number), err)
				}
			}
			out = &Settlement{Status: StatusPaid, Allocations: []Allocation{}}
			return nil
		}

		allocations, _, err := apply(ctx, tx, []Bill{*bill}, bill.Balance(), date, note)
		if err != nil {
			return err
		}
		out = &Settlement{Status: allocations[0].NewStatus, Allocations: allocations}
		return nil
	})
	if err != nil {
		return nil, e.fail("settle bill", fmt.Sprint(billID), err)
	}
	return out, nil
}

// PartySummary aggregates every bill the party has ever had.
func (e *Engine) PartySummary(ctx context.Context, party string) (*PartySummary, error) {
	bills, err := e.ledger.PartyBills(ctx, party)
	if err != nil {
		return nil, persistenceError("load party bills", err)
	}
	summary := Summarize(party, bills)
	return &summary, nil
}

func (e *Engine) fail(op, subject string, err error) error {
	if !isDomainError(err) {
		err = persistenceError(op, err)
	}
	e.logger.Debug(op+" failed", zap.String("subject", subject), zap.Error(err))
	return err
}

// apply runs the greedy FIFO pass over queue and writes through tx.
// It returns the allocations made and the part of amount that was not used.
func apply(ctx context.Context, tx Store, queue []Bill, amount decimal.Decimal, date time.Time, note string) ([]Allocation, decimal.Decimal, error) {
	ordered := make([]Bill, len(queue))
	copy(ordered, queue)
	sortOldestFirst(ordered)

	remaining := amount
	allocations := make([]Allocation, 0, len(ordered))

	for _, bill := range ordered {
		if !remaining.IsPositive() {
			break
		}
		if !bill.Status.IsOpen() {
			continue
		}
		balance := bill.Balance()
		if !balance.IsPositive() {
			continue
		}

		applied := decimal.Min(balance, remaining)
		payment := &Payment{BillID: bill.ID, Amount: applied, Date: date, Note: note}
		if err := tx.InsertPayment(ctx, payment); err != nil {
			return nil, remaining, persistenceError(fmt.Sprintf("insert payment for bill %s", bill.Number), err)
		}

		received := bill.Received.Add(applied)
		status := Derive(bill.Total, received)
		if err := tx.UpdateBill(ctx, bill.ID, received, status); err != nil {
			return nil, remaining, persistenceError(fmt.Sprintf("update bill %s", bill.Number), err)
		}

		allocations = append(allocations, Allocation{
			BillID:     bill.ID,
			BillNumber: bill.Number,
			Applied:    applied,
			NewStatus:  status,
			NewBalance: bill.Total.Sub(received),
		})
		remaining = remaining.Sub(applied)
	}

	return allocations, remaining, nil
}

// sortOldestFirst orders bills by opening time, breaking ties by id.
func sortOldestFirst(bills []Bill) {
	sort.SliceStable(bills, func(i, j int) bool {
		if !bills[i].OpenedAt.Equal(bills[j].OpenedAt) {
			return bills[i].OpenedAt.Before(bills[j].OpenedAt)
		}
		return bills[i].ID < bills[j].ID
	})
}
