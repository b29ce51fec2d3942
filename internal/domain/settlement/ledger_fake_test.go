package settlement

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

// memoryLedger is an in-memory Ledger. Atomically snapshots state and
// restores it when fn fails.
type memoryLedger struct {
	mu       sync.Mutex
	bills    []Bill
	payments []Payment
	nextID   uint

	failInsertOn uint
	failUpdateOn uint
	failLoad     error
	writes       int
}

var errStoreDown = errors.New("store down")

func newMemoryLedger(bills ...Bill) *memoryLedger {
	l := &memoryLedger{}
	l.bills = append(l.bills, bills...)
	return l
}

func (l *memoryLedger) Atomically(ctx context.Context, fn func(tx Store) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	bills := append([]Bill(nil), l.bills...)
	payments := append([]Payment(nil), l.payments...)
	nextID, writes := l.nextID, l.writes

	if err := fn(l); err != nil {
		l.bills, l.payments, l.nextID, l.writes = bills, payments, nextID, writes
		return err
	}
	return nil
}

// OpenBills deliberately returns newest first so the engine has to sort.
func (l *memoryLedger) OpenBills(_ context.Context, party string) ([]Bill, error) {
	if l.failLoad != nil {
		return nil, l.failLoad
	}
	var out []Bill
	for i := len(l.bills) - 1; i >= 0; i-- {
		b := l.bills[i]
		if b.Party == party && b.Status != StatusPaid {
			out = append(out, b)
		}
	}
	return out, nil
}

func (l *memoryLedger) InsertPayment(_ context.Context, p *Payment) error {
	if l.failInsertOn != 0 && l.failInsertOn == p.BillID {
		return errStoreDown
	}
	l.nextID++
	p.ID = l.nextID
	l.payments = append(l.payments, *p)
	l.writes++
	return nil
}

func (l *memoryLedger) UpdateBill(_ context.Context, id uint, received decimal.Decimal, status Status) error {
	if l.failUpdateOn != 0 && l.failUpdateOn == id {
		return errStoreDown
	}
	for i := range l.bills {
		if l.bills[i].ID == id {
			l.bills[i].Received = received
			l.bills[i].Status = status
			l.writes++
			return nil
		}
	}
	return errors.New("no such bill")
}

func (l *memoryLedger) GetBill(_ context.Context, id uint) (*Bill, error) {
	for _, b := range l.bills {
		if b.ID == id {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (l *memoryLedger) PartyBills(_ context.Context, party string) ([]Bill, error) {
	if l.failLoad != nil {
		return nil, l.failLoad
	}
	var out []Bill
	for _, b := range l.bills {
		if b.Party == party {
			out = append(out, b)
		}
	}
	return out, nil
}

func (l *memoryLedger) bill(id uint) Bill {
	b, _ := l.GetBill(context.Background(), id)
	return *b
}
