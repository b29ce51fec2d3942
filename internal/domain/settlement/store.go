package settlement

import (
	"context"

	"github.com/shopspring/decimal"
)

// Store is everything the allocation engine needs from persistence.
type Store interface {
	// OpenBills returns the party's bills whose status is not PAID, oldest first.
	OpenBills(ctx context.Context, party string) ([]Bill, error)
	// InsertPayment stores a payment row and sets its ID.
	InsertPayment(ctx context.Context, p *Payment) error
	// UpdateBill overwrites a bill's received amount and status.
	UpdateBill(ctx context.Context, id uint, received decimal.Decimal, status Status) error
	// GetBill returns a single bill, or nil when it does not exist.
	GetBill(ctx context.Context, id uint) (*Bill, error)
}

// Ledger is a Store that can run a group of operations as one unit and list
// a party's full history.
type Ledger interface {
	Store
	// Atomically runs fn inside a transaction. The Store handed to fn must
	// be used for every read and write that belongs to the unit.
	Atomically(ctx context.Context, fn func(tx Store) error) error
	// PartyBills returns every bill of the party regardless of status.
	PartyBills(ctx context.Context, party string) ([]Bill, error)
}
