package settlement

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount is returned for non-positive or unparseable payment amounts.
	ErrInvalidAmount = errors.New("payment amount must be a positive number")
	// ErrNoEligibleBills is returned when a party has nothing left to pay against.
	ErrNoEligibleBills = errors.New("no eligible bills to apply payment")
	// ErrPersistence wraps any store failure. Nothing is committed when it is returned.
	ErrPersistence = errors.New("payment could not be persisted")
	// ErrBillNotFound is returned by SettleBill for an unknown bill id.
	ErrBillNotFound = errors.New("bill not found")
)

func persistenceError(op string, err error) error {
	if errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

// isDomainError reports whether err already carries one of the package sentinels.
func isDomainError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNoEligibleBills) ||
		errors.Is(err, ErrPersistence) ||
		errors.Is(err, ErrBillNotFound)
}
