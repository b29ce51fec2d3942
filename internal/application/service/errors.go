package service

import (
	"errors"

	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/sangkips/shopkeeper-api/pkg/apperror"
)

// settlementError maps allocation engine failures onto HTTP-facing errors.
// Anything else is returned unchanged.
func settlementError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, settlement.ErrInvalidAmount):
		return apperror.NewUnprocessableError("Payment amount must be a positive number")
	case errors.Is(err, settlement.ErrNoEligibleBills):
		return apperror.NewBadRequestError("No eligible bills to apply payment")
	case errors.Is(err, settlement.ErrBillNotFound):
		return apperror.NewNotFoundError("Bill")
	case errors.Is(err, settlement.ErrPersistence):
		return apperror.NewServiceUnavailableError("Payment could not be recorded, please retry")
	}
	return err
}
