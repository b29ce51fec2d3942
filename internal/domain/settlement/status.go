package settlement

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Status is the payment state of a bill or of a party as a whole.
type Status string

const (
	StatusUnpaid  Status = "UNPAID"
	StatusPartial Status = "PARTIAL"
	StatusPaid    Status = "PAID"
)

// Epsilon is the one minor-unit tolerance applied when deciding whether a
// bill is fully paid.
var Epsilon = decimal.New(1, -2)

// Derive maps a bill's total and received amount to its status.
// A bill within Epsilon of its total counts as paid.
func Derive(total, received decimal.Decimal) Status {
	if received.Add(Epsilon).GreaterThanOrEqual(total) {
		return StatusPaid
	}
	if received.IsPositive() {
		return StatusPartial
	}
	return StatusUnpaid
}

// IsOpen reports whether a bill in this status still accepts payments.
func (s Status) IsOpen() bool {
	return s != StatusPaid
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusUnpaid, StatusPartial, StatusPaid:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a status filter as received from a query string.
// An empty string yields an empty status and no error.
func ParseStatus(v string) (Status, error) {
	if v == "" {
		return "", nil
	}
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", v)
	}
	return s, nil
}

func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *Status) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = StatusUnpaid
	case string:
		*s = Status(v)
	case []byte:
		*s = Status(v)
	default:
		return fmt.Errorf("settlement: cannot scan %T into Status", value)
	}
	return nil
}
