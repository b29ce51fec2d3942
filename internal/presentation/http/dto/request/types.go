package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/shopkeeper-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// Amount is a money value that accepts a JSON number, a numeric string or
// null. Null and "" leave it unset.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*a = Amount{}
			return nil
		}
	}

	v, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid amount %q", raw)
	}
	*a = Amount{Value: v, Valid: true}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return a.Value.MarshalJSON()
}

// Ptr returns nil when the amount was not supplied
func (a Amount) Ptr() *decimal.Decimal {
	if !a.Valid {
		return nil
	}
	v := a.Value
	return &v
}

// RawAmount keeps a payment amount exactly as sent, number or string, so the
// payment rules can tell a missing amount from one that is not a number.
type RawAmount string

func (a *RawAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	*a = RawAmount(strings.TrimSpace(raw))
	return nil
}

// Date is a calendar day written as YYYY-MM-DD. Full RFC 3339 timestamps
// are accepted too and keep only their date part.
type Date struct {
	Time  time.Time
	Valid bool
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string")
	}
	parsed, err := utils.ParseDate(raw)
	if err != nil {
		return err
	}
	if parsed == nil {
		*d = Date{}
		return nil
	}
	*d = Date{Time: *parsed, Valid: true}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(utils.DateLayout))
}

func (d Date) Ptr() *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
