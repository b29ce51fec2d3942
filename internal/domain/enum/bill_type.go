package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// BillType represents the kind of sale bill
type BillType string

const (
	BillTypeRegular     BillType = "REGULAR"
	BillTypeCredit      BillType = "CREDIT"
	BillTypeReplacement BillType = "REPLACEMENT"
)

func (t BillType) String() string {
	return string(t)
}

// Valid reports whether t is a known bill type
func (t BillType) Valid() bool {
	switch t {
	case BillTypeRegular, BillTypeCredit, BillTypeReplacement:
		return true
	}
	return false
}

// IsCredit reports whether the bill is sold on credit
func (t BillType) IsCredit() bool {
	return t == BillTypeCredit
}

// CountsAsSale reports whether the bill belongs in sales totals.
// Credit and replacement bills are excluded.
func (t BillType) CountsAsSale() bool {
	return t == BillTypeRegular
}

func (t *BillType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*t = BillTypeRegular
		return nil
	}
	v := BillType(strings.ToUpper(strings.TrimSpace(str)))
	if !v.Valid() {
		return fmt.Errorf("invalid bill type %q", str)
	}
	*t = v
	return nil
}

func (t BillType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *BillType) Scan(value interface{}) error {
	if value == nil {
		*t = BillTypeRegular
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = BillType(v)
	case []byte:
		*t = BillType(string(v))
	}
	return nil
}
