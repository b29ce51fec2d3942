package enum

import (
	"database/sql/driver"
)

// MovementType represents the direction of a stock change
type MovementType string

const (
	MovementTypeAdd    MovementType = "ADD"
	MovementTypeRemove MovementType = "REMOVE"
	MovementTypeSale   MovementType = "SALE"
)

func (t MovementType) String() string {
	return string(t)
}

// Sign returns +1 for movements that add stock and -1 otherwise
func (t MovementType) Sign() int {
	if t == MovementTypeAdd {
		return 1
	}
	return -1
}

func (t MovementType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *MovementType) Scan(value interface{}) error {
	if value == nil {
		*t = MovementTypeAdd
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = MovementType(v)
	case []byte:
		*t = MovementType(string(v))
	}
	return nil
}
