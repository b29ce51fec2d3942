package entity

import (
	"time"
)

// IdempotencyKey stores processed requests to prevent duplicate bills and payments
type IdempotencyKey struct {
	ID           uint      `gorm:"primaryKey"`
	Key          string    `gorm:"column:idempotency_key;uniqueIndex:idx_idempotency_user_key;size:255;not null"`
	UserID       string    `gorm:"uniqueIndex:idx_idempotency_user_key;size:36;not null"`
	Endpoint     string    `gorm:"size:255;not null"` // e.g. "POST /api/v1/billing"
	RequestHash  string    `gorm:"size:64"`           // SHA256 of the request body
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
