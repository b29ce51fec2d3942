package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateBillNumber returns BILL-YYYYMMDDHHMMSS-XXXX with the timestamp in
// the shop's zone and a random suffix so two bills in the same second differ.
func GenerateBillNumber(now time.Time, loc *time.Location) string {
	if loc != nil {
		now = now.In(loc)
	}
	return "BILL-" + now.Format("20060102150405") + "-" + strings.ToUpper(uuid.New().String()[:4])
}
