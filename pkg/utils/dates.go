package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is how calendar days travel in requests, responses and flags
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD day. An RFC 3339 timestamp is accepted too
// and keeps only its date part. An empty string yields nil.
func ParseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day, nil
}
