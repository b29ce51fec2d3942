package service

import (
	"strconv"
	"time"
)

// shopClock resolves "today" in the shop's time zone
type shopClock struct {
	loc *time.Location
	now func() time.Time
}

func newShopClock(loc *time.Location) shopClock {
	if loc == nil {
		loc = time.UTC
	}
	return shopClock{loc: loc, now: time.Now}
}

func (c shopClock) Now() time.Time {
	return c.now().In(c.loc)
}

// dayBounds takes the calendar day of t as written and returns its local
// midnight and the next one
func (c shopClock) dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
	return start, start.AddDate(0, 0, 1)
}

func (c shopClock) monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, c.loc)
	return start, start.AddDate(0, 1, 0)
}

// dateOr returns d, or today in the shop zone when d is nil
func (c shopClock) dateOr(d *time.Time) time.Time {
	if d != nil {
		return *d
	}
	return c.Now()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
