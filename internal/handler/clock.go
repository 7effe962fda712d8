package handler

import (
	"time"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// Clock supplies "now" in the building's time zone.  Dates such as today
// and the overdue cut-off are calendar dates in Loc.
type Clock struct {
	Loc *time.Location
	now func() time.Time
}

// NewClock returns a wall clock in loc (time.Local when nil).
func NewClock(loc *time.Location) Clock {
	return Clock{Loc: loc}
}

func (k Clock) Now() time.Time {
	now := time.Now
	if k.now != nil {
		now = k.now
	}
	loc := k.Loc
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

// Today returns the current date as a DateLayout string.
func (k Clock) Today() string { return k.Now().Format(model.DateLayout) }

// DaysFromToday returns the date n calendar days after today.
func (k Clock) DaysFromToday(n int) string {
	return k.Now().AddDate(0, 0, n).Format(model.DateLayout)
}
