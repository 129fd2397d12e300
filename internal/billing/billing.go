// Package billing maps calendar dates to billing cycles. A cycle runs from
// the 25th of a month at midnight to the 25th of the next month, and is due
// on the 5th of the month after that. Cycles are identified by an integer
// index derived from the due date, which is what transactions anchor to.
package billing

import (
	"fmt"
	"time"
)

// Cycle is one billing period. End is exclusive: it is the next cycle's
// start, so display strings show the day before End.
type Cycle struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
	Due   time.Time `json:"due" yaml:"due"`
	Label string    `json:"label" yaml:"label"`
}

// CycleFor returns the billing cycle that contains t. Dates on or after the
// 25th fall in the cycle starting that month; earlier dates belong to the
// cycle that started on the 25th of the previous month. All boundaries are
// midnight in t's location. The day is fixed at 25 in the same construction
// that moves the month, so February and other short months can never shift
// the boundary.
func CycleFor(t time.Time) Cycle {
	year, month, day := t.Date()
	loc := t.Location()

	var start time.Time
	if day >= 25 {
		start = time.Date(year, month, 25, 0, 0, 0, 0, loc)
	} else {
		start = time.Date(year, month-1, 25, 0, 0, 0, 0, loc)
	}

	end := time.Date(start.Year(), start.Month()+1, 25, 0, 0, 0, 0, loc)
	due := time.Date(end.Year(), end.Month()+1, 5, 0, 0, 0, 0, loc)

	return Cycle{
		Start: start,
		End:   end,
		Due:   due,
		Label: rangeLabel(start, end),
	}
}

// rangeLabel renders a cycle as e.g. "Jan 25 - Feb 25, 2025".
func rangeLabel(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
}

// Index returns the cycle's integer key: due-date year times twelve plus the
// zero-based due-date month. It uniquely identifies a cycle and increases by
// exactly one per month.
func (c Cycle) Index() int {
	return c.Due.Year()*12 + int(c.Due.Month()) - 1
}

// IndexFor is shorthand for CycleFor(t).Index().
func IndexFor(t time.Time) int {
	return CycleFor(t).Index()
}

// Contains reports whether t falls inside the cycle's half-open range.
func (c Cycle) Contains(t time.Time) bool {
	return !t.Before(c.Start) && t.Before(c.End)
}

// Matches reports whether two cycles are the same period, compared by their
// exact start and end instants rather than by index.
func (c Cycle) Matches(other Cycle) bool {
	return c.Start.Equal(other.Start) && c.End.Equal(other.End)
}

// Shift returns the cycle anchored n calendar months away from t. Used for
// cycle navigation: n = -1 is the previous cycle, n = 1 the next.
func Shift(t time.Time, n int) Cycle {
	year, month, day := t.Date()
	shifted := time.Date(year, month+time.Month(n), day, 0, 0, 0, 0, t.Location())
	return CycleFor(shifted)
}
