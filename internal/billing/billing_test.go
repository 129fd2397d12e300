package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestCycleFor(t *testing.T) {
	tests := []struct {
		name          string
		input         time.Time
		expectedStart time.Time
		expectedEnd   time.Time
		expectedDue   time.Time
	}{
		{
			"before the 25th",
			date(2025, time.January, 20),
			date(2024, time.December, 25),
			date(2025, time.January, 25),
			date(2025, time.February, 5),
		},
		{
			"on the 25th",
			date(2025, time.January, 25),
			date(2025, time.January, 25),
			date(2025, time.February, 25),
			date(2025, time.March, 5),
		},
		{
			"after the 25th",
			date(2025, time.January, 26),
			date(2025, time.January, 25),
			date(2025, time.February, 25),
			date(2025, time.March, 5),
		},
		{
			"early January rolls into previous year",
			date(2025, time.January, 2),
			date(2024, time.December, 25),
			date(2025, time.January, 25),
			date(2025, time.February, 5),
		},
		{
			"late December rolls into next year",
			date(2024, time.December, 28),
			date(2024, time.December, 25),
			date(2025, time.January, 25),
			date(2025, time.February, 5),
		},
		{
			"February start has a March end despite short month",
			date(2025, time.February, 26),
			date(2025, time.February, 25),
			date(2025, time.March, 25),
			date(2025, time.April, 5),
		},
		{
			"time of day is ignored",
			time.Date(2025, time.June, 10, 17, 45, 12, 0, time.Local),
			date(2025, time.May, 25),
			date(2025, time.June, 25),
			date(2025, time.July, 5),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := CycleFor(tc.input)
			assert.Equal(t, tc.expectedStart, c.Start)
			assert.Equal(t, tc.expectedEnd, c.End)
			assert.Equal(t, tc.expectedDue, c.Due)
		})
	}
}

func TestCycleInvariants(t *testing.T) {
	// Start is always the 25th at midnight, end is exactly one calendar
	// month later, for any anchor date.
	anchor := date(2023, time.January, 1)
	for i := 0; i < 730; i++ {
		c := CycleFor(anchor.AddDate(0, 0, i))
		assert.Equal(t, 25, c.Start.Day())
		assert.Equal(t, 25, c.End.Day())
		assert.Equal(t, c.Start.AddDate(0, 1, 0), c.End)
		assert.Equal(t, 5, c.Due.Day())
		assert.Equal(t, 0, c.Start.Hour())
	}
}

func TestCycleIndexStrictlyIncreasing(t *testing.T) {
	anchor := date(2024, time.March, 25)
	prev := CycleFor(anchor).Index()
	for i := 1; i <= 36; i++ {
		index := Shift(anchor, i).Index()
		assert.Equal(t, prev+1, index, "month %d", i)
		prev = index
	}
}

func TestCycleLabel(t *testing.T) {
	c := CycleFor(date(2025, time.January, 26))
	assert.Equal(t, "Jan 25 - Feb 25, 2025", c.Label)

	c = CycleFor(date(2024, time.December, 30))
	assert.Equal(t, "Dec 25 - Jan 25, 2025", c.Label)
}

func TestCycleContains(t *testing.T) {
	c := CycleFor(date(2025, time.January, 26))

	assert.True(t, c.Contains(date(2025, time.January, 25)))
	assert.True(t, c.Contains(date(2025, time.February, 24)))
	assert.False(t, c.Contains(date(2025, time.February, 25)), "end is exclusive")
	assert.False(t, c.Contains(date(2025, time.January, 24)))
}

func TestCycleMatches(t *testing.T) {
	a := CycleFor(date(2025, time.January, 26))
	b := CycleFor(date(2025, time.February, 10))
	c := CycleFor(date(2025, time.February, 26))

	assert.True(t, a.Matches(b), "dates in the same period share a cycle")
	assert.False(t, a.Matches(c))
}

func TestShift(t *testing.T) {
	anchor := date(2025, time.March, 10)
	current := CycleFor(anchor)

	next := Shift(anchor, 1)
	prev := Shift(anchor, -1)

	assert.Equal(t, current.Index()+1, next.Index())
	assert.Equal(t, current.Index()-1, prev.Index())
	assert.Equal(t, current.End, next.Start)
	assert.Equal(t, current.Start, prev.End)
}

func TestIndexFor(t *testing.T) {
	// Index is due year*12 + zero-based due month.
	index := IndexFor(date(2025, time.January, 20)) // due 2025-02-05
	assert.Equal(t, 2025*12+1, index)

	index = IndexFor(date(2025, time.January, 26)) // due 2025-03-05
	assert.Equal(t, 2025*12+2, index)
}
