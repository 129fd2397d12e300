package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayoutISO is the canonical wire format for calendar dates.
const DateLayoutISO = "2006-01-02"

// dateLayouts are the formats accepted when unmarshalling a date, in order.
// RFC3339 covers documents exported with full timestamps.
var dateLayouts = []string{
	DateLayoutISO,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Date is a calendar date without a meaningful time component. It marshals
// as "YYYY-MM-DD" and accepts the same plus RFC3339 timestamps on input.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight local time.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// ParseDate parses a date string in any accepted layout.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("unable to parse date: %s", s)
}

// String renders the date in ISO form; zero dates render empty.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayoutISO)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
