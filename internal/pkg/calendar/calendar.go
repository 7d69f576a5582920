// Package calendar handles civil dates. Every date is anchored at 12:00 in the
// process time zone so converting between zones never moves it to another day.
package calendar

import (
	"time"

	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/validator"
)

const anchorHour = 12

// Date returns the civil date y-m-d anchored at local noon.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, anchorHour, 0, 0, 0, time.Local)
}

// Anchor re-anchors t at local noon of the same calendar day as seen in t's own location.
func Anchor(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Parse parses a YYYY-MM-DD string.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(validator.DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Anchor(t), nil
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(validator.DateLayout)
}

// OneYearWindowEnd returns the last day of the twelve-month window starting at start.
func OneYearWindowEnd(start time.Time) time.Time {
	return Anchor(start).AddDate(1, 0, -1)
}
