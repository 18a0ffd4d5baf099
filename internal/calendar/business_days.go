// Package calendar computes business days and billing period labels.
//
// The billing trigger is defined as the Nth business day of the month:
// a weekday that is not a holiday in the club's jurisdiction. All
// computations are pure functions of the date; no clock is consulted here.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoSuchDay is returned when a month has fewer business days than requested.
var ErrNoSuchDay = errors.New("month has too few business days")

// IsBusinessDay reports whether d is a business day: a weekday that is not
// a holiday of d's own year.
func IsBusinessDay(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := Holidays(d.Year())[midnight(d)]
	return !holiday
}

// NthBusinessDay returns the date of the nth business day of the given
// month, scanning day 1 upward. It wraps ErrNoSuchDay if the month has
// fewer than n business days.
func NthBusinessDay(year int, month time.Month, n int) (time.Time, error) {
	if n < 1 {
		return time.Time{}, fmt.Errorf("business day index %d: %w", n, ErrNoSuchDay)
	}

	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	count := 0
	for day := 1; day <= last; day++ {
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if IsBusinessDay(d) {
			count++
			if count == n {
				return d, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("no %dth business day in %04d-%02d: %w", n, year, month, ErrNoSuchDay)
}

// IsTriggerDay reports whether d is the nth business day of its month.
// A month without n business days has no trigger day; that is not an error.
func IsTriggerDay(d time.Time, n int) bool {
	nth, err := NthBusinessDay(d.Year(), d.Month(), n)
	if err != nil {
		return false
	}
	return midnight(d).Equal(nth)
}

// midnight truncates d to its calendar date in UTC, the granularity the
// holiday table is keyed on.
func midnight(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
