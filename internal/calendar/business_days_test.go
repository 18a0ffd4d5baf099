package calendar

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsBusinessDay(t *testing.T) {
	tests := []struct {
		name string
		d    time.Time
		want bool
	}{
		{"saturday", date(2025, time.January, 4), false},
		{"sunday", date(2025, time.January, 5), false},
		{"plain weekday", date(2025, time.January, 2), true},
		{"new year", date(2025, time.January, 1), false},
		{"carnival monday", date(2025, time.March, 3), false},
		{"carnival tuesday", date(2025, time.March, 4), false},
		{"good friday", date(2025, time.April, 18), false},
		{"corpus christi", date(2025, time.June, 19), false},
		{"sao joao (PB)", date(2025, time.June, 24), false},
		{"state foundation (PB)", date(2025, time.August, 5), false},
		{"consciencia negra 2025", date(2025, time.November, 20), false},
		{"nov 20 before 2024 is ordinary", date(2023, time.November, 20), true},
		{"day after corpus christi", date(2025, time.June, 20), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBusinessDay(tt.d); got != tt.want {
				t.Errorf("IsBusinessDay(%s) = %v, want %v", tt.d.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestIsBusinessDayAllWeekends(t *testing.T) {
	// Every Saturday and Sunday of 2025 must be a non-business day.
	for d := date(2025, time.January, 1); d.Year() == 2025; d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			if IsBusinessDay(d) {
				t.Errorf("IsBusinessDay(%s) = true for a %s", d.Format("2006-01-02"), wd)
			}
		}
	}
}

func TestNthBusinessDay(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		n     int
		want  time.Time
	}{
		// Jan 1 is a holiday, 4th-5th a weekend.
		{"january 2025 skips new year", 2025, time.January, 5, date(2025, time.January, 8)},
		// Aug 5 is the Paraíba state holiday.
		{"august 2025 skips state holiday", 2025, time.August, 5, date(2025, time.August, 8)},
		// Carnival eats the first two weekdays of March 2025.
		{"march 2025 skips carnival", 2025, time.March, 5, date(2025, time.March, 11)},
		{"first business day", 2025, time.June, 1, date(2025, time.June, 2)},
		{"plain fifth", 2025, time.June, 5, date(2025, time.June, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NthBusinessDay(tt.year, tt.month, tt.n)
			if err != nil {
				t.Fatalf("NthBusinessDay failed: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("NthBusinessDay(%d, %s, %d) = %s, want %s",
					tt.year, tt.month, tt.n, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}

			// Exactly n-1 business days precede the result within the month.
			preceding := 0
			for d := date(tt.year, tt.month, 1); d.Before(got); d = d.AddDate(0, 0, 1) {
				if IsBusinessDay(d) {
					preceding++
				}
			}
			if preceding != tt.n-1 {
				t.Errorf("found %d business days before result, want %d", preceding, tt.n-1)
			}
			if !IsBusinessDay(got) {
				t.Errorf("result %s is not itself a business day", got.Format("2006-01-02"))
			}
		})
	}
}

func TestNthBusinessDayNotFound(t *testing.T) {
	// February 2025 has exactly 20 business days.
	if _, err := NthBusinessDay(2025, time.February, 21); !errors.Is(err, ErrNoSuchDay) {
		t.Errorf("expected ErrNoSuchDay, got %v", err)
	}
	if _, err := NthBusinessDay(2025, time.June, 0); !errors.Is(err, ErrNoSuchDay) {
		t.Errorf("expected ErrNoSuchDay for n=0, got %v", err)
	}
}

func TestIsTriggerDay(t *testing.T) {
	if !IsTriggerDay(date(2025, time.August, 8), 5) {
		t.Error("expected 2025-08-08 to be the 5th-business-day trigger")
	}
	if IsTriggerDay(date(2025, time.August, 5), 5) {
		t.Error("2025-08-05 is a holiday, not a trigger day")
	}

	// A month with fewer than n business days has no trigger day and no error.
	if IsTriggerDay(date(2025, time.February, 28), 21) {
		t.Error("no 21st business day exists in February 2025")
	}
}

func TestIsTriggerDayOncePerMonth(t *testing.T) {
	months := []struct {
		year  int
		month time.Month
	}{
		{2025, time.January},
		{2025, time.March},
		{2025, time.August},
		{2026, time.February}, // carnival month
	}

	for _, m := range months {
		hits := 0
		last := date(m.year, m.month+1, 0).Day()
		for day := 1; day <= last; day++ {
			if IsTriggerDay(date(m.year, m.month, day), 5) {
				hits++
			}
		}
		if hits != 1 {
			t.Errorf("%04d-%02d: %d trigger days, want exactly 1", m.year, m.month, hits)
		}
	}
}

func TestEasterSunday(t *testing.T) {
	tests := []struct {
		year int
		want time.Time
	}{
		{2024, date(2024, time.March, 31)},
		{2025, date(2025, time.April, 20)},
		{2026, date(2026, time.April, 5)},
	}
	for _, tt := range tests {
		if got := easterSunday(tt.year); !got.Equal(tt.want) {
			t.Errorf("easterSunday(%d) = %s, want %s", tt.year, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
		}
	}
}
