package domain

import (
	"fmt"
	"time"
)

// Period identifies one calendar month. Periods are totally ordered by (Year, Month).
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewPeriod validates month and year.
func NewPeriod(month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if year < 1900 || year > 9999 {
		return Period{}, fmt.Errorf("year out of range: %d", year)
	}
	return Period{Month: month, Year: year}, nil
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// Next returns the following month.
func (p Period) Next() Period {
	if p.Month == 12 {
		return Period{Month: 1, Year: p.Year + 1}
	}
	return Period{Month: p.Month + 1, Year: p.Year}
}

// Prev returns the preceding month.
func (p Period) Prev() Period {
	if p.Month == 1 {
		return Period{Month: 12, Year: p.Year - 1}
	}
	return Period{Month: p.Month - 1, Year: p.Year}
}

// FirstDay is midnight UTC on the first day of the month.
func (p Period) FirstDay() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// LastDay is midnight UTC on the last calendar day of the month.
func (p Period) LastDay() time.Time {
	return p.Next().FirstDay().AddDate(0, 0, -1)
}

// Compare returns -1, 0 or 1.
func (p Period) Compare(o Period) int {
	switch {
	case p.Year < o.Year || (p.Year == o.Year && p.Month < o.Month):
		return -1
	case p == o:
		return 0
	default:
		return 1
	}
}

// Before reports whether p is strictly earlier than o.
func (p Period) Before(o Period) bool { return p.Compare(o) < 0 }

// After reports whether p is strictly later than o.
func (p Period) After(o Period) bool { return p.Compare(o) > 0 }

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
