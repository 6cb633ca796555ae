package period

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidPeriod marks strings that are neither YYYY-MM nor YYYY.
var ErrInvalidPeriod = errors.New("invalid period")

const (
	monthLayoutLen = len("2006-01")
	yearLayoutLen  = len("2006")

	minYear = 1
	maxYear = 9999
)

// Period is a calendar month (YYYY-MM) or a calendar year (YYYY).
// The zero value is not a valid period.
type Period struct {
	year  int
	month int // 1..12 for a month period, 0 for a year period
}

// Month returns the month period for year/month. month is normalised, so
// Month(2025, 13) is 2026-01 and Month(2025, 0) is 2024-12.
func Month(year, month int) Period {
	m := month - 1
	year += floorDiv(m, 12)
	m = m - floorDiv(m, 12)*12
	return Period{year: year, month: m + 1}
}

// Year returns the year period.
func Year(year int) Period {
	return Period{year: year}
}

// Parse accepts either YYYY-MM or YYYY.
func Parse(s string) (Period, error) {
	switch len(s) {
	case monthLayoutLen:
		return ParseMonth(s)
	case yearLayoutLen:
		return ParseYear(s)
	default:
		return Period{}, fmt.Errorf("%w: %q (want YYYY-MM or YYYY)", ErrInvalidPeriod, s)
	}
}

// ParseMonth parses a YYYY-MM period.
func ParseMonth(s string) (Period, error) {
	if len(s) != monthLayoutLen || s[4] != '-' {
		return Period{}, fmt.Errorf("%w: %q (want YYYY-MM)", ErrInvalidPeriod, s)
	}
	year, err := parseDigits(s[:4])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q: %v", ErrInvalidPeriod, s, err)
	}
	month, err := parseDigits(s[5:])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q: %v", ErrInvalidPeriod, s, err)
	}
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: %q: month out of range", ErrInvalidPeriod, s)
	}
	if year < minYear || year > maxYear {
		return Period{}, fmt.Errorf("%w: %q: year out of range", ErrInvalidPeriod, s)
	}
	return Period{year: year, month: month}, nil
}

// ParseYear parses a YYYY period.
func ParseYear(s string) (Period, error) {
	if len(s) != yearLayoutLen {
		return Period{}, fmt.Errorf("%w: %q (want YYYY)", ErrInvalidPeriod, s)
	}
	year, err := parseDigits(s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q: %v", ErrInvalidPeriod, s, err)
	}
	if year < minYear || year > maxYear {
		return Period{}, fmt.Errorf("%w: %q: year out of range", ErrInvalidPeriod, s)
	}
	return Period{year: year}, nil
}

func parseDigits(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("non-digit %q", s[i])
		}
	}
	return strconv.Atoi(s)
}

// String renders YYYY-MM for months and YYYY for years.
func (p Period) String() string {
	if p.IsYear() {
		return fmt.Sprintf("%04d", p.year)
	}
	return fmt.Sprintf("%04d-%02d", p.year, p.month)
}

// IsYear reports whether p is a year period.
func (p Period) IsYear() bool { return p.month == 0 }

// IsZero reports whether p is the zero value.
func (p Period) IsZero() bool { return p.year == 0 && p.month == 0 }

// YearNumber returns the calendar year.
func (p Period) YearNumber() int { return p.year }

// MonthNumber returns 1..12 for month periods and 0 for year periods.
func (p Period) MonthNumber() int { return p.month }

// Prev returns the previous period of the same granularity.
func (p Period) Prev() Period {
	if p.IsYear() {
		return Year(p.year - 1)
	}
	return Month(p.year, p.month-1)
}

// Next returns the next period of the same granularity.
func (p Period) Next() Period {
	if p.IsYear() {
		return Year(p.year + 1)
	}
	return Month(p.year, p.month+1)
}

// PreviousYear returns the period one year earlier with the same granularity.
// For a month this is the same calendar month of the previous year, which is
// the comparison period for deltas.
func (p Period) PreviousYear() Period {
	return Period{year: p.year - 1, month: p.month}
}

// YearOf returns the year period containing p.
func (p Period) YearOf() Period {
	return Year(p.year)
}

// Months returns the twelve months of a year period, or p itself for a month.
func (p Period) Months() []Period {
	if !p.IsYear() {
		return []Period{p}
	}
	months := make([]Period, 0, 12)
	for m := 1; m <= 12; m++ {
		months = append(months, Period{year: p.year, month: m})
	}
	return months
}

// FirstMonth and LastMonth bound the months covered by p.
func (p Period) FirstMonth() Period {
	if p.IsYear() {
		return Period{year: p.year, month: 1}
	}
	return p
}

func (p Period) LastMonth() Period {
	if p.IsYear() {
		return Period{year: p.year, month: 12}
	}
	return p
}

// Bounds returns the half-open interval [start, end) covered by p in loc.
func (p Period) Bounds(loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	first := p.FirstMonth()
	start := time.Date(first.year, time.Month(first.month), 1, 0, 0, 0, 0, loc)
	if p.IsYear() {
		return start, start.AddDate(1, 0, 0)
	}
	return start, start.AddDate(0, 1, 0)
}

// BoundsMillis is Bounds in the local zone, as epoch milliseconds.
func (p Period) BoundsMillis() (int64, int64) {
	start, end := p.Bounds(time.Local)
	return start.UnixMilli(), end.UnixMilli()
}

// Contains reports whether month lies within p.
func (p Period) Contains(month Period) bool {
	if p.IsYear() {
		return month.year == p.year
	}
	return month == p
}

// Of returns the local calendar month containing t.
func Of(t time.Time) Period {
	local := t.In(time.Local)
	return Period{year: local.Year(), month: int(local.Month())}
}

// FromMillis derives the month an event belongs to from its epoch
// milliseconds timestamp. Ingestion and recompute both go through here and
// must never disagree.
func FromMillis(ms int64) Period {
	return Of(time.UnixMilli(ms))
}

// CurrentMonth returns the current local month as YYYY-MM.
func CurrentMonth() string {
	return Of(time.Now()).String()
}

// CurrentYear returns the current local year as YYYY.
func CurrentYear() string {
	return Of(time.Now()).YearOf().String()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
