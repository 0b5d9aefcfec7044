// Package period resolves logical time-period tokens ("3m", "6m", "1y",
// "all", or an explicit "YYYY-MM") into concrete calendar ranges.
package period

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidPeriod = errors.New("invalid period token")

const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

// Period is a resolved, inclusive date range together with the day-by-day
// and month-by-month calendars downstream aggregation aligns against.
type Period struct {
	Start  time.Time
	End    time.Time
	Days   []string // "YYYY-MM-DD", ascending
	Months []string // "YYYY-MM", ascending

	// Monthly is true when the token named one explicit calendar month
	// rather than a trailing window.
	Monthly bool
}

// IsEmpty reports whether the period covers no days ("all" on an empty ledger).
func (p Period) IsEmpty() bool {
	return len(p.Days) == 0
}

// Contains reports whether the given day falls inside the range, boundaries
// inclusive.
func (p Period) Contains(day time.Time) bool {
	d := Truncate(day)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Truncate normalizes a timestamp to its UTC calendar day.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey formats a timestamp as the bucket key for its calendar day.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// MonthKey formats a timestamp as the bucket key for its calendar month.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// DaysInMonth returns the true day count of the month containing t,
// accounting for leap years.
func DaysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

var windowMonths = map[string]int{
	"3m": 3,
	"6m": 6,
	"1y": 12,
}

// Resolve turns a period token into a concrete range. Relative windows end
// at now's calendar day and start at the first day of the month N-1 months
// back, so the partial current month counts as one of the N. "all" spans
// from earliest to now and resolves empty when earliest is nil. An explicit
// "YYYY-MM" covers that month's true day count.
//
// Resolve is pure: the same (token, now, earliest) always yields the same
// Period.
func Resolve(token string, now time.Time, earliest *time.Time) (Period, error) {
	today := Truncate(now)

	if months, ok := windowMonths[token]; ok {
		firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		start := firstOfMonth.AddDate(0, -(months - 1), 0)

		return build(start, today, false), nil
	}

	if token == "all" {
		if earliest == nil {
			return Period{}, nil
		}

		start := Truncate(*earliest)
		if start.After(today) {
			return Period{}, fmt.Errorf("%w: earliest transaction after now", ErrInvalidPeriod)
		}

		return build(start, today, false), nil
	}

	if month, err := time.Parse(MonthLayout, token); err == nil {
		start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)

		return build(start, end, true), nil
	}

	return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, token)
}

// Range builds a period over an explicit [start, end] day range.
func Range(start, end time.Time) Period {
	return build(Truncate(start), Truncate(end), false)
}

func build(start, end time.Time, monthly bool) Period {
	p := Period{Start: start, End: end, Monthly: monthly}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		p.Days = append(p.Days, DayKey(d))
	}

	last := MonthKey(end)
	for m := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC); ; m = m.AddDate(0, 1, 0) {
		key := MonthKey(m)
		p.Months = append(p.Months, key)

		if key == last {
			break
		}
	}

	return p
}
