package schedule

import (
	"fmt"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
)

// NextDue advances a due timestamp exactly one period forward.
//
// Monthly advancement clamps the day to the last day of the target month:
// a definition anchored to day 31 lands on Apr 30, Feb 28 (29 in leap
// years) and so on, instead of rolling into the following month. Without
// an anchor the source day itself is clamped the same way, so a due date
// of Jan 31 advances to Feb 28, not Mar 3.
func NextDue(freq domain.Frequency, dayOfMonth *int, from time.Time) (time.Time, error) {
	switch freq {
	case domain.Daily:
		return from.AddDate(0, 0, 1), nil
	case domain.Weekly:
		return from.AddDate(0, 0, 7), nil
	case domain.Monthly:
		return nextMonthly(from, dayOfMonth), nil
	case domain.Yearly:
		return from.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown frequency '%s'", freq)
	}
}

func nextMonthly(from time.Time, dayOfMonth *int) time.Time {
	year, month, day := from.Date()
	if dayOfMonth != nil {
		day = *dayOfMonth
	}

	// time.Date normalizes month 13 into January of the next year.
	targetYear, targetMonth := year, month+1
	if last := daysInMonth(targetYear, targetMonth); day > last {
		day = last
	}

	hour, minute, sec := from.Clock()
	return time.Date(targetYear, targetMonth, day, hour, minute, sec, from.Nanosecond(), from.Location())
}

// daysInMonth returns the number of days in the given month; day 0 of the
// following month normalizes to its last day.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
