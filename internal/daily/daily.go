// Package daily provides deterministic day-of-year content selection.
package daily

import "time"

// DayOfYear returns the 1-indexed day of the year for the given date,
// computed as whole days since December 31 of the preceding year. Leap
// years fall out of the calendar arithmetic, nothing is assumed about 365.
func DayOfYear(date time.Time) int {
	startOfYear := time.Date(date.Year()-1, time.December, 31, 0, 0, 0, 0, date.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return int(day.Sub(startOfYear).Hours() / 24)
}

// Index maps a calendar date onto an index into a list of n items.
// The same date always yields the same index for a fixed n.
func Index(date time.Time, n int) int {
	if n <= 0 {
		return 0
	}
	return DayOfYear(date) % n
}

// Pick returns the item for the given date. The second return is false
// only for an empty list.
func Pick[T any](date time.Time, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[Index(date, len(items))], true
}
