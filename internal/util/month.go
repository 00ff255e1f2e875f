package util

import "time"

// DateLayout is the ISO-8601 calendar date format used on the wire
const DateLayout = "2006-01-02"

// DaysInMonth returns the number of days in the 1-based month of year
func DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay limits day to the length of the given month
func ClampDay(day, year, month int) int {
	if last := DaysInMonth(year, month); day > last {
		return last
	}
	return day
}

// CalculateActualDate returns the date for a target day in a given month,
// handling months with fewer days (e.g., day 31 in February returns Feb 28/29)
func CalculateActualDate(year, month, targetDay int) time.Time {
	return time.Date(year, time.Month(month), ClampDay(targetDay, year, month), 0, 0, 0, 0, time.UTC)
}

// FirstOfMonth returns midnight UTC on day 1 of the month
func FirstOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// LastOfMonth returns midnight UTC on the last day of the month
func LastOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month), DaysInMonth(year, month), 0, 0, 0, 0, time.UTC)
}

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthIndex flattens (year, month) into a single counter
func MonthIndex(year, month int) int {
	return year*12 + month
}

// MonthDiff returns the number of whole calendar months from origin to (year, month)
func MonthDiff(origin time.Time, year, month int) int {
	return MonthIndex(year, month) - MonthIndex(origin.Year(), int(origin.Month()))
}

// InMonth reports whether t falls on a day of (year, month)
func InMonth(t time.Time, year, month int) bool {
	return t.Year() == year && int(t.Month()) == month
}

// PreviousMonth returns the year and month for the previous month
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// NextMonth returns the year and month for the following month
func NextMonth(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

// IsFutureMonth returns true if (year, month) is strictly after the month containing now
func IsFutureMonth(year, month int, now time.Time) bool {
	return MonthIndex(year, month) > MonthIndex(now.Year(), int(now.Month()))
}

// IsHistoricalMonth returns true if (year, month) is strictly before the month containing now
func IsHistoricalMonth(year, month int, now time.Time) bool {
	return MonthIndex(year, month) < MonthIndex(now.Year(), int(now.Month()))
}
