package dateutil

import (
	"fmt"
	"time"
)

// AcademicYearStartMonth is the month federal award years begin (July 1)
const AcademicYearStartMonth = time.July

// AcademicYear returns the calendar year in which the academic year containing
// date began. August 2026 and March 2027 both belong to academic year 2026.
func AcademicYear(date time.Time) int {
	if date.Month() < AcademicYearStartMonth {
		return date.Year() - 1
	}
	return date.Year()
}

// AcademicYearStart returns July 1 of the given academic year in UTC
func AcademicYearStart(year int) time.Time {
	return time.Date(year, AcademicYearStartMonth, 1, 0, 0, 0, 0, time.UTC)
}

// AcademicYearLabel formats an academic year as "2026-27"
func AcademicYearLabel(year int) string {
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// ProgramAcademicYears labels each program year of a program starting at start
func ProgramAcademicYears(start time.Time, years int) []string {
	if years <= 0 {
		return nil
	}
	first := AcademicYear(start)
	labels := make([]string, years)
	for i := range labels {
		labels[i] = AcademicYearLabel(first + i)
	}
	return labels
}

// StartsBefore reports whether a program beginning at start began strictly
// before cutoff, comparing calendar dates only
func StartsBefore(start, cutoff time.Time) bool {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	c := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)
	return s.Before(c)
}
