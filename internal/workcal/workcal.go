// Package workcal decides which calendar days are working days under the
// user's weekly work-hour configuration and holiday list.
//
// Every function is pure: the same inputs always produce the same answer, and
// nothing here reads the wall clock.
package workcal

import (
	"time"

	api "github.com/daygrid/timeline-planner/api/v1alpha1"
)

// IsWorkingDay reports whether the day's weekday has positive configured
// working time and the day does not fall inside any holiday range.
func IsWorkingDay(day time.Time, settings api.Settings, holidays []api.Holiday) bool {
	day = api.DateOf(day)
	if settings.WeekdayHours(day.Weekday()) <= 0 {
		return false
	}
	return !isHoliday(day, holidays)
}

// WorkingDays enumerates the working days in [start, end], both ends
// inclusive, in ascending order. An inverted range yields nothing.
func WorkingDays(start, end time.Time, settings api.Settings, holidays []api.Holiday) []time.Time {
	start, end = api.DateOf(start), api.DateOf(end)
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d, settings, holidays) {
			days = append(days, d)
		}
	}
	return days
}

// CountWorkingDays is WorkingDays without materializing the dates.
func CountWorkingDays(start, end time.Time, settings api.Settings, holidays []api.Holiday) int {
	start, end = api.DateOf(start), api.DateOf(end)
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d, settings, holidays) {
			count++
		}
	}
	return count
}

// DayCapacityHours returns the summed slot duration available on the day, or
// zero for non-working days. The rendering layer uses it to scale day
// rectangles against capacity.
func DayCapacityHours(day time.Time, settings api.Settings, holidays []api.Holiday) float64 {
	day = api.DateOf(day)
	if isHoliday(day, holidays) {
		return 0
	}
	return settings.WeekdayHours(day.Weekday())
}

func isHoliday(day time.Time, holidays []api.Holiday) bool {
	for _, h := range holidays {
		if h.Contains(day) {
			return true
		}
	}
	return false
}
