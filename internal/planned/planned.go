// Package planned aggregates calendar events attributed to a project into
// per-day planned hours. Planned time is the strongest estimate source: a day
// with planned hours keeps them regardless of any milestone or auto-estimate
// value.
package planned

import (
	"time"

	"github.com/google/uuid"
	"github.com/thoas/go-funk"

	api "github.com/daygrid/timeline-planner/api/v1alpha1"
)

// HoursOnDate sums, over every event attributed to the project, the overlap
// between the event and the 24-hour window of the given day. Events crossing
// midnight contribute a fraction to each day they touch; the clamp arithmetic
// never double-counts and never goes negative.
func HoursOnDate(projectID uuid.UUID, day time.Time, events []api.CalendarEvent) float64 {
	dayStart := api.DateOf(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var total float64
	for _, ev := range events {
		if ev.ProjectID == nil || *ev.ProjectID != projectID {
			continue
		}
		total += overlapHours(ev, dayStart, dayEnd)
	}
	return total
}

// DailyHours resolves planned hours for every day in [start, end] in one pass
// over the events. Days without planned time are absent from the result.
func DailyHours(projectID uuid.UUID, start, end time.Time, events []api.CalendarEvent) map[time.Time]float64 {
	start, end = api.DateOf(start), api.DateOf(end)
	hours := make(map[time.Time]float64)
	if start.After(end) {
		return hours
	}

	matching := funk.Filter(events, func(ev api.CalendarEvent) bool {
		return ev.ProjectID != nil && *ev.ProjectID == projectID
	}).([]api.CalendarEvent)

	for _, ev := range matching {
		if !ev.EndTime.After(ev.StartTime) {
			continue
		}
		// Walk only the days the event touches, clipped to the window.
		first := api.DateOf(ev.StartTime)
		last := api.DateOf(ev.EndTime)
		if first.Before(start) {
			first = start
		}
		if last.After(end) {
			last = end
		}
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			if h := overlapHours(ev, d, d.AddDate(0, 0, 1)); h > 0 {
				hours[d] += h
			}
		}
	}
	return hours
}

// overlapHours clamps the event to [dayStart, dayEnd) and returns the
// remaining span in hours, never negative.
func overlapHours(ev api.CalendarEvent, dayStart, dayEnd time.Time) float64 {
	from := ev.StartTime.UTC()
	to := ev.EndTime.UTC()
	if from.Before(dayStart) {
		from = dayStart
	}
	if to.After(dayEnd) {
		to = dayEnd
	}
	if !to.After(from) {
		return 0
	}
	return to.Sub(from).Hours()
}
