// Package ics materializes iCalendar data into calendar event records.
// Recurring VEVENTs are expanded within the requested window, so downstream
// consumers only ever see concrete occurrences.
package ics

import (
	"io"
	"time"

	ical "github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/teambition/rrule-go"

	api "github.com/daygrid/timeline-planner/api/v1alpha1"
)

// Materialize decodes an iCalendar stream and returns the events overlapping
// the window, attributed to the given project. A recurring event contributes
// one record per occurrence. Occurrence IDs are derived from the event UID
// and the occurrence start, so repeated calls over the same data yield
// identical records.
func Materialize(r io.Reader, projectID uuid.UUID, window api.DateRange) ([]api.CalendarEvent, error) {
	events := make([]api.CalendarEvent, 0)
	if !window.IsValid() {
		return events, nil
	}

	dec := ical.NewDecoder(r)
	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode calendar stream")
		}

		for _, component := range cal.Children {
			if component.Name != ical.CompEvent {
				continue
			}
			materialized, err := materializeEvent(ical.Event{Component: component}, projectID, window)
			if err != nil {
				return nil, err
			}
			events = append(events, materialized...)
		}
	}

	return events, nil
}

func materializeEvent(event ical.Event, projectID uuid.UUID, window api.DateRange) ([]api.CalendarEvent, error) {
	start, err := event.DateTimeStart(nil)
	if err != nil {
		// Events without a usable start carry no plannable time.
		return nil, nil
	}
	end, err := event.DateTimeEnd(nil)
	if err != nil || !end.After(start) {
		return nil, nil
	}

	uid, _ := event.Props.Text(ical.PropUID)
	if uid == "" {
		uid, _ = event.Props.Text(ical.PropSummary)
	}

	// The window bounds whole days; an event overlaps it when it intersects
	// [window.Start, limit).
	limit := window.End.AddDate(0, 0, 1)

	prop := event.Props.Get(ical.PropRecurrenceRule)
	if prop == nil {
		if !start.Before(limit) || !end.After(window.Start) {
			return nil, nil
		}
		return []api.CalendarEvent{{
			ID:        occurrenceID(uid, start),
			ProjectID: &projectID,
			StartTime: start,
			EndTime:   end,
		}}, nil
	}

	ropt, err := rrule.StrToROption(prop.Value)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse recurrence rule of event %q", uid)
	}
	ropt.Dtstart = start
	rule, err := rrule.NewRRule(*ropt)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build recurrence rule of event %q", uid)
	}

	duration := end.Sub(start)
	exceptions := exceptionDates(event)

	var out []api.CalendarEvent
	// Search back by one duration to catch occurrences that started before
	// the window but reach into it.
	for _, occ := range rule.Between(window.Start.Add(-duration), limit, true) {
		if !occ.Before(limit) || !occ.Add(duration).After(window.Start) {
			continue
		}
		if isException(exceptions, occ) {
			continue
		}
		out = append(out, api.CalendarEvent{
			ID:        occurrenceID(uid, occ),
			ProjectID: &projectID,
			StartTime: occ,
			EndTime:   occ.Add(duration),
		})
	}
	return out, nil
}

func exceptionDates(event ical.Event) []time.Time {
	var dates []time.Time
	for _, prop := range event.Props[ical.PropExceptionDates] {
		date, err := prop.DateTime(time.UTC)
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}
	return dates
}

func isException(exceptions []time.Time, occurrence time.Time) bool {
	for _, ex := range exceptions {
		if ex.Equal(occurrence) {
			return true
		}
	}
	return false
}

func occurrenceID(uid string, start time.Time) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(uid+"/"+start.UTC().Format(time.RFC3339)))
}
