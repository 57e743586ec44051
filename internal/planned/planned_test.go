package planned

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	api "github.com/daygrid/timeline-planner/api/v1alpha1"
)

func event(projectID *uuid.UUID, start, end time.Time) api.CalendarEvent {
	return api.CalendarEvent{
		ID:        uuid.New(),
		ProjectID: projectID,
		StartTime: start,
		EndTime:   end,
	}
}

func TestHoursOnDate(t *testing.T) {
	projectID := uuid.New()
	otherID := uuid.New()
	day := api.Date(2025, time.January, 6)

	tests := []struct {
		name   string
		events []api.CalendarEvent
		want   float64
	}{
		{
			name:   "no events",
			events: nil,
			want:   0,
		},
		{
			name: "single event within the day",
			events: []api.CalendarEvent{
				event(&projectID, time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC), time.Date(2025, time.January, 6, 12, 0, 0, 0, time.UTC)),
			},
			want: 3,
		},
		{
			name: "two events accumulate",
			events: []api.CalendarEvent{
				event(&projectID, time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC), time.Date(2025, time.January, 6, 10, 30, 0, 0, time.UTC)),
				event(&projectID, time.Date(2025, time.January, 6, 14, 0, 0, 0, time.UTC), time.Date(2025, time.January, 6, 15, 0, 0, 0, time.UTC)),
			},
			want: 2.5,
		},
		{
			name: "other project is ignored",
			events: []api.CalendarEvent{
				event(&otherID, time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC), time.Date(2025, time.January, 6, 12, 0, 0, 0, time.UTC)),
			},
			want: 0,
		},
		{
			name: "unattributed event is ignored",
			events: []api.CalendarEvent{
				event(nil, time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC), time.Date(2025, time.January, 6, 12, 0, 0, 0, time.UTC)),
			},
			want: 0,
		},
		{
			name: "midnight crosser counts only the in-day part",
			events: []api.CalendarEvent{
				event(&projectID, time.Date(2025, time.January, 6, 22, 0, 0, 0, time.UTC), time.Date(2025, time.January, 7, 2, 0, 0, 0, time.UTC)),
			},
			want: 2,
		},
		{
			name: "event ending before it starts contributes nothing",
			events: []api.CalendarEvent{
				event(&projectID, time.Date(2025, time.January, 6, 12, 0, 0, 0, time.UTC), time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, HoursOnDate(projectID, day, tt.events), 1e-9)
		})
	}
}

func TestHoursOnDateMidnightCrosserSplits(t *testing.T) {
	projectID := uuid.New()
	events := []api.CalendarEvent{
		event(&projectID, time.Date(2025, time.January, 6, 22, 0, 0, 0, time.UTC), time.Date(2025, time.January, 7, 2, 0, 0, 0, time.UTC)),
	}

	first := HoursOnDate(projectID, api.Date(2025, time.January, 6), events)
	second := HoursOnDate(projectID, api.Date(2025, time.January, 7), events)

	assert.InDelta(t, 2.0, first, 1e-9)
	assert.InDelta(t, 2.0, second, 1e-9)
	assert.InDelta(t, 4.0, first+second, 1e-9)
}

func TestDailyHours(t *testing.T) {
	projectID := uuid.New()
	events := []api.CalendarEvent{
		// Mon 9:00-12:00.
		event(&projectID, time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC), time.Date(2025, time.January, 6, 12, 0, 0, 0, time.UTC)),
		// Tue 22:00 - Wed 02:00.
		event(&projectID, time.Date(2025, time.January, 7, 22, 0, 0, 0, time.UTC), time.Date(2025, time.January, 8, 2, 0, 0, 0, time.UTC)),
		// Unattributed, ignored.
		event(nil, time.Date(2025, time.January, 6, 13, 0, 0, 0, time.UTC), time.Date(2025, time.January, 6, 14, 0, 0, 0, time.UTC)),
	}

	hours := DailyHours(projectID, api.Date(2025, time.January, 6), api.Date(2025, time.January, 10), events)

	assert.Len(t, hours, 3)
	assert.InDelta(t, 3.0, hours[api.Date(2025, time.January, 6)], 1e-9)
	assert.InDelta(t, 2.0, hours[api.Date(2025, time.January, 7)], 1e-9)
	assert.InDelta(t, 2.0, hours[api.Date(2025, time.January, 8)], 1e-9)
}

func TestDailyHoursClipsToWindow(t *testing.T) {
	projectID := uuid.New()
	events := []api.CalendarEvent{
		// Spans three full days, Jan 5 00:00 - Jan 8 00:00.
		event(&projectID, api.Date(2025, time.January, 5), api.Date(2025, time.January, 8)),
	}

	hours := DailyHours(projectID, api.Date(2025, time.January, 6), api.Date(2025, time.January, 6), events)

	assert.Len(t, hours, 1)
	assert.InDelta(t, 24.0, hours[api.Date(2025, time.January, 6)], 1e-9)
}

func TestDailyHoursInvertedWindow(t *testing.T) {
	projectID := uuid.New()
	events := []api.CalendarEvent{
		event(&projectID, time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC), time.Date(2025, time.January, 6, 12, 0, 0, 0, time.UTC)),
	}

	hours := DailyHours(projectID, api.Date(2025, time.January, 10), api.Date(2025, time.January, 6), events)

	assert.Empty(t, hours)
}
