package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

// EstimateSource says why a day carries the hours it does. The set is closed:
// consumers are expected to switch over all four values.
type EstimateSource string

const (
	// EstimateSourcePlannedEvent marks hours derived from calendar events
	// attributed to the project. Planned time always wins over estimates.
	EstimateSourcePlannedEvent EstimateSource = "planned-event"
	// EstimateSourceMilestoneAllocation marks hours distributed from a
	// milestone-bounded segment.
	EstimateSourceMilestoneAllocation EstimateSource = "milestone-allocation"
	// EstimateSourceAutoEstimate marks hours distributed from the trailing
	// segment that absorbs the budget left after milestone allocations.
	EstimateSourceAutoEstimate EstimateSource = "auto-estimate"
	// EstimateSourceNone marks days that carry no hours (non-working days,
	// or working days no segment could reach).
	EstimateSourceNone EstimateSource = "none"
)

// RecurrenceType is the period of a recurring milestone template.
type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
)

// MonthlyPattern selects how a monthly recurrence picks its day.
type MonthlyPattern string

const (
	// MonthlyPatternDate repeats on a fixed day of the month (1-31). Months
	// without that day are skipped.
	MonthlyPatternDate MonthlyPattern = "date"
	// MonthlyPatternDayOfWeek repeats on the Nth weekday of the month, e.g.
	// the third Tuesday.
	MonthlyPatternDayOfWeek MonthlyPattern = "dayOfWeek"
)

// AllocationUnit is the unit of a milestone's time allocation. Historical
// data carries both absolute hours and percentages of the project budget, so
// the unit is explicit rather than an implicit convention. An empty unit
// means hours.
type AllocationUnit string

const (
	AllocationUnitHours   AllocationUnit = "hours"
	AllocationUnitPercent AllocationUnit = "percent"
)

// WeekdayMask is a bit set of weekdays, bit N for time.Weekday(N). It limits
// which weekdays participate in auto-estimate distribution. The zero mask
// means unrestricted: projects created before the mask existed keep all
// weekdays.
type WeekdayMask uint8

// MaskOf builds a mask from the given weekdays.
func MaskOf(days ...time.Weekday) WeekdayMask {
	var m WeekdayMask
	for _, d := range days {
		m |= 1 << uint(d)
	}
	return m
}

// Has reports whether the weekday's bit is set.
func (m WeekdayMask) Has(d time.Weekday) bool {
	return m&(1<<uint(d)) != 0
}

// Allows reports whether the weekday participates in auto-estimate
// distribution. The zero mask allows every weekday.
func (m WeekdayMask) Allows(d time.Weekday) bool {
	return m == 0 || m.Has(d)
}

// Weekdays lists the set weekdays in time.Weekday order.
func (m WeekdayMask) Weekdays() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if m.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

func (m WeekdayMask) String() string {
	if m == 0 {
		return "any"
	}
	s := ""
	for _, d := range m.Weekdays() {
		if s != "" {
			s += "|"
		}
		s += d.String()[:3]
	}
	return s
}

// Date returns the canonical engine representation of a calendar day:
// midnight UTC. All date fields in this package hold such values.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates a timestamp to the calendar day it falls on, in UTC.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange normalizes both bounds to calendar days.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: DateOf(start), End: DateOf(end)}
}

// IsValid reports whether the range spans at least one day.
func (r DateRange) IsValid() bool {
	return !r.Start.After(r.End)
}

// Days returns the number of days the range covers, 0 for inverted ranges.
func (r DateRange) Days() int {
	if !r.IsValid() {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Contains reports whether the day falls inside the range, bounds included.
func (r DateRange) Contains(day time.Time) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}

// Project is the engine's read-only view of a project record. Lifecycle and
// identity beyond ID belong to the surrounding application.
type Project struct {
	ID        uuid.UUID `json:"id"`
	StartDate time.Time `json:"startDate"`
	// EndDate is ignored for continuous projects.
	EndDate    time.Time `json:"endDate,omitempty"`
	Continuous bool      `json:"continuous,omitempty"`
	// EstimatedHours is the project's total time budget.
	EstimatedHours float64 `json:"estimatedHours"`
	// AutoEstimateWeekdayMask limits which weekdays receive auto-estimate
	// hours. Milestone allocations are not affected by the mask.
	AutoEstimateWeekdayMask WeekdayMask `json:"autoEstimateWeekdayMask,omitempty"`
}

// RecurringConfig describes a repeating milestone pattern. Exactly one
// template row represents the whole series; occurrences are generated at
// query time and never stored.
type RecurringConfig struct {
	Type     RecurrenceType `json:"type" validate:"required,oneof=daily weekly monthly"`
	Interval int            `json:"interval" validate:"required,min=1"`
	// WeeklyDayOfWeek is required for weekly recurrences.
	WeeklyDayOfWeek *time.Weekday `json:"weeklyDayOfWeek,omitempty" validate:"required_if=Type weekly,omitempty,weekday"`
	// MonthlyPattern is required for monthly recurrences.
	MonthlyPattern MonthlyPattern `json:"monthlyPattern,omitempty" validate:"required_if=Type monthly,omitempty,oneof=date dayOfWeek"`
	// MonthlyDate is the day of month for MonthlyPatternDate.
	MonthlyDate *int `json:"monthlyDate,omitempty" validate:"required_if=MonthlyPattern date,omitempty,min=1,max=31"`
	// MonthlyWeekOfMonth selects the Nth weekday (1-5) for
	// MonthlyPatternDayOfWeek; -1 selects the last.
	MonthlyWeekOfMonth *int `json:"monthlyWeekOfMonth,omitempty" validate:"required_if=MonthlyPattern dayOfWeek,omitempty,weekofmonth"`
	// MonthlyDayOfWeek is the weekday for MonthlyPatternDayOfWeek.
	MonthlyDayOfWeek *time.Weekday `json:"monthlyDayOfWeek,omitempty" validate:"required_if=MonthlyPattern dayOfWeek,omitempty,weekday"`
}

// Milestone bounds a segment of its project's lifespan and carries the hours
// allocated to that segment. DueDate is the end of the milestone's own work
// period.
type Milestone struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"projectId"`
	DueDate   time.Time `json:"dueDate"`
	// StartDate optionally anchors recurring expansion; plain milestones
	// derive their work period from the previous segment boundary.
	StartDate *time.Time `json:"startDate,omitempty"`
	// TimeAllocation is interpreted per AllocationUnit.
	TimeAllocation float64        `json:"timeAllocation"`
	AllocationUnit AllocationUnit `json:"allocationUnit,omitempty" validate:"omitempty,oneof=hours percent"`
	IsRecurring    bool           `json:"isRecurring,omitempty"`
	// RecurringConfig must be present when IsRecurring is true; a missing or
	// malformed config yields zero occurrences, never an engine failure.
	RecurringConfig *RecurringConfig `json:"recurringConfig,omitempty"`
}

// CalendarEvent is a materialized calendar entry. Recurring calendar events
// are expanded upstream before they reach the engine.
type CalendarEvent struct {
	ID uuid.UUID `json:"id"`
	// ProjectID attributes the event to a project; events without one never
	// contribute planned time.
	ProjectID *uuid.UUID `json:"projectId,omitempty"`
	StartTime time.Time  `json:"startTime"`
	// EndTime may cross midnight; the overlap with each touched day is
	// counted separately.
	EndTime time.Time `json:"endTime"`
}

// WorkSlot is one block of working time on a weekday.
type WorkSlot struct {
	// Start and End are "HH:MM" wall-clock labels kept for the settings UI;
	// the engine sums Duration and does not parse them.
	Start string `json:"startTime,omitempty"`
	End   string `json:"endTime,omitempty"`
	// Duration is the slot length in hours.
	Duration float64 `json:"duration"`
}

// Settings is the user's weekly working-hour configuration.
type Settings struct {
	// WeeklyWorkHours maps each weekday to its ordered work slots. A weekday
	// with no slots, or slots summing to zero, is non-working.
	WeeklyWorkHours map[time.Weekday][]WorkSlot `json:"weeklyWorkHours"`
}

// WeekdayHours sums the slot durations configured for a weekday.
func (s Settings) WeekdayHours(d time.Weekday) float64 {
	var total float64
	for _, slot := range s.WeeklyWorkHours[d] {
		if slot.Duration > 0 {
			total += slot.Duration
		}
	}
	return total
}

// Holiday is an inclusive range of non-working days.
type Holiday struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Contains reports whether the day falls inside the holiday, bounds included.
func (h Holiday) Contains(day time.Time) bool {
	return !day.Before(h.StartDate) && !day.After(h.EndDate)
}

// DayEstimate is the engine's authoritative answer for one project-day: how
// many hours should happen on that day and why. The rendering layer turns
// Hours into rectangle heights and Source into visual style.
type DayEstimate struct {
	Date      time.Time      `json:"date"`
	ProjectID uuid.UUID      `json:"projectId"`
	Hours     float64        `json:"hours"`
	Source    EstimateSource `json:"source"`
	// MilestoneID is set for milestone-allocation days; recurring occurrences
	// attribute the template milestone.
	MilestoneID  *uuid.UUID `json:"milestoneId,omitempty"`
	IsWorkingDay bool       `json:"isWorkingDay"`
}

// WeekEstimate aggregates the day estimates of one ISO week (Monday start).
// Both rendering surfaces consume the same day stream, so week totals agree
// with day values by construction.
type WeekEstimate struct {
	WeekStart  time.Time     `json:"weekStart"`
	ProjectID  uuid.UUID     `json:"projectId"`
	TotalHours float64       `json:"totalHours"`
	Days       []DayEstimate `json:"days"`
}

// BudgetSummary is consumed by the budget-validation layer: it compares the
// milestone allocations against the project's total budget. Over-allocation
// is reported, never rejected.
type BudgetSummary struct {
	ProjectID               uuid.UUID `json:"projectId"`
	EstimatedHours          float64   `json:"estimatedHours"`
	MilestoneAllocatedHours float64   `json:"milestoneAllocatedHours"`
	// AutoEstimateHours is the remainder the trailing segment distributes,
	// clamped to zero when milestones over-allocate.
	AutoEstimateHours   float64 `json:"autoEstimateHours"`
	OverAllocated       bool    `json:"overAllocated"`
	OverAllocationHours float64 `json:"overAllocationHours,omitempty"`
}
