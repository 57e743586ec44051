// Package recurrence expands recurring milestone templates into concrete due
// dates. A single template row represents the whole series; occurrences are
// generated on demand, never stored, and the same inputs always yield the
// same dates.
package recurrence

import (
	"time"

	"github.com/teambition/rrule-go"

	api "github.com/daygrid/timeline-planner/api/v1alpha1"
	"github.com/daygrid/timeline-planner/internal/validator"
)

// monthScanBound limits the search for the first month matching a monthly
// pattern. Every valid pattern matches within a year (day 31 exists seven
// months out of twelve), so the bound only guards degenerate input.
const monthScanBound = 48

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validator {
	v := validator.NewValidator()
	v.Register(validator.NewRecurrenceValidationRules()...)
	return v
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// Occurrences generates the due dates of a recurring template inside
// [searchStart, until], at most limit of them (limit <= 0 means unbounded).
// The first occurrence is the first calendar day on or after searchStart
// matching the pattern; the interval then steps from that anchor, not from
// searchStart. The bool result reports whether the limit cut the series
// short. A malformed config returns *ErrInvalidConfig; callers treat the
// series as empty and report the problem instead of failing the estimate.
func Occurrences(cfg *api.RecurringConfig, searchStart, until time.Time, limit int) ([]time.Time, bool, error) {
	if cfg == nil {
		return nil, false, NewErrMissingConfig()
	}
	if err := configValidator.Struct(cfg); err != nil {
		return nil, false, NewErrInvalidConfig(err)
	}

	searchStart, until = api.DateOf(searchStart), api.DateOf(until)
	if until.Before(searchStart) {
		return nil, false, nil
	}

	first, ok := firstMatch(cfg, searchStart)
	if !ok || first.After(until) {
		return nil, false, nil
	}

	rule, err := newRule(cfg, first, until)
	if err != nil {
		return nil, false, NewErrInvalidConfig(err)
	}

	var dates []time.Time
	next := rule.Iterator()
	for {
		d, more := next()
		if !more {
			return dates, false, nil
		}
		if limit > 0 && len(dates) == limit {
			return dates, true, nil
		}
		dates = append(dates, api.DateOf(d))
	}
}

// firstMatch locates the first calendar day on or after from that matches
// the pattern. The rule built on top of it is anchored here so interval
// stepping counts from the first real occurrence.
func firstMatch(cfg *api.RecurringConfig, from time.Time) (time.Time, bool) {
	switch cfg.Type {
	case api.RecurrenceDaily:
		return from, true
	case api.RecurrenceWeekly:
		return nextWeekday(from, *cfg.WeeklyDayOfWeek), true
	case api.RecurrenceMonthly:
		if cfg.MonthlyPattern == api.MonthlyPatternDate {
			return nextMonthDate(from, *cfg.MonthlyDate)
		}
		return nextMonthWeekday(from, *cfg.MonthlyWeekOfMonth, *cfg.MonthlyDayOfWeek)
	}
	return time.Time{}, false
}

func newRule(cfg *api.RecurringConfig, first, until time.Time) (*rrule.RRule, error) {
	opt := rrule.ROption{
		Interval: cfg.Interval,
		Dtstart:  first,
		Until:    until,
	}
	switch cfg.Type {
	case api.RecurrenceDaily:
		opt.Freq = rrule.DAILY
	case api.RecurrenceWeekly:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{rruleWeekdays[*cfg.WeeklyDayOfWeek]}
	case api.RecurrenceMonthly:
		opt.Freq = rrule.MONTHLY
		if cfg.MonthlyPattern == api.MonthlyPatternDate {
			opt.Bymonthday = []int{*cfg.MonthlyDate}
		} else {
			opt.Byweekday = []rrule.Weekday{rruleWeekdays[*cfg.MonthlyDayOfWeek].Nth(*cfg.MonthlyWeekOfMonth)}
		}
	}
	return rrule.NewRRule(opt)
}

func nextWeekday(from time.Time, day time.Weekday) time.Time {
	offset := (int(day) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, offset)
}

// nextMonthDate finds the first month on or after from that contains the
// given day of month, starting no earlier than from itself. Months lacking
// the day are skipped, matching RFC 5545 BYMONTHDAY semantics.
func nextMonthDate(from time.Time, day int) (time.Time, bool) {
	year, month := from.Year(), from.Month()
	for i := 0; i < monthScanBound; i++ {
		if day <= daysIn(year, month) {
			candidate := api.Date(year, month, day)
			if !candidate.Before(from) {
				return candidate, true
			}
		}
		year, month = nextMonth(year, month)
	}
	return time.Time{}, false
}

func nextMonthWeekday(from time.Time, week int, day time.Weekday) (time.Time, bool) {
	year, month := from.Year(), from.Month()
	for i := 0; i < monthScanBound; i++ {
		if candidate, ok := nthWeekdayOfMonth(year, month, week, day); ok && !candidate.Before(from) {
			return candidate, true
		}
		year, month = nextMonth(year, month)
	}
	return time.Time{}, false
}

// nthWeekdayOfMonth resolves the Nth weekday of a month; n == -1 means the
// last one. A fifth weekday does not exist in every month.
func nthWeekdayOfMonth(year int, month time.Month, n int, day time.Weekday) (time.Time, bool) {
	if n == -1 {
		last := api.Date(year, month, daysIn(year, month))
		offset := (int(last.Weekday()) - int(day) + 7) % 7
		return last.AddDate(0, 0, -offset), true
	}

	first := api.Date(year, month, 1)
	offset := (int(day) - int(first.Weekday()) + 7) % 7
	candidate := first.AddDate(0, 0, offset+(n-1)*7)
	if candidate.Month() != month {
		return time.Time{}, false
	}
	return candidate, true
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

func daysIn(year int, month time.Month) int {
	// Day zero of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
