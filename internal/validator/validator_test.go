package validator

import (
	"testing"
	"time"

	"github.com/daygrid/timeline-planner/api/v1alpha1"
)

func weekdayPtr(d time.Weekday) *time.Weekday { return &d }
func intPtr(i int) *int                       { return &i }

func TestRecurringConfigValidators(t *testing.T) {
	tests := []struct {
		name       string
		config     v1alpha1.RecurringConfig
		shouldFail bool
	}{
		{
			name: "validation ok -- daily needs only an interval",
			config: v1alpha1.RecurringConfig{
				Type:     v1alpha1.RecurrenceDaily,
				Interval: 1,
			},
			shouldFail: false,
		},
		{
			name: "validation ok -- weekly with weekday",
			config: v1alpha1.RecurringConfig{
				Type:            v1alpha1.RecurrenceWeekly,
				Interval:        2,
				WeeklyDayOfWeek: weekdayPtr(time.Monday),
			},
			shouldFail: false,
		},
		{
			name: "validation ok -- monthly by date",
			config: v1alpha1.RecurringConfig{
				Type:           v1alpha1.RecurrenceMonthly,
				Interval:       1,
				MonthlyPattern: v1alpha1.MonthlyPatternDate,
				MonthlyDate:    intPtr(15),
			},
			shouldFail: false,
		},
		{
			name: "validation ok -- monthly last friday",
			config: v1alpha1.RecurringConfig{
				Type:               v1alpha1.RecurrenceMonthly,
				Interval:           1,
				MonthlyPattern:     v1alpha1.MonthlyPatternDayOfWeek,
				MonthlyWeekOfMonth: intPtr(-1),
				MonthlyDayOfWeek:   weekdayPtr(time.Friday),
			},
			shouldFail: false,
		},
		{
			name: "validation ko -- unknown type",
			config: v1alpha1.RecurringConfig{
				Type:     "yearly",
				Interval: 1,
			},
			shouldFail: true,
		},
		{
			name: "validation ko -- zero interval",
			config: v1alpha1.RecurringConfig{
				Type:     v1alpha1.RecurrenceDaily,
				Interval: 0,
			},
			shouldFail: true,
		},
		{
			name: "validation ko -- weekly without weekday",
			config: v1alpha1.RecurringConfig{
				Type:     v1alpha1.RecurrenceWeekly,
				Interval: 1,
			},
			shouldFail: true,
		},
		{
			name: "validation ko -- monthly without pattern",
			config: v1alpha1.RecurringConfig{
				Type:     v1alpha1.RecurrenceMonthly,
				Interval: 1,
			},
			shouldFail: true,
		},
		{
			name: "validation ko -- monthly date out of range",
			config: v1alpha1.RecurringConfig{
				Type:           v1alpha1.RecurrenceMonthly,
				Interval:       1,
				MonthlyPattern: v1alpha1.MonthlyPatternDate,
				MonthlyDate:    intPtr(32),
			},
			shouldFail: true,
		},
		{
			name: "validation ko -- week of month zero",
			config: v1alpha1.RecurringConfig{
				Type:               v1alpha1.RecurrenceMonthly,
				Interval:           1,
				MonthlyPattern:     v1alpha1.MonthlyPatternDayOfWeek,
				MonthlyWeekOfMonth: intPtr(0),
				MonthlyDayOfWeek:   weekdayPtr(time.Friday),
			},
			shouldFail: true,
		},
		{
			name: "validation ko -- week of month past five",
			config: v1alpha1.RecurringConfig{
				Type:               v1alpha1.RecurrenceMonthly,
				Interval:           1,
				MonthlyPattern:     v1alpha1.MonthlyPatternDayOfWeek,
				MonthlyWeekOfMonth: intPtr(6),
				MonthlyDayOfWeek:   weekdayPtr(time.Friday),
			},
			shouldFail: true,
		},
		{
			name: "validation ko -- weekday out of range",
			config: v1alpha1.RecurringConfig{
				Type:            v1alpha1.RecurrenceWeekly,
				Interval:        1,
				WeeklyDayOfWeek: weekdayPtr(time.Weekday(7)),
			},
			shouldFail: true,
		},
	}

	v := NewValidator()
	v.Register(NewRecurrenceValidationRules()...)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.config)
			if tt.shouldFail && err == nil {
				t.Errorf("expected validation to fail")
			}
			if !tt.shouldFail && err != nil {
				t.Errorf("expected validation to pass, got: %v", err)
			}
		})
	}
}
