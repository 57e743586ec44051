package segment

import (
	"time"

	api "github.com/daygrid/timeline-planner/api/v1alpha1"
	"github.com/daygrid/timeline-planner/internal/workcal"
)

// DailyEstimates spreads every segment's allocation evenly across its
// working days and returns one estimate per day keyed by date. The trailing
// auto-estimate segment additionally honors the project's weekday mask.
// Segments whose working-day set is empty emit nothing; their days surface
// as source none upstream unless planned time covers them. The allocator
// fills each segment's WorkingDayCount and HoursPerWorkingDay in place.
func DailyEstimates(project api.Project, plan *Plan, settings api.Settings, holidays []api.Holiday) map[time.Time]api.DayEstimate {
	estimates := make(map[time.Time]api.DayEstimate)

	for i := range plan.Segments {
		seg := &plan.Segments[i]
		if seg.IsZeroLength() {
			continue
		}

		days := workcal.WorkingDays(seg.StartDate, seg.EndDate, settings, holidays)
		if seg.IsAutoEstimate() {
			days = maskedDays(days, project.AutoEstimateWeekdayMask)
		}
		seg.WorkingDayCount = len(days)
		if len(days) == 0 {
			continue
		}
		seg.HoursPerWorkingDay = seg.AllocatedHours / float64(len(days))

		source := api.EstimateSourceMilestoneAllocation
		if seg.IsAutoEstimate() {
			source = api.EstimateSourceAutoEstimate
		}
		for _, day := range days {
			estimates[day] = api.DayEstimate{
				Date:         day,
				ProjectID:    project.ID,
				Hours:        seg.HoursPerWorkingDay,
				Source:       source,
				MilestoneID:  seg.MilestoneID,
				IsWorkingDay: true,
			}
		}
	}
	return estimates
}

func maskedDays(days []time.Time, mask api.WeekdayMask) []time.Time {
	if mask == 0 {
		return days
	}
	var kept []time.Time
	for _, d := range days {
		if mask.Has(d.Weekday()) {
			kept = append(kept, d)
		}
	}
	return kept
}
