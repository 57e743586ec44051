package service

import (
	"time"

	api "github.com/daygrid/timeline-planner/api/v1alpha1"
	"github.com/daygrid/timeline-planner/internal/config"
	"github.com/daygrid/timeline-planner/internal/planned"
	"github.com/daygrid/timeline-planner/internal/segment"
	"github.com/daygrid/timeline-planner/internal/workcal"
	"github.com/daygrid/timeline-planner/pkg/log"
	"github.com/daygrid/timeline-planner/pkg/metrics"
)

// EstimateService is the engine's single public entry point. It merges
// planned time, milestone allocations and the auto-estimate remainder into
// exactly one DayEstimate per day of the requested window, following the
// fixed priority planned event > segment estimate > none.
//
// The computation is pure: identical inputs produce identical output, and
// nothing is read besides the arguments. Both rendering surfaces (days and
// weeks) consume the same day stream, so they agree by construction.
type EstimateService struct {
	cfg   *config.Config
	cache Cache
}

// EstimateServiceOption configures an EstimateService.
type EstimateServiceOption func(*EstimateService)

// WithCache attaches a result cache keyed on a fingerprint of all inputs.
// Storage, eviction and invalidation stay with the Cache implementation.
func WithCache(cache Cache) EstimateServiceOption {
	return func(s *EstimateService) {
		s.cache = cache
	}
}

// NewEstimateService creates an EstimateService with the given engine
// tunables. Without options the service computes every request from scratch.
func NewEstimateService(cfg *config.Config, opts ...EstimateServiceOption) *EstimateService {
	s := &EstimateService{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProjectDayEstimates computes one DayEstimate per day of the requested
// window, clipped to the project's active lifespan. An empty clip yields an
// empty result, not an error. Input problems found during segmentation are
// logged and counted, never fatal.
func (s *EstimateService) ProjectDayEstimates(
	project api.Project,
	milestones []api.Milestone,
	events []api.CalendarEvent,
	settings api.Settings,
	holidays []api.Holiday,
	window api.DateRange,
) ([]api.DayEstimate, error) {
	tracer := log.NewDebugLogger("estimate_service").
		Operation("project_day_estimates").
		WithUUID("project_id", project.ID).
		Build()

	if err := validateProject(project); err != nil {
		tracer.Error(err).Log()
		return nil, err
	}
	if !window.IsValid() {
		err := NewErrInvalidWindow(window)
		tracer.Error(err).Log()
		return nil, err
	}

	clipped, ok := clipWindow(project, window)
	if !ok {
		tracer.Step("window_outside_lifespan").Log()
		return []api.DayEstimate{}, nil
	}

	var key uint64
	cacheable := false
	if s.cache != nil {
		k, err := cacheKey(project, milestones, events, settings, holidays, clipped)
		if err != nil {
			// Unfingerprintable inputs are computed without the cache.
			tracer.Error(err).WithString("step", "fingerprint_inputs").Log()
		} else {
			key, cacheable = k, true
			if estimates, hit := s.cache.Get(key); hit {
				metrics.IncreaseEstimateCacheHitsTotalMetric()
				tracer.Step("cache_hit").Log()
				return estimates, nil
			}
			metrics.IncreaseEstimateCacheMissesTotalMetric()
		}
	}

	began := time.Now()
	plan, diags := segment.Build(project, milestones, s.cfg)
	reportDiagnostics(tracer, diags)
	segmentDays := segment.DailyEstimates(project, &plan, settings, holidays)
	plannedDays := planned.DailyHours(project.ID, clipped.Start, clipped.End, events)

	tracer.Step("plan_built").
		WithInt("segments", len(plan.Segments)).
		WithInt("planned_days", len(plannedDays)).
		Log()

	estimates := make([]api.DayEstimate, 0, clipped.Days())
	bySource := make(map[api.EstimateSource]int)
	for day := clipped.Start; !day.After(clipped.End); day = day.AddDate(0, 0, 1) {
		est := resolveDay(project, day, plannedDays, segmentDays, settings, holidays)
		bySource[est.Source]++
		estimates = append(estimates, est)
	}

	for source, count := range bySource {
		metrics.AddDayEstimatesTotalMetric(string(source), count)
	}
	metrics.IncreaseEstimateRunsTotalMetric()
	metrics.ObserveEstimateDurationMetric(time.Since(began).Seconds())

	if cacheable {
		s.cache.Set(key, estimates)
	}

	tracer.Success().WithInt("days", len(estimates)).Log()
	return estimates, nil
}

// ProjectWeekEstimates groups the day estimates of the window into calendar
// weeks starting Monday. Week totals agree with the day values because they
// are sums over the identical day stream.
func (s *EstimateService) ProjectWeekEstimates(
	project api.Project,
	milestones []api.Milestone,
	events []api.CalendarEvent,
	settings api.Settings,
	holidays []api.Holiday,
	window api.DateRange,
) ([]api.WeekEstimate, error) {
	days, err := s.ProjectDayEstimates(project, milestones, events, settings, holidays, window)
	if err != nil {
		return nil, err
	}

	weeks := make([]api.WeekEstimate, 0)
	for _, day := range days {
		start := weekStart(day.Date)
		if len(weeks) == 0 || !weeks[len(weeks)-1].WeekStart.Equal(start) {
			weeks = append(weeks, api.WeekEstimate{WeekStart: start, ProjectID: project.ID})
		}
		week := &weeks[len(weeks)-1]
		week.TotalHours += day.Hours
		week.Days = append(week.Days, day)
	}
	return weeks, nil
}

// ProjectBudgetSummary compares milestone allocations (recurring templates
// expanded, units normalized) against the project budget. Over-allocation is
// reported, never rejected.
func (s *EstimateService) ProjectBudgetSummary(project api.Project, milestones []api.Milestone) (api.BudgetSummary, error) {
	tracer := log.NewDebugLogger("estimate_service").
		Operation("project_budget_summary").
		WithUUID("project_id", project.ID).
		Build()

	if err := validateProject(project); err != nil {
		tracer.Error(err).Log()
		return api.BudgetSummary{}, err
	}

	plan, diags := segment.Build(project, milestones, s.cfg)
	reportDiagnostics(tracer, diags)

	var milestoneHours float64
	for _, seg := range plan.Segments {
		if !seg.IsAutoEstimate() {
			milestoneHours += seg.AllocatedHours
		}
	}

	summary := api.BudgetSummary{
		ProjectID:               project.ID,
		EstimatedHours:          project.EstimatedHours,
		MilestoneAllocatedHours: milestoneHours,
		AutoEstimateHours:       plan.Segments[len(plan.Segments)-1].AllocatedHours,
	}
	if over := milestoneHours - project.EstimatedHours; over > s.cfg.HoursTolerance {
		summary.OverAllocated = true
		summary.OverAllocationHours = over
	}

	tracer.Success().
		WithFloat("milestone_hours", summary.MilestoneAllocatedHours).
		WithFloat("auto_estimate_hours", summary.AutoEstimateHours).
		Log()
	return summary, nil
}

// resolveDay applies the priority order for a single day. Planned time wins
// unconditionally, on non-working days too: an event that was actually
// scheduled there outranks any estimate reasoning about the calendar.
func resolveDay(
	project api.Project,
	day time.Time,
	plannedDays map[time.Time]float64,
	segmentDays map[time.Time]api.DayEstimate,
	settings api.Settings,
	holidays []api.Holiday,
) api.DayEstimate {
	working := workcal.IsWorkingDay(day, settings, holidays)

	if hours := plannedDays[day]; hours > 0 {
		return api.DayEstimate{
			Date:         day,
			ProjectID:    project.ID,
			Hours:        hours,
			Source:       api.EstimateSourcePlannedEvent,
			IsWorkingDay: working,
		}
	}
	if working {
		if est, ok := segmentDays[day]; ok {
			return est
		}
	}
	return api.DayEstimate{
		Date:         day,
		ProjectID:    project.ID,
		Source:       api.EstimateSourceNone,
		IsWorkingDay: working,
	}
}

// clipWindow intersects the requested window with the project's active
// lifespan: bounded projects clip to [StartDate, EndDate], continuous ones
// keep the window's own end.
func clipWindow(project api.Project, window api.DateRange) (api.DateRange, bool) {
	clipped := api.NewDateRange(window.Start, window.End)
	start := api.DateOf(project.StartDate)
	if clipped.Start.Before(start) {
		clipped.Start = start
	}
	if !project.Continuous {
		if end := api.DateOf(project.EndDate); clipped.End.After(end) {
			clipped.End = end
		}
	}
	return clipped, clipped.IsValid()
}

func validateProject(project api.Project) error {
	if project.StartDate.IsZero() {
		return NewErrProjectStartMissing(project.ID)
	}
	if !project.Continuous && project.EndDate.IsZero() {
		return NewErrProjectEndMissing(project.ID)
	}
	return nil
}

func reportDiagnostics(tracer *log.OperationTracer, diags []segment.Diagnostic) {
	for _, d := range diags {
		metrics.IncreaseSegmentDiagnosticsTotalMetric(string(d.Code))
		tracer.Warn("segmentation_diagnostic").
			WithString("code", string(d.Code)).
			WithUUID("milestone_id", d.MilestoneID).
			WithString("detail", d.Detail).
			Log()
	}
}

// weekStart normalizes a day to the Monday that starts its week.
func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) - int(time.Monday) + 7) % 7
	return day.AddDate(0, 0, -offset)
}
