package segment

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	api "github.com/daygrid/timeline-planner/api/v1alpha1"
	"github.com/daygrid/timeline-planner/internal/config"
	"github.com/daygrid/timeline-planner/internal/recurrence"
)

// instance is one concrete milestone occurrence after recurring expansion
// and allocation-unit normalization.
type instance struct {
	milestoneID uuid.UUID
	dueDate     time.Time
	hours       float64
}

// EffectiveEnd returns the last day segmentation covers: the project's end
// date for bounded projects, the start date plus the generation horizon for
// continuous ones. The horizon is anchored to the project start, never to
// the wall clock or the query range, so every query derives the same tiling.
func EffectiveEnd(project api.Project, horizonDays int) time.Time {
	if project.Continuous {
		return api.DateOf(project.StartDate).AddDate(0, 0, horizonDays)
	}
	return api.DateOf(project.EndDate)
}

// Build tiles the project lifespan [project.StartDate, effectiveEnd] with
// milestone-bounded segments and one trailing auto-estimate segment that
// absorbs whatever budget the milestones left, clamped to zero. Milestones
// of other projects are ignored. Input problems are reported as Diagnostics
// and never abort the build.
func Build(project api.Project, milestones []api.Milestone, cfg *config.Config) (Plan, []Diagnostic) {
	start := api.DateOf(project.StartDate)
	end := EffectiveEnd(project, cfg.Recurrence.HorizonDays)

	instances, diags := expand(project, milestones, end, cfg.Recurrence.OccurrenceCap)

	// Stable: equal due dates keep input order and produce zero-length or
	// single-day segments between them, not errors.
	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].dueDate.Before(instances[j].dueDate)
	})

	plan := Plan{ProjectID: project.ID, Start: start, EffectiveEnd: end}
	cursor := start
	var allocated float64
	for _, inst := range instances {
		due := inst.dueDate
		if due.Before(start) || due.After(end) {
			diags = append(diags, Diagnostic{
				Code:        DiagnosticMilestoneOutOfBounds,
				MilestoneID: inst.milestoneID,
				Detail:      fmt.Sprintf("due date %s outside [%s, %s]", due.Format(time.DateOnly), start.Format(time.DateOnly), end.Format(time.DateOnly)),
			})
			if due.After(end) {
				due = end
			}
		}
		milestoneID := inst.milestoneID
		plan.Segments = append(plan.Segments, Segment{
			StartDate:      cursor,
			EndDate:        due,
			AllocatedHours: inst.hours,
			MilestoneID:    &milestoneID,
		})
		allocated += inst.hours
		if next := due.AddDate(0, 0, 1); next.After(cursor) {
			cursor = next
		}
	}

	remainder := project.EstimatedHours - allocated
	if remainder < 0 {
		diags = append(diags, Diagnostic{
			Code:   DiagnosticBudgetOverAllocated,
			Detail: fmt.Sprintf("milestone allocations exceed the project budget by %.2fh", -remainder),
		})
	}
	// The trailing segment is emitted even when zero-length so the plan
	// always carries the auto-estimate remainder.
	plan.Segments = append(plan.Segments, Segment{
		StartDate:      cursor,
		EndDate:        end,
		AllocatedHours: math.Max(0, remainder),
	})
	return plan, diags
}

// expand turns the project's milestones into concrete instances: recurring
// templates become one instance per occurrence, each inheriting the
// template's hours and ID; plain milestones become a single instance.
func expand(project api.Project, milestones []api.Milestone, end time.Time, occurrenceCap int) ([]instance, []Diagnostic) {
	var instances []instance
	var diags []Diagnostic

	for _, m := range milestones {
		if m.ProjectID != project.ID {
			continue
		}

		hours := m.TimeAllocation
		if m.AllocationUnit == api.AllocationUnitPercent {
			hours = m.TimeAllocation / 100 * project.EstimatedHours
		}
		if hours < 0 {
			diags = append(diags, Diagnostic{
				Code:        DiagnosticNegativeAllocation,
				MilestoneID: m.ID,
				Detail:      fmt.Sprintf("allocation %.2fh clamped to zero", hours),
			})
			hours = 0
		}

		if !m.IsRecurring {
			instances = append(instances, instance{
				milestoneID: m.ID,
				dueDate:     api.DateOf(m.DueDate),
				hours:       hours,
			})
			continue
		}

		searchStart := api.DateOf(project.StartDate)
		if m.StartDate != nil && api.DateOf(*m.StartDate).After(searchStart) {
			searchStart = api.DateOf(*m.StartDate)
		}
		dates, capped, err := recurrence.Occurrences(m.RecurringConfig, searchStart, end, occurrenceCap)
		if err != nil {
			diags = append(diags, Diagnostic{
				Code:        DiagnosticInvalidRecurringConfig,
				MilestoneID: m.ID,
				Detail:      err.Error(),
			})
			continue
		}
		if capped {
			diags = append(diags, Diagnostic{
				Code:        DiagnosticOccurrenceCap,
				MilestoneID: m.ID,
				Detail:      fmt.Sprintf("series cut short at %d occurrences", len(dates)),
			})
		}
		for _, due := range dates {
			instances = append(instances, instance{
				milestoneID: m.ID,
				dueDate:     due,
				hours:       hours,
			})
		}
	}
	return instances, diags
}
