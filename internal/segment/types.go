package segment

import (
	"time"

	"github.com/google/uuid"
)

// Segment is one contiguous run of calendar days whose hours come from a
// single budget bucket: the span ending at a milestone's due date, or the
// trailing remainder distributed as auto-estimate.
type Segment struct {
	// StartDate and EndDate bound the segment inclusively. An EndDate before
	// StartDate marks a zero-length segment: it keeps its allocation for
	// budget accounting but emits no days.
	StartDate time.Time
	EndDate   time.Time
	// AllocatedHours is the slice of the project budget spread over this
	// segment's working days.
	AllocatedHours float64
	// MilestoneID is nil exactly for the trailing auto-estimate segment.
	// Recurring occurrences carry their template's ID.
	MilestoneID *uuid.UUID
	// WorkingDayCount and HoursPerWorkingDay are filled by the allocator
	// pass; the segmenter leaves them zero.
	WorkingDayCount    int
	HoursPerWorkingDay float64
}

func (s Segment) IsZeroLength() bool {
	return s.EndDate.Before(s.StartDate)
}

func (s Segment) IsAutoEstimate() bool {
	return s.MilestoneID == nil
}

// Plan is the segment tiling of one project: ordered, non-overlapping
// segments covering [Start, EffectiveEnd] exactly, the last one always the
// auto-estimate remainder.
type Plan struct {
	ProjectID    uuid.UUID
	Start        time.Time
	EffectiveEnd time.Time
	Segments     []Segment
}

// AllocatedHours sums the allocations of all segments.
func (p Plan) AllocatedHours() float64 {
	var total float64
	for _, s := range p.Segments {
		total += s.AllocatedHours
	}
	return total
}

// DiagnosticCode identifies a class of non-fatal input problem found while
// building a plan.
type DiagnosticCode string

const (
	// DiagnosticInvalidRecurringConfig marks a recurring milestone whose
	// config could not be expanded; the milestone yields zero occurrences.
	DiagnosticInvalidRecurringConfig DiagnosticCode = "invalid_recurring_config"
	// DiagnosticNegativeAllocation marks a milestone allocation below zero,
	// clamped to zero.
	DiagnosticNegativeAllocation DiagnosticCode = "negative_allocation_clamped"
	// DiagnosticOccurrenceCap marks a recurring series cut short by the
	// occurrence cap.
	DiagnosticOccurrenceCap DiagnosticCode = "occurrence_cap_reached"
	// DiagnosticMilestoneOutOfBounds marks a due date outside the project
	// lifespan; the segment is clamped, the allocation kept.
	DiagnosticMilestoneOutOfBounds DiagnosticCode = "milestone_outside_project"
	// DiagnosticBudgetOverAllocated marks milestone allocations exceeding the
	// project budget; the trailing segment is clamped to zero.
	DiagnosticBudgetOverAllocated DiagnosticCode = "budget_over_allocated"
)

// Diagnostic reports one input problem. Diagnostics are returned to the
// caller for logging and counting; a corrupt milestone never breaks the
// whole timeline.
type Diagnostic struct {
	Code        DiagnosticCode
	MilestoneID uuid.UUID
	Detail      string
}
