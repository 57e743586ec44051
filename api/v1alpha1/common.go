package v1alpha1

func StringToEstimateSource(s string) EstimateSource {
	switch s {
	case string(EstimateSourcePlannedEvent):
		return EstimateSourcePlannedEvent
	case string(EstimateSourceMilestoneAllocation):
		return EstimateSourceMilestoneAllocation
	case string(EstimateSourceAutoEstimate):
		return EstimateSourceAutoEstimate
	case string(EstimateSourceNone):
		return EstimateSourceNone
	default:
		return EstimateSourceNone
	}
}

func StringToRecurrenceType(s string) RecurrenceType {
	switch s {
	case string(RecurrenceDaily):
		return RecurrenceDaily
	case string(RecurrenceWeekly):
		return RecurrenceWeekly
	case string(RecurrenceMonthly):
		return RecurrenceMonthly
	default:
		return ""
	}
}

func StringToAllocationUnit(s string) AllocationUnit {
	switch s {
	case string(AllocationUnitPercent):
		return AllocationUnitPercent
	default:
		return AllocationUnitHours
	}
}
