package service

import (
	"fmt"

	"github.com/google/uuid"

	api "github.com/daygrid/timeline-planner/api/v1alpha1"
)

type ErrInvalidProject struct {
	error
}

func NewErrInvalidProject(id uuid.UUID, reason string) *ErrInvalidProject {
	return &ErrInvalidProject{fmt.Errorf("project %s is invalid: %s", id, reason)}
}

func NewErrProjectStartMissing(id uuid.UUID) *ErrInvalidProject {
	return NewErrInvalidProject(id, "start date is missing")
}

func NewErrProjectEndMissing(id uuid.UUID) *ErrInvalidProject {
	return NewErrInvalidProject(id, "end date is missing on a non-continuous project")
}

type ErrInvalidWindow struct {
	error
}

func NewErrInvalidWindow(window api.DateRange) *ErrInvalidWindow {
	return &ErrInvalidWindow{fmt.Errorf("requested window ends %s before it starts %s",
		window.End.Format("2006-01-02"), window.Start.Format("2006-01-02"))}
}
