package schedule

import (
	"context"
	"time"
)

type ScheduleRepository interface {
	// GetForEmployeeOnDate returns the active schedule for the date, or nil when
	// the employee is unscheduled. Cancelled rows are ignored; when several rows
	// remain the earliest start wins, then the lowest id.
	GetForEmployeeOnDate(ctx context.Context, employeeID string, date time.Time) (*Schedule, error)

	// ListForEmployee returns active schedules in [start, end], ordered by date.
	ListForEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]Schedule, error)
}
