package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// HasOverlap reports whether a pending or approved request of the employee
	// touches [start, end], ignoring excludeID.
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error)

	// ListForEmployee returns requests touching [start, end] with one of the
	// given statuses, ordered by start date.
	ListForEmployee(ctx context.Context, employeeID string, start, end time.Time, statuses ...Status) ([]Request, error)

	// Review moves a pending request to status, or fails with
	// ErrLeaveRequestAlreadyProcessed.
	Review(ctx context.Context, id string, status Status, managerID string, notes *string, reviewedAt time.Time) (Request, error)
}
