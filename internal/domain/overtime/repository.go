package overtime

import (
	"context"
	"time"
)

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// ListApprovedForDate returns every approved request for the employee and
	// date, ordered by from_time then id.
	ListApprovedForDate(ctx context.Context, employeeID string, date time.Time) ([]Request, error)

	List(ctx context.Context, filter ListFilter) ([]Request, error)

	// Review moves a pending request to status. It returns
	// ErrRequestAlreadyProcessed when the request is no longer pending.
	Review(ctx context.Context, id string, status Status, managerID string, notes *string, reviewedAt time.Time) (Request, error)
}
