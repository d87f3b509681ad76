package overtime

import (
	"context"
	"time"
)

// Resolver finds the scheduled window and approved overtime for a date.
type Resolver interface {
	Resolve(ctx context.Context, employeeID string, date time.Time) (ResolvedWindows, error)
}

// Calculator turns one check-out event into worked, overtime and night hours.
type Calculator interface {
	Calculate(in CalculationInput) Calculation
}

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (Request, error)
	Approve(ctx context.Context, req ReviewRequest) (Request, error)
	Reject(ctx context.Context, req ReviewRequest) (Request, error)
	List(ctx context.Context, filter ListFilter) ([]Request, error)
	ResolveWindows(ctx context.Context, req ResolveRequest) (ResolvedWindows, error)
}
