package compoff

import (
	"context"
	"time"
)

type CompOffService interface {
	Grant(ctx context.Context, req GrantRequest) (Entry, error)
	Use(ctx context.Context, req UseRequest) (Entry, error)
	Balance(ctx context.Context, req BalanceRequest) (Balance, error)

	// ExpireDue writes expired entries for days that lapsed on or before asOf.
	// It returns the number of employees that received a new entry.
	ExpireDue(ctx context.Context, asOf time.Time) (int, error)
}
