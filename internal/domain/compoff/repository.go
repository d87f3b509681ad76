package compoff

import (
	"context"
	"time"
)

type LedgerRepository interface {
	Append(ctx context.Context, entry Entry) (Entry, error)

	// LockEmployee serialises ledger writers for one employee until the
	// surrounding transaction ends.
	LockEmployee(ctx context.Context, employeeID string) error

	// ListForEmployee returns entries dated on or before until, oldest first.
	ListForEmployee(ctx context.Context, employeeID string, until time.Time) ([]Entry, error)

	// ListEmployeeIDs returns every employee with at least one earned entry.
	ListEmployeeIDs(ctx context.Context) ([]string, error)
}
