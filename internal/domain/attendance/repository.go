package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create stores the partial record written at check-in. A second record for
	// the same employee and date fails with ErrAlreadyCheckedIn.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// CompleteCheckout writes the check-out fields only if the record has no
	// check-out yet. A lost race fails with ErrAlreadyCheckedOut.
	CompleteCheckout(ctx context.Context, attendance Attendance) (Attendance, error)

	// ListForEmployee returns records in [start, end] ordered by date.
	ListForEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
}
