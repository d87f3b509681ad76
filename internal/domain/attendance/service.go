package attendance

import "context"

type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (Attendance, error)

	// RecordCheckout completes the day's record with worked, overtime and
	// night hours computed from the stored check-in.
	RecordCheckout(ctx context.Context, req CheckOutRequest) (Attendance, error)

	Get(ctx context.Context, req GetRequest) (Attendance, error)
	List(ctx context.Context, req ListRequest) ([]Attendance, error)
}
