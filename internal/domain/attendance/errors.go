package attendance

import "github.com/cmlabs-hris/workforce-backend-go/internal/pkg/apperror"

// Attendance domain errors
var (
	ErrAttendanceNotFound = apperror.New(apperror.KindNotFound, "attendance record not found")
	ErrAlreadyCheckedIn   = apperror.New(apperror.KindConflict, "already checked in for this date")
	ErrAlreadyCheckedOut  = apperror.New(apperror.KindConflict, "already checked out for this date")
)
