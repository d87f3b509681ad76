package leave

import "github.com/cmlabs-hris/workforce-backend-go/internal/pkg/apperror"

var (
	ErrLeaveRequestNotFound         = apperror.New(apperror.KindNotFound, "leave request not found")
	ErrLeaveRequestAlreadyProcessed = apperror.New(apperror.KindConflict, "leave request already processed")
	ErrOverlappingLeave             = apperror.New(apperror.KindConflict, "leave overlaps an approved or pending request")
	ErrInsufficientBalance          = apperror.New(apperror.KindConflict, "insufficient paid leave balance")
)
