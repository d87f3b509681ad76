package overtime

import "github.com/cmlabs-hris/workforce-backend-go/internal/pkg/apperror"

var (
	ErrRequestNotFound         = apperror.New(apperror.KindNotFound, "overtime request not found")
	ErrRequestAlreadyProcessed = apperror.New(apperror.KindConflict, "overtime request already processed")
)
