package employee

import "github.com/cmlabs-hris/workforce-backend-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound = apperror.New(apperror.KindNotFound, "employee not found")
	ErrInvalidHourCaps  = apperror.New(apperror.KindConfiguration, "employee hour caps are missing or malformed")
)
