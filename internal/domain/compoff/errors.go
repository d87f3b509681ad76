package compoff

import "github.com/cmlabs-hris/workforce-backend-go/internal/pkg/apperror"

var (
	ErrInsufficientBalance = apperror.New(apperror.KindConflict, "insufficient comp-off balance")
	ErrInvalidExpiryPolicy = apperror.New(apperror.KindConfiguration, "comp-off expiry months must be at least 1")
)
