package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, err.Error())
		return
	case errors.Is(err, jwt.ErrManagerAccessRequired):
		Forbidden(w, err.Error())
		return
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
		return
	}

	switch appErr.Kind() {
	case apperror.KindNotFound:
		NotFound(w, appErr.Error())
	case apperror.KindConflict:
		Conflict(w, appErr.Error())
	case apperror.KindConfiguration:
		slog.Error("Configuration error", "error", err)
		ConfigurationError(w, appErr.Error())
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
