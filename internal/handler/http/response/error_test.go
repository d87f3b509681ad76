package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        validator.Single("date", "date must be YYYY-MM-DD"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "VALIDATION_ERROR",
			wantMsg:    "Validation failed",
		},
		{
			name:       "missing token",
			err:        jwt.ErrInvalidToken,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
			wantMsg:    jwt.ErrInvalidToken.Error(),
		},
		{
			name:       "not a manager",
			err:        jwt.ErrManagerAccessRequired,
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
			wantMsg:    jwt.ErrManagerAccessRequired.Error(),
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("failed to resolve windows: %w", employee.ErrEmployeeNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "employee not found",
		},
		{
			name:       "conflict",
			err:        fmt.Errorf("failed to check out: %w", attendance.ErrAlreadyCheckedOut),
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
			wantMsg:    "already checked out for this date",
		},
		{
			name:       "configuration hides cause",
			err:        apperror.Configuration("invalid overtime matching mode", errors.New("mode \"x\"")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "CONFIGURATION_ERROR",
			wantMsg:    "invalid overtime matching mode",
		},
		{
			name:       "unknown",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantMsg:    "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantMsg, body.Error.Message)
		})
	}
}

func TestFile(t *testing.T) {
	rec := httptest.NewRecorder()
	File(rec, "attendance_report_2024_05_en.xlsx", "application/octet-stream", []byte("PK"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="attendance_report_2024_05_en.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", rec.Header().Get("Content-Length"))
	assert.Equal(t, "PK", rec.Body.String())
}
