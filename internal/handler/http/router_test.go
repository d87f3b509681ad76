package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/compoff"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/summary"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeAttendance struct {
	attendance.AttendanceService
	checkIn  attendance.CheckInRequest
	checkOut error
}

func (f *fakeAttendance) CheckIn(_ context.Context, req attendance.CheckInRequest) (attendance.Attendance, error) {
	f.checkIn = req
	in := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	return attendance.Attendance{
		ID:         "att-1",
		EmployeeID: req.EmployeeID,
		Date:       time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
		CheckIn:    &in,
		InStatus:   attendance.StatusOnTime,
	}, nil
}

func (f *fakeAttendance) RecordCheckout(context.Context, attendance.CheckOutRequest) (attendance.Attendance, error) {
	return attendance.Attendance{}, f.checkOut
}

type fakeOvertime struct {
	overtime.Service
	review overtime.ReviewRequest
}

func (f *fakeOvertime) Approve(_ context.Context, req overtime.ReviewRequest) (overtime.Request, error) {
	f.review = req
	return overtime.Request{ID: req.ID, Status: overtime.StatusApproved, RequestHours: decimal.NewFromInt(2)}, nil
}

type fakeSummary struct {
	summary.SummaryService
}

func (f *fakeSummary) GetPeriodSummary(_ context.Context, req summary.PeriodRequest) (summary.Summary, error) {
	if err := req.Validate(); err != nil {
		return summary.Summary{}, err
	}
	return summary.Summary{}, nil
}

type fakeReport struct {
	report.ReportService
	export report.ExportRequest
}

func (f *fakeReport) ExportMonthly(_ context.Context, req report.ExportRequest) (report.Export, error) {
	f.export = req
	return report.Export{
		Filename:    "attendance_report_2024_05_ja.xlsx",
		ContentType: report.XLSXContentType,
		Data:        []byte("PK\x03\x04"),
	}, nil
}

type testServer struct {
	jwt        jwt.Service
	router     http.Handler
	attendance *fakeAttendance
	overtime   *fakeOvertime
	report     *fakeReport
}

func newTestServer() *testServer {
	s := &testServer{
		jwt:        jwt.NewJWTService(testSecret),
		attendance: &fakeAttendance{},
		overtime:   &fakeOvertime{},
		report:     &fakeReport{},
	}
	s.router = NewRouter(RouterOptions{AllowedOrigins: []string{"*"}}, s.jwt, Handlers{
		Attendance: NewAttendanceHandler(s.attendance),
		Overtime:   NewOvertimeHandler(s.overtime),
		Leave:      NewLeaveHandler(struct{ leave.LeaveService }{}),
		CompOff:    NewCompOffHandler(struct{ compoff.CompOffService }{}),
		Summary:    NewSummaryHandler(&fakeSummary{}),
		Report:     NewReportHandler(s.report),
	})
	return s
}

func (s *testServer) token(t *testing.T, role jwt.Role, tokenType string) string {
	t.Helper()
	_, token, err := s.jwt.JWTAuth().Encode(map[string]interface{}{
		"user_id":     "user-1",
		"employee_id": "emp-1",
		"company_id":  "company-1",
		"role":        string(role),
		"type":        tokenType,
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRouter_Authentication(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodGet, "/api/v1/attendance/my", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/attendance/my", s.token(t, jwt.RoleEmployee, "refresh"), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/reports/monthly?month=5&year=2024", s.token(t, jwt.RoleEmployee, "access"), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeBody(t, rec).Error.Code)
}

func TestRouter_CheckInUsesTokenIdentity(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodPost, "/api/v1/attendance/check-in", s.token(t, jwt.RoleEmployee, "access"),
		`{"date":"2024-05-06","check_in_time":"09:00"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "emp-1", s.attendance.checkIn.EmployeeID)
	assert.Equal(t, "company-1", s.attendance.checkIn.CompanyID)
	assert.Equal(t, "09:00", s.attendance.checkIn.CheckInTime)

	data, ok := decodeBody(t, rec).Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "att-1", data["id"])
	assert.Equal(t, "on_time", data["in_status"])
}

func TestRouter_RejectsUnknownFields(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodPost, "/api/v1/attendance/check-in", s.token(t, jwt.RoleEmployee, "access"),
		`{"date":"2024-05-06","check_in_time":"09:00","employee_id":"emp-2"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, s.attendance.checkIn.EmployeeID)
}

func TestRouter_SecondCheckoutConflicts(t *testing.T) {
	s := newTestServer()
	s.attendance.checkOut = attendance.ErrAlreadyCheckedOut

	rec := s.do(http.MethodPost, "/api/v1/attendance/check-out", s.token(t, jwt.RoleEmployee, "access"),
		`{"date":"2024-05-06","check_out_time":"18:00"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already checked out for this date", decodeBody(t, rec).Error.Message)
}

func TestRouter_ApproveWithoutBody(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodPost, "/api/v1/overtime-requests/ot-1/approve", s.token(t, jwt.RoleManager, "access"), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ot-1", s.overtime.review.ID)
	assert.Equal(t, "emp-1", s.overtime.review.ManagerID)
	assert.Nil(t, s.overtime.review.Notes)
}

func TestRouter_SummaryRangeValidation(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodGet, "/api/v1/summary/my?start_date=2024-04-15&end_date=2024-05-15",
		s.token(t, jwt.RoleEmployee, "access"), "")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeBody(t, rec).Error.Details, "end_date")
}

func TestRouter_ReportQueryValidation(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodGet, "/api/v1/reports/monthly/export?month=may&year=2024",
		s.token(t, jwt.RoleOwner, "access"), "")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, validator.Single("month", "month must be a number").ToMap(), decodeBody(t, rec).Error.Details)
}

func TestRouter_ExportStreamsWorkbook(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly/export?month=5&year=2024", nil)
	req.Header.Set("Authorization", "Bearer "+s.token(t, jwt.RoleManager, "access"))
	req.Header.Set("Accept-Language", "ja-JP,ja;q=0.9")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.XLSXContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="attendance_report_2024_05_ja.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK\x03\x04", rec.Body.String())

	assert.Equal(t, "company-1", s.report.export.CompanyID)
	assert.Equal(t, 5, s.report.export.Month)
	assert.Equal(t, 2024, s.report.export.Year)
	assert.Equal(t, "ja-JP,ja;q=0.9", s.report.export.AcceptLanguage)
}
