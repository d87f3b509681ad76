package overtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/config"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEmployees() fakeEmployees {
	return fakeEmployees{
		"emp-1": {
			ID:                  "emp-1",
			CompanyID:           "company-1",
			FullName:            "Sam Lee",
			WeeklyHours:         dec("40"),
			DailyMaxHours:       dec("8"),
			DefaultBreakMinutes: 60,
		},
		"emp-broken": {
			ID:            "emp-broken",
			CompanyID:     "company-1",
			DailyMaxHours: dec("0"),
		},
		"mgr-1": {
			ID:            "mgr-1",
			CompanyID:     "company-1",
			DailyMaxHours: dec("8"),
		},
	}
}

func TestResolve_UsesScheduleWhenPresent(t *testing.T) {
	schedules := fakeSchedules{
		scheduleKey("emp-1", workDay): {
			ID:           "sched-1",
			EmployeeID:   "emp-1",
			Date:         workDay,
			StartTime:    schedule.TimeOfDay(9 * 60),
			EndTime:      schedule.TimeOfDay(18 * 60),
			BreakMinutes: 60,
			Status:       schedule.StatusScheduled,
		},
	}
	requests := &fakeRequests{items: []overtime.Request{
		{ID: "r2", EmployeeID: "emp-1", RequestDate: workDay, FromTime: 19 * 60, ToTime: 20 * 60, RequestHours: dec("1"), Status: overtime.StatusApproved},
		{ID: "r1", EmployeeID: "emp-1", RequestDate: workDay, FromTime: 18 * 60, ToTime: 19 * 60, RequestHours: dec("0.5"), Status: overtime.StatusApproved},
		{ID: "r3", EmployeeID: "emp-1", RequestDate: workDay, FromTime: 20 * 60, ToTime: 21 * 60, RequestHours: dec("1"), Status: overtime.StatusPending},
	}}

	resolver := NewResolver(testEmployees(), schedules, requests, config.NoScheduleDailyMax)
	got, err := resolver.Resolve(context.Background(), "emp-1", workDay)
	require.NoError(t, err)

	assert.Equal(t, overtime.BaselineSchedule, got.Baseline)
	require.NotNil(t, got.Schedule)
	assert.Equal(t, "sched-1", got.Schedule.ID)
	assert.True(t, dec("8").Equal(got.BaseHours))
	assert.Len(t, got.Approved, 2)
	assert.True(t, dec("1.5").Equal(got.Budget()))
}

func TestResolve_NoSchedulePolicies(t *testing.T) {
	ctx := context.Background()

	resolver := NewResolver(testEmployees(), fakeSchedules{}, &fakeRequests{}, config.NoScheduleDailyMax)
	got, err := resolver.Resolve(ctx, "emp-1", workDay)
	require.NoError(t, err)
	assert.Nil(t, got.Schedule)
	assert.Equal(t, overtime.BaselineDailyMax, got.Baseline)
	assert.True(t, dec("8").Equal(got.BaseHours))
	assert.Empty(t, got.Approved)

	resolver = NewResolver(testEmployees(), fakeSchedules{}, &fakeRequests{}, config.NoScheduleNoOvertime)
	got, err = resolver.Resolve(ctx, "emp-1", workDay)
	require.NoError(t, err)
	assert.Equal(t, overtime.BaselineNoOvertime, got.Baseline)
}

func TestResolve_Errors(t *testing.T) {
	ctx := context.Background()
	resolver := NewResolver(testEmployees(), fakeSchedules{}, &fakeRequests{}, config.NoScheduleDailyMax)

	_, err := resolver.Resolve(ctx, "missing", workDay)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = resolver.Resolve(ctx, "emp-broken", workDay)
	assert.True(t, errors.Is(err, apperror.ErrConfiguration))
	assert.True(t, errors.Is(err, employee.ErrInvalidHourCaps))
}

func newTestService(requests *fakeRequests) *OvertimeServiceImpl {
	emps := testEmployees()
	resolver := NewResolver(emps, fakeSchedules{}, requests, config.NoScheduleDailyMax)
	svc := NewOvertimeService(fakeTx{}, requests, emps, resolver).(*OvertimeServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestOvertimeService_SubmitAndApprove(t *testing.T) {
	ctx := context.Background()
	requests := &fakeRequests{}
	svc := newTestService(requests)

	created, err := svc.Submit(ctx, overtime.SubmitRequest{
		EmployeeID:  "emp-1",
		CompanyID:   "company-1",
		RequestDate: "2024-03-05",
		FromTime:    "18:00",
		ToTime:      "19:30",
		Reason:      "release cutover",
	})
	require.NoError(t, err)
	assert.Equal(t, overtime.StatusPending, created.Status)
	assert.True(t, dec("1.5").Equal(created.RequestHours))

	approvedReq, err := svc.Approve(ctx, overtime.ReviewRequest{ID: created.ID, CompanyID: "company-1", ManagerID: "mgr-1"})
	require.NoError(t, err)
	assert.Equal(t, overtime.StatusApproved, approvedReq.Status)
	require.NotNil(t, approvedReq.ManagerID)
	assert.Equal(t, "mgr-1", *approvedReq.ManagerID)

	_, err = svc.Reject(ctx, overtime.ReviewRequest{ID: created.ID, CompanyID: "company-1", ManagerID: "mgr-1"})
	assert.True(t, errors.Is(err, overtime.ErrRequestAlreadyProcessed))
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	resolved, err := svc.ResolveWindows(ctx, overtime.ResolveRequest{CompanyID: "company-1", EmployeeID: "emp-1", Date: "2024-03-05"})
	require.NoError(t, err)
	assert.True(t, dec("1.5").Equal(resolved.Budget()))
}

func TestOvertimeService_Review_Guards(t *testing.T) {
	ctx := context.Background()
	requests := &fakeRequests{}
	svc := newTestService(requests)

	created, err := svc.Submit(ctx, overtime.SubmitRequest{
		EmployeeID:  "emp-1",
		CompanyID:   "company-1",
		RequestDate: "2024-03-05",
		FromTime:    "18:00",
		ToTime:      "19:00",
		Reason:      "month end close",
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, overtime.ReviewRequest{ID: created.ID, CompanyID: "company-2", ManagerID: "mgr-1"})
	assert.True(t, errors.Is(err, overtime.ErrRequestNotFound))

	_, err = svc.Approve(ctx, overtime.ReviewRequest{ID: created.ID, CompanyID: "company-1", ManagerID: "emp-1"})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestOvertimeService_Submit_Validation(t *testing.T) {
	svc := newTestService(&fakeRequests{})
	hours := dec("3")

	_, err := svc.Submit(context.Background(), overtime.SubmitRequest{
		EmployeeID:   "emp-1",
		CompanyID:    "company-1",
		RequestDate:  "2024-03-05",
		FromTime:     "18:00",
		ToTime:       "19:00",
		RequestHours: &hours,
		Reason:       "too long",
	})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "request_hours")

	_, err = svc.Submit(context.Background(), overtime.SubmitRequest{
		EmployeeID:  "emp-1",
		CompanyID:   "company-2",
		RequestDate: "2024-03-05",
		FromTime:    "18:00",
		ToTime:      "19:00",
		Reason:      "other company",
	})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
