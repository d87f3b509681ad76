package attendance

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/config"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	overtimesvc "github.com/cmlabs-hris/workforce-backend-go/internal/service/overtime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKES =====

type fakeTx struct{}

func (fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTx) WithSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployees map[string]employee.Employee

func (f fakeEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f fakeEmployees) GetActiveByCompanyID(context.Context, string) ([]employee.Employee, error) {
	return nil, nil
}

type fakeSchedules map[string]schedule.Schedule

func (f fakeSchedules) GetForEmployeeOnDate(_ context.Context, employeeID string, date time.Time) (*schedule.Schedule, error) {
	s, ok := f[employeeID+"/"+date.Format(time.DateOnly)]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f fakeSchedules) ListForEmployee(context.Context, string, time.Time, time.Time) ([]schedule.Schedule, error) {
	return nil, nil
}

type fakeRequests struct {
	approved []overtime.Request
}

func (f *fakeRequests) Create(_ context.Context, r overtime.Request) (overtime.Request, error) {
	return r, nil
}

func (f *fakeRequests) GetByID(context.Context, string) (overtime.Request, error) {
	return overtime.Request{}, overtime.ErrRequestNotFound
}

func (f *fakeRequests) ListApprovedForDate(_ context.Context, employeeID string, date time.Time) ([]overtime.Request, error) {
	var out []overtime.Request
	for _, r := range f.approved {
		if r.EmployeeID == employeeID && r.RequestDate.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequests) List(context.Context, overtime.ListFilter) ([]overtime.Request, error) {
	return nil, nil
}

func (f *fakeRequests) Review(context.Context, string, overtime.Status, string, *string, time.Time) (overtime.Request, error) {
	return overtime.Request{}, nil
}

type fakeAttendance struct {
	mu      sync.Mutex
	records map[string]attendance.Attendance
	seq     int
}

func newFakeAttendance() *fakeAttendance {
	return &fakeAttendance{records: map[string]attendance.Attendance{}}
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "/" + date.Format(time.DateOnly)
}

func (f *fakeAttendance) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := recordKey(a.EmployeeID, a.Date)
	if _, ok := f.records[key]; ok {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	f.seq++
	a.ID = fmt.Sprintf("att-%d", f.seq)
	f.records[key] = a
	return a, nil
}

func (f *fakeAttendance) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.records[recordKey(employeeID, date)]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (f *fakeAttendance) CompleteCheckout(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := recordKey(a.EmployeeID, a.Date)
	stored, ok := f.records[key]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	if stored.CheckOut != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}
	f.records[key] = a
	return a, nil
}

func (f *fakeAttendance) ListForEmployee(_ context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if a, ok := f.records[recordKey(employeeID, d)]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// ===== HELPERS =====

var day = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	svc       attendance.AttendanceService
	records   *fakeAttendance
	schedules fakeSchedules
	requests  *fakeRequests
}

func newFixture(policy config.NoSchedulePolicy) *fixture {
	emps := fakeEmployees{
		"emp-1": {
			ID:                  "emp-1",
			CompanyID:           "company-1",
			WeeklyHours:         dec("40"),
			DailyMaxHours:       dec("8"),
			DefaultBreakMinutes: 60,
		},
	}
	f := &fixture{
		records:   newFakeAttendance(),
		schedules: fakeSchedules{},
		requests:  &fakeRequests{},
	}
	resolver := overtimesvc.NewResolver(emps, f.schedules, f.requests, policy)
	calculator := overtimesvc.NewCalculator(config.MatchByBudget, schedule.TimeOfDay(22*60))
	f.svc = NewAttendanceService(
		fakeTx{},
		f.records,
		emps,
		f.schedules,
		resolver,
		calculator,
		config.AttendanceConfig{GraceMinutes: 5, DefaultBreakMinutes: 45},
		time.UTC,
	)
	return f
}

func (f *fixture) approve(from, to schedule.TimeOfDay, hours string) {
	f.requests.approved = append(f.requests.approved, overtime.Request{
		ID:           fmt.Sprintf("req-%d", len(f.requests.approved)+1),
		EmployeeID:   "emp-1",
		RequestDate:  day,
		FromTime:     from,
		ToTime:       to,
		RequestHours: dec(hours),
		Status:       overtime.StatusApproved,
	})
}

func (f *fixture) checkIn(t *testing.T, clock string) attendance.Attendance {
	t.Helper()
	a, err := f.svc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID:  "emp-1",
		CompanyID:   "company-1",
		Date:        "2024-03-05",
		CheckInTime: clock,
	})
	require.NoError(t, err)
	return a
}

func (f *fixture) checkOut(clock string, breakMinutes *int) (attendance.Attendance, error) {
	return f.svc.RecordCheckout(context.Background(), attendance.CheckOutRequest{
		EmployeeID:   "emp-1",
		CompanyID:    "company-1",
		Date:         "2024-03-05",
		CheckOutTime: clock,
		BreakMinutes: breakMinutes,
	})
}

func intPtr(v int) *int {
	return &v
}

// ===== TESTS =====

func TestRecordCheckout_BudgetedOvertime(t *testing.T) {
	f := newFixture(config.NoScheduleDailyMax)
	f.approve(18*60, 19*60, "1")

	f.checkIn(t, "09:00")
	got, err := f.checkOut("19:00", intPtr(60))
	require.NoError(t, err)

	assert.True(t, dec("9").Equal(got.WorkedHours))
	assert.True(t, dec("1").Equal(got.OvertimeHours))
	assert.True(t, dec("1").Equal(got.ApprovedOvertimeHours))
	assert.True(t, got.NightHours.IsZero())
	require.NotNil(t, got.CheckOut)
	assert.True(t, got.IsComplete())
}

func TestRecordCheckout_CapsAtBudget(t *testing.T) {
	f := newFixture(config.NoScheduleDailyMax)
	f.approve(18*60, 19*60+30, "1.5")

	f.checkIn(t, "09:00")
	got, err := f.checkOut("20:45", intPtr(60))
	require.NoError(t, err)

	assert.True(t, dec("10.75").Equal(got.WorkedHours))
	assert.True(t, dec("1.5").Equal(got.OvertimeHours))
}

func TestRecordCheckout_ScheduledShift(t *testing.T) {
	f := newFixture(config.NoScheduleDailyMax)
	f.schedules["emp-1/2024-03-05"] = schedule.Schedule{
		ID:           "sched-1",
		EmployeeID:   "emp-1",
		Date:         day,
		StartTime:    9 * 60,
		EndTime:      18 * 60,
		BreakMinutes: 60,
		Status:       schedule.StatusScheduled,
	}

	in := f.checkIn(t, "09:10")
	assert.Equal(t, attendance.StatusLate, in.InStatus)
	require.NotNil(t, in.ScheduleID)

	got, err := f.checkOut("17:30", nil)
	require.NoError(t, err)
	assert.Equal(t, 60, got.BreakMinutes)
	assert.True(t, dec("7.33").Equal(got.WorkedHours))
	assert.True(t, got.OvertimeHours.IsZero())
	require.NotNil(t, got.OutStatus)
	assert.Equal(t, attendance.StatusEarly, *got.OutStatus)
}

func TestCheckIn_WithinGraceIsOnTime(t *testing.T) {
	f := newFixture(config.NoScheduleDailyMax)
	f.schedules["emp-1/2024-03-05"] = schedule.Schedule{
		ID: "sched-1", EmployeeID: "emp-1", Date: day, StartTime: 9 * 60, EndTime: 18 * 60, Status: schedule.StatusScheduled,
	}

	in := f.checkIn(t, "09:05")
	assert.Equal(t, attendance.StatusOnTime, in.InStatus)
}

func TestRecordCheckout_Overnight(t *testing.T) {
	f := newFixture(config.NoScheduleDailyMax)

	f.checkIn(t, "22:00")
	got, err := f.checkOut("02:00", intPtr(0))
	require.NoError(t, err)

	assert.True(t, dec("4").Equal(got.WorkedHours))
	assert.True(t, dec("2").Equal(got.NightHours))
	assert.Equal(t, time.Date(2024, 3, 6, 2, 0, 0, 0, time.UTC), *got.CheckOut)
}

func TestRecordCheckout_ValidationFailures(t *testing.T) {
	var verrs validator.ValidationErrors

	t.Run("no check-in", func(t *testing.T) {
		f := newFixture(config.NoScheduleDailyMax)
		_, err := f.checkOut("18:00", nil)
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.ToMap(), "check_in")
	})

	t.Run("zero span", func(t *testing.T) {
		f := newFixture(config.NoScheduleDailyMax)
		f.checkIn(t, "09:00")
		_, err := f.checkOut("09:00", nil)
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.ToMap(), "check_out_time")
	})

	t.Run("timestamp before check-in", func(t *testing.T) {
		f := newFixture(config.NoScheduleDailyMax)
		f.checkIn(t, "09:00")
		_, err := f.checkOut("2024-03-05T08:00:00Z", nil)
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.ToMap(), "check_out_time")
	})

	t.Run("break longer than span", func(t *testing.T) {
		f := newFixture(config.NoScheduleDailyMax)
		f.checkIn(t, "09:00")
		_, err := f.checkOut("09:30", intPtr(45))
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.ToMap(), "break_minutes")
	})

	t.Run("negative break", func(t *testing.T) {
		f := newFixture(config.NoScheduleDailyMax)
		f.checkIn(t, "09:00")
		_, err := f.checkOut("17:00", intPtr(-5))
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.ToMap(), "break_minutes")
	})
}

func TestRecordCheckout_ShortDaySkipsDefaultBreak(t *testing.T) {
	f := newFixture(config.NoScheduleDailyMax)
	f.checkIn(t, "09:00")

	got, err := f.checkOut("09:30", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, got.BreakMinutes)
	assert.True(t, dec("0.5").Equal(got.WorkedHours))
}

func TestRecordCheckout_Twice(t *testing.T) {
	f := newFixture(config.NoScheduleDailyMax)
	f.checkIn(t, "09:00")

	_, err := f.checkOut("18:00", nil)
	require.NoError(t, err)

	_, err = f.checkOut("19:00", nil)
	assert.True(t, errors.Is(err, attendance.ErrAlreadyCheckedOut))
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestRecordCheckout_ConcurrentOnlyOneWins(t *testing.T) {
	f := newFixture(config.NoScheduleDailyMax)
	f.checkIn(t, "09:00")

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.checkOut("18:00", nil)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, attendance.ErrAlreadyCheckedOut))
	}
	assert.Equal(t, 1, succeeded)
}

func TestCheckIn_Twice(t *testing.T) {
	f := newFixture(config.NoScheduleDailyMax)
	f.checkIn(t, "09:00")

	_, err := f.svc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID:  "emp-1",
		CompanyID:   "company-1",
		Date:        "2024-03-05",
		CheckInTime: "09:30",
	})
	assert.True(t, errors.Is(err, attendance.ErrAlreadyCheckedIn))
}

func TestCheckIn_OtherCompany(t *testing.T) {
	f := newFixture(config.NoScheduleDailyMax)

	_, err := f.svc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID:  "emp-1",
		CompanyID:   "company-2",
		Date:        "2024-03-05",
		CheckInTime: "09:00",
	})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestList(t *testing.T) {
	f := newFixture(config.NoScheduleDailyMax)
	f.checkIn(t, "09:00")

	got, err := f.svc.List(context.Background(), attendance.ListRequest{
		CompanyID:  "company-1",
		EmployeeID: "emp-1",
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-31",
	})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
