package summary

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/compoff"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/summary"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type SummaryServiceImpl struct {
	db database.Transactor
	employee.EmployeeRepository
	schedule.ScheduleRepository
	attendance.AttendanceRepository
	leave.LeaveRequestRepository
	compoff.LedgerRepository
	calendar     calendar.Calendar
	expiryMonths int
}

func NewSummaryService(
	db database.Transactor,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.ScheduleRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	ledgerRepo compoff.LedgerRepository,
	cal calendar.Calendar,
	expiryMonths int,
) summary.SummaryService {
	return &SummaryServiceImpl{
		db:                     db,
		EmployeeRepository:     employeeRepo,
		ScheduleRepository:     scheduleRepo,
		AttendanceRepository:   attendanceRepo,
		LeaveRequestRepository: leaveRepo,
		LedgerRepository:       ledgerRepo,
		calendar:               cal,
		expiryMonths:           expiryMonths,
	}
}

// GetPeriodSummary implements summary.SummaryService. All reads share one
// snapshot, so a check-out committed mid-request is either fully in or out.
func (s *SummaryServiceImpl) GetPeriodSummary(ctx context.Context, req summary.PeriodRequest) (summary.Summary, error) {
	if err := req.Validate(); err != nil {
		return summary.Summary{}, err
	}
	start, end := req.Range()

	var result summary.Summary
	err := s.db.WithSnapshot(ctx, func(ctx context.Context) error {
		emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		if !emp.BelongsTo(req.CompanyID) {
			return employee.ErrEmployeeNotFound
		}

		facts, err := s.loadFacts(ctx, emp, start, end)
		if err != nil {
			return err
		}
		result = Aggregate(facts, s.calendar)
		return nil
	})
	if err != nil {
		return summary.Summary{}, err
	}
	return result, nil
}

// GetCompanyMonth implements summary.SummaryService.
func (s *SummaryServiceImpl) GetCompanyMonth(ctx context.Context, req summary.MonthRequest) (summary.CompanySummary, error) {
	if err := req.Validate(); err != nil {
		return summary.CompanySummary{}, err
	}
	start, end := req.Range()

	result := summary.CompanySummary{
		CompanyID:   req.CompanyID,
		Month:       req.Month,
		Year:        req.Year,
		PeriodStart: start,
		PeriodEnd:   end,
		Holidays:    []summary.Holiday{},
		Employees:   []summary.Summary{},
		Departments: []summary.DepartmentTotals{},
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		result.TotalDays++
		switch {
		case s.calendar.IsHoliday(d):
			result.HolidayDays++
			result.Holidays = append(result.Holidays, summary.Holiday{Date: d, Name: s.calendar.HolidayName(d)})
		case s.calendar.IsWeekend(d):
			result.WeekendDays++
		default:
			result.WorkingDays++
		}
	}

	err := s.db.WithSnapshot(ctx, func(ctx context.Context) error {
		employees, err := s.EmployeeRepository.GetActiveByCompanyID(ctx, req.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		slices.SortFunc(employees, func(a, b employee.Employee) int {
			if c := strings.Compare(a.EmployeeCode, b.EmployeeCode); c != 0 {
				return c
			}
			return strings.Compare(a.ID, b.ID)
		})

		for _, emp := range employees {
			facts, err := s.loadFacts(ctx, emp, start, end)
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}
			result.Employees = append(result.Employees, Aggregate(facts, s.calendar))
		}
		return nil
	})
	if err != nil {
		return summary.CompanySummary{}, err
	}

	result.Totals, result.Departments = rollUp(result.Employees)
	return result, nil
}

func (s *SummaryServiceImpl) loadFacts(ctx context.Context, emp employee.Employee, start, end time.Time) (summary.Facts, error) {
	schedules, err := s.ScheduleRepository.ListForEmployee(ctx, emp.ID, start, end)
	if err != nil {
		return summary.Facts{}, fmt.Errorf("failed to list schedules: %w", err)
	}
	records, err := s.AttendanceRepository.ListForEmployee(ctx, emp.ID, start, end)
	if err != nil {
		return summary.Facts{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	requests, err := s.LeaveRequestRepository.ListForEmployee(ctx, emp.ID, start, end, leave.StatusApproved)
	if err != nil {
		return summary.Facts{}, fmt.Errorf("failed to list leave: %w", err)
	}
	entries, err := s.LedgerRepository.ListForEmployee(ctx, emp.ID, end)
	if err != nil {
		return summary.Facts{}, fmt.Errorf("failed to list comp-off entries: %w", err)
	}
	balance, err := compoff.ComputeBalance(emp.ID, entries, end, s.expiryMonths)
	if err != nil {
		return summary.Facts{}, err
	}

	return summary.Facts{
		Employee:       emp,
		Start:          start,
		End:            end,
		Schedules:      schedules,
		Attendance:     records,
		Leave:          requests,
		CompOffEntries: entries,
		CompOffBalance: balance,
	}, nil
}

// rollUp totals the employee summaries for the company and per department.
// Departments are returned by name; employees without one are grouped under "".
func rollUp(employees []summary.Summary) (summary.Totals, []summary.DepartmentTotals) {
	total := newTotals()
	byDept := map[string]*summary.Totals{}
	var names []string

	for _, e := range employees {
		dept, ok := byDept[e.Department]
		if !ok {
			t := newTotals()
			dept = &t
			byDept[e.Department] = dept
			names = append(names, e.Department)
		}
		addTo(&total, e)
		addTo(dept, e)
	}

	slices.Sort(names)
	departments := make([]summary.DepartmentTotals, 0, len(names))
	for _, name := range names {
		departments = append(departments, summary.DepartmentTotals{Department: name, Totals: *byDept[name]})
	}
	return total, departments
}

func newTotals() summary.Totals {
	return summary.Totals{
		WorkedHours:     decimal.Zero,
		OvertimeHours:   decimal.Zero,
		NightHours:      decimal.Zero,
		PaidLeaveDays:   decimal.Zero,
		UnpaidLeaveDays: decimal.Zero,
	}
}

func addTo(t *summary.Totals, s summary.Summary) {
	t.Employees++
	if s.AttendanceCount > 0 {
		t.EmployeesPresent++
	}
	t.WorkedHours = t.WorkedHours.Add(s.WorkedHours)
	t.OvertimeHours = t.OvertimeHours.Add(s.OvertimeHours)
	t.NightHours = t.NightHours.Add(s.NightHours)
	t.PaidLeaveDays = t.PaidLeaveDays.Add(s.PaidLeaveDays)
	t.UnpaidLeaveDays = t.UnpaidLeaveDays.Add(s.UnpaidLeaveDays)
}
