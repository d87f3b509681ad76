package summary

import (
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/compoff"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

type DayKind string

const (
	DayWorking DayKind = "working"
	DayWeekend DayKind = "weekend"
	DayHoliday DayKind = "holiday"
)

// DayLine is one calendar date of the period.
type DayLine struct {
	Date          time.Time
	Kind          DayKind
	HolidayName   string
	Scheduled     bool
	ShiftName     string
	CheckIn       *time.Time
	CheckOut      *time.Time
	BreakMinutes  int
	WorkedHours   decimal.Decimal
	OvertimeHours decimal.Decimal
	NightHours    decimal.Decimal
	InStatus      *attendance.PunctualityStatus
	LeaveType     *leave.Type
	LeaveDays     decimal.Decimal
}

// Summary is rebuilt from stored facts on every request and never persisted.
type Summary struct {
	EmployeeID           string
	EmployeeCode         string
	EmployeeName         string
	Department           string
	PeriodStart          time.Time
	PeriodEnd            time.Time
	TotalDays            int
	WorkingDays          int
	WeekendDays          int
	HolidayDays          int
	ScheduledDays        int
	DaysPresent          int
	NonWorkingDaysWorked int
	WorkedHours          decimal.Decimal
	OvertimeHours        decimal.Decimal
	NightHours           decimal.Decimal
	PaidLeaveDays        decimal.Decimal
	UnpaidLeaveDays      decimal.Decimal
	CompOffEarned        decimal.Decimal
	CompOffUsed          decimal.Decimal
	CompOffExpired       decimal.Decimal
	CompOffBalance       decimal.Decimal
	AttendanceCount      int
	OnTimeCount          int
	LateCount            int
	// OnTimePercentage is nil when the period has no attendance.
	OnTimePercentage *decimal.Decimal
	Days             []DayLine
}

// Facts is everything the aggregator reads for one employee and period.
type Facts struct {
	Employee       employee.Employee
	Start          time.Time
	End            time.Time
	Schedules      []schedule.Schedule
	Attendance     []attendance.Attendance
	Leave          []leave.Request
	CompOffEntries []compoff.Entry
	CompOffBalance compoff.Balance
}

// CompanySummary is the per-employee summaries of one company for one month.
type CompanySummary struct {
	CompanyID   string
	Month       int
	Year        int
	PeriodStart time.Time
	PeriodEnd   time.Time
	TotalDays   int
	WorkingDays int
	WeekendDays int
	HolidayDays int
	Holidays    []Holiday
	Employees   []Summary
	Totals      Totals
	Departments []DepartmentTotals
}

type Holiday struct {
	Date time.Time
	Name string
}

type Totals struct {
	Employees        int
	EmployeesPresent int
	WorkedHours      decimal.Decimal
	OvertimeHours    decimal.Decimal
	NightHours       decimal.Decimal
	PaidLeaveDays    decimal.Decimal
	UnpaidLeaveDays  decimal.Decimal
}

type DepartmentTotals struct {
	Department string
	Totals
}
