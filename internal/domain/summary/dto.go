package summary

import (
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// MaxWeekDays is the longest range accepted when it crosses a month boundary.
const MaxWeekDays = 7

type PeriodRequest struct {
	CompanyID  string
	EmployeeID string
	StartDate  string
	EndDate    string
}

// Validate accepts a range that lies inside one calendar month, or one that
// spans at most seven days. Other ranges are rejected, never clamped.
func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
	}
	if okStart && okEnd {
		sameMonth := start.Year() == end.Year() && start.Month() == end.Month()
		switch {
		case end.Before(start):
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
		case !sameMonth && DaysInRange(start, end) > MaxWeekDays:
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "range must stay within one calendar month or span at most 7 days"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Range returns the parsed dates. Call Validate first.
func (r *PeriodRequest) Range() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

type MonthRequest struct {
	CompanyID string
	Month     int
	Year      int
}

func (r *MonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{Field: "company_id", Message: "company_id is required"})
	}
	if !validator.IsValidMonth(r.Month, r.Year) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be 1-12 and year must be valid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Range returns the first and last day of the month.
func (r *MonthRequest) Range() (time.Time, time.Time) {
	start := time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// DaysInRange counts calendar dates in [start, end], inclusive.
func DaysInRange(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

type DayLineResponse struct {
	Date          string                        `json:"date"`
	Kind          DayKind                       `json:"kind"`
	HolidayName   string                        `json:"holiday_name,omitempty"`
	Scheduled     bool                          `json:"scheduled"`
	ShiftName     string                        `json:"shift_name,omitempty"`
	CheckIn       *time.Time                    `json:"check_in,omitempty"`
	CheckOut      *time.Time                    `json:"check_out,omitempty"`
	BreakMinutes  int                           `json:"break_minutes"`
	WorkedHours   decimal.Decimal               `json:"worked_hours"`
	OvertimeHours decimal.Decimal               `json:"overtime_hours"`
	NightHours    decimal.Decimal               `json:"night_hours"`
	InStatus      *attendance.PunctualityStatus `json:"in_status,omitempty"`
	LeaveType     *leave.Type                   `json:"leave_type,omitempty"`
	LeaveDays     decimal.Decimal               `json:"leave_days"`
}

type SummaryResponse struct {
	EmployeeID           string            `json:"employee_id"`
	EmployeeCode         string            `json:"employee_code"`
	EmployeeName         string            `json:"employee_name"`
	Department           string            `json:"department,omitempty"`
	PeriodStart          string            `json:"period_start"`
	PeriodEnd            string            `json:"period_end"`
	TotalDays            int               `json:"total_days"`
	WorkingDays          int               `json:"working_days"`
	WeekendDays          int               `json:"weekend_days"`
	HolidayDays          int               `json:"holiday_days"`
	ScheduledDays        int               `json:"scheduled_days"`
	DaysPresent          int               `json:"days_present"`
	NonWorkingDaysWorked int               `json:"non_working_days_worked"`
	WorkedHours          decimal.Decimal   `json:"total_worked_hours"`
	OvertimeHours        decimal.Decimal   `json:"total_overtime_hours"`
	NightHours           decimal.Decimal   `json:"total_night_hours"`
	PaidLeaveDays        decimal.Decimal   `json:"paid_leave_days"`
	UnpaidLeaveDays      decimal.Decimal   `json:"unpaid_leave_days"`
	CompOffEarned        decimal.Decimal   `json:"comp_off_earned"`
	CompOffUsed          decimal.Decimal   `json:"comp_off_used"`
	CompOffExpired       decimal.Decimal   `json:"comp_off_expired"`
	CompOffBalance       decimal.Decimal   `json:"comp_off_balance"`
	OnTimeCount          int               `json:"on_time_count"`
	LateCount            int               `json:"late_count"`
	OnTimePercentage     *decimal.Decimal  `json:"on_time_percentage"`
	Days                 []DayLineResponse `json:"days,omitempty"`
}

func NewSummaryResponse(s Summary, withDays bool) SummaryResponse {
	resp := SummaryResponse{
		EmployeeID:           s.EmployeeID,
		EmployeeCode:         s.EmployeeCode,
		EmployeeName:         s.EmployeeName,
		Department:           s.Department,
		PeriodStart:          s.PeriodStart.Format(time.DateOnly),
		PeriodEnd:            s.PeriodEnd.Format(time.DateOnly),
		TotalDays:            s.TotalDays,
		WorkingDays:          s.WorkingDays,
		WeekendDays:          s.WeekendDays,
		HolidayDays:          s.HolidayDays,
		ScheduledDays:        s.ScheduledDays,
		DaysPresent:          s.DaysPresent,
		NonWorkingDaysWorked: s.NonWorkingDaysWorked,
		WorkedHours:          s.WorkedHours,
		OvertimeHours:        s.OvertimeHours,
		NightHours:           s.NightHours,
		PaidLeaveDays:        s.PaidLeaveDays,
		UnpaidLeaveDays:      s.UnpaidLeaveDays,
		CompOffEarned:        s.CompOffEarned,
		CompOffUsed:          s.CompOffUsed,
		CompOffExpired:       s.CompOffExpired,
		CompOffBalance:       s.CompOffBalance,
		OnTimeCount:          s.OnTimeCount,
		LateCount:            s.LateCount,
		OnTimePercentage:     s.OnTimePercentage,
	}
	if withDays {
		resp.Days = make([]DayLineResponse, 0, len(s.Days))
		for _, d := range s.Days {
			resp.Days = append(resp.Days, DayLineResponse{
				Date:          d.Date.Format(time.DateOnly),
				Kind:          d.Kind,
				HolidayName:   d.HolidayName,
				Scheduled:     d.Scheduled,
				ShiftName:     d.ShiftName,
				CheckIn:       d.CheckIn,
				CheckOut:      d.CheckOut,
				BreakMinutes:  d.BreakMinutes,
				WorkedHours:   d.WorkedHours,
				OvertimeHours: d.OvertimeHours,
				NightHours:    d.NightHours,
				InStatus:      d.InStatus,
				LeaveType:     d.LeaveType,
				LeaveDays:     d.LeaveDays,
			})
		}
	}
	return resp
}

type TotalsResponse struct {
	Employees        int             `json:"employees"`
	EmployeesPresent int             `json:"employees_present"`
	WorkedHours      decimal.Decimal `json:"worked_hours"`
	OvertimeHours    decimal.Decimal `json:"overtime_hours"`
	NightHours       decimal.Decimal `json:"night_hours"`
	PaidLeaveDays    decimal.Decimal `json:"paid_leave_days"`
	UnpaidLeaveDays  decimal.Decimal `json:"unpaid_leave_days"`
}

type DepartmentResponse struct {
	Department string `json:"department"`
	TotalsResponse
}

type HolidayResponse struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type CompanySummaryResponse struct {
	CompanyID   string               `json:"company_id"`
	Month       int                  `json:"month"`
	Year        int                  `json:"year"`
	TotalDays   int                  `json:"total_days"`
	WorkingDays int                  `json:"working_days"`
	WeekendDays int                  `json:"weekend_days"`
	HolidayDays int                  `json:"holiday_days"`
	Holidays    []HolidayResponse    `json:"holidays"`
	Totals      TotalsResponse       `json:"totals"`
	Departments []DepartmentResponse `json:"departments"`
	Employees   []SummaryResponse    `json:"employees"`
}

func NewCompanySummaryResponse(c CompanySummary) CompanySummaryResponse {
	resp := CompanySummaryResponse{
		CompanyID:   c.CompanyID,
		Month:       c.Month,
		Year:        c.Year,
		TotalDays:   c.TotalDays,
		WorkingDays: c.WorkingDays,
		WeekendDays: c.WeekendDays,
		HolidayDays: c.HolidayDays,
		Holidays:    make([]HolidayResponse, 0, len(c.Holidays)),
		Totals:      TotalsResponse(c.Totals),
		Departments: make([]DepartmentResponse, 0, len(c.Departments)),
		Employees:   make([]SummaryResponse, 0, len(c.Employees)),
	}
	for _, h := range c.Holidays {
		resp.Holidays = append(resp.Holidays, HolidayResponse{Date: h.Date.Format(time.DateOnly), Name: h.Name})
	}
	for _, d := range c.Departments {
		resp.Departments = append(resp.Departments, DepartmentResponse{Department: d.Department, TotalsResponse: TotalsResponse(d.Totals)})
	}
	for _, s := range c.Employees {
		resp.Employees = append(resp.Employees, NewSummaryResponse(s, false))
	}
	return resp
}
