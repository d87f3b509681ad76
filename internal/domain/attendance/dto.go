package attendance

import (
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// CheckInRequest carries a check-in event. CheckInTime is either RFC3339 or
// an "HH:MM" clock value on Date.
type CheckInRequest struct {
	EmployeeID  string `json:"-"`
	CompanyID   string `json:"-"`
	Date        string `json:"date"`
	CheckInTime string `json:"check_in_time"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if ok {
		if _, ok := validator.ParseMoment(r.CheckInTime, date, time.UTC); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_in_time", Message: "check_in_time must be RFC3339 or HH:MM"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CheckOutRequest carries a check-out event. BreakMinutes falls back to the
// scheduled break, then to the employee's default break.
type CheckOutRequest struct {
	EmployeeID   string `json:"-"`
	CompanyID    string `json:"-"`
	Date         string `json:"date"`
	CheckOutTime string `json:"check_out_time"`
	BreakMinutes *int   `json:"break_minutes,omitempty"`
}

const maxBreakMinutes = 24 * 60

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if ok {
		if _, ok := validator.ParseMoment(r.CheckOutTime, date, time.UTC); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_out_time", Message: "check_out_time must be RFC3339 or HH:MM"})
		}
	}
	if r.BreakMinutes != nil {
		if *r.BreakMinutes < 0 {
			errs = append(errs, validator.ValidationError{Field: "break_minutes", Message: "break_minutes must not be negative"})
		} else if *r.BreakMinutes > maxBreakMinutes {
			errs = append(errs, validator.ValidationError{Field: "break_minutes", Message: "break_minutes must not exceed one day"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GetRequest struct {
	CompanyID  string
	EmployeeID string
	Date       string
}

func (r *GetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListRequest struct {
	CompanyID  string
	EmployeeID string
	StartDate  string
	EndDate    string
}

const maxListDays = 366

func (r *ListRequest) Validate() error {
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
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
		} else if end.Sub(start) > maxListDays*24*time.Hour {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "range must not exceed one year"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID                    string             `json:"id"`
	EmployeeID            string             `json:"employee_id"`
	Date                  string             `json:"date"`
	CheckIn               *time.Time         `json:"check_in,omitempty"`
	CheckOut              *time.Time         `json:"check_out,omitempty"`
	BreakMinutes          int                `json:"break_minutes"`
	WorkedHours           decimal.Decimal    `json:"worked_hours"`
	OvertimeHours         decimal.Decimal    `json:"overtime_hours"`
	NightHours            decimal.Decimal    `json:"night_hours"`
	ApprovedOvertimeHours decimal.Decimal    `json:"approved_overtime_hours"`
	InStatus              PunctualityStatus  `json:"in_status"`
	OutStatus             *PunctualityStatus `json:"out_status,omitempty"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:                    a.ID,
		EmployeeID:            a.EmployeeID,
		Date:                  a.Date.Format(time.DateOnly),
		CheckIn:               a.CheckIn,
		CheckOut:              a.CheckOut,
		BreakMinutes:          a.BreakMinutes,
		WorkedHours:           a.WorkedHours,
		OvertimeHours:         a.OvertimeHours,
		NightHours:            a.NightHours,
		ApprovedOvertimeHours: a.ApprovedOvertimeHours,
		InStatus:              a.InStatus,
		OutStatus:             a.OutStatus,
	}
}

func NewAttendanceResponses(items []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewAttendanceResponse(a))
	}
	return out
}
