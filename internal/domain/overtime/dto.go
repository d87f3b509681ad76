package overtime

import (
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// OVERTIME REQUEST DTOs
// ========================================

type SubmitRequest struct {
	EmployeeID   string           `json:"-"`
	CompanyID    string           `json:"-"`
	RequestDate  string           `json:"request_date"`
	FromTime     string           `json:"from_time"`
	ToTime       string           `json:"to_time"`
	RequestHours *decimal.Decimal `json:"request_hours,omitempty"`
	Reason       string           `json:"reason"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.RequestDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "request_date", Message: "request_date must be YYYY-MM-DD"})
	}

	validClock := true
	if !validator.IsValidClock(r.FromTime) {
		validClock = false
		errs = append(errs, validator.ValidationError{Field: "from_time", Message: "from_time must be HH:MM"})
	}
	if !validator.IsValidClock(r.ToTime) {
		validClock = false
		errs = append(errs, validator.ValidationError{Field: "to_time", Message: "to_time must be HH:MM"})
	}
	if validClock {
		if r.FromTime == r.ToTime {
			errs = append(errs, validator.ValidationError{Field: "to_time", Message: "to_time must differ from from_time"})
		} else if r.RequestHours != nil {
			from, _ := schedule.ParseTimeOfDay(r.FromTime)
			to, _ := schedule.ParseTimeOfDay(r.ToTime)
			if !r.RequestHours.IsPositive() {
				errs = append(errs, validator.ValidationError{Field: "request_hours", Message: "request_hours must be positive"})
			} else if r.RequestHours.GreaterThan(WindowHours(from, to)) {
				errs = append(errs, validator.ValidationError{Field: "request_hours", Message: "request_hours must not exceed the requested window"})
			}
		}
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToRequest builds a pending request. Call Validate first.
func (r *SubmitRequest) ToRequest() Request {
	date, _ := validator.IsValidDate(r.RequestDate)
	from, _ := schedule.ParseTimeOfDay(r.FromTime)
	to, _ := schedule.ParseTimeOfDay(r.ToTime)

	hours := WindowHours(from, to)
	if r.RequestHours != nil {
		hours = *r.RequestHours
	}

	return Request{
		CompanyID:    r.CompanyID,
		EmployeeID:   r.EmployeeID,
		RequestDate:  date,
		FromTime:     from,
		ToTime:       to,
		RequestHours: hours,
		Reason:       r.Reason,
		Status:       StatusPending,
	}
}

type ReviewRequest struct {
	ID        string  `json:"-"`
	CompanyID string  `json:"-"`
	ManagerID string  `json:"-"`
	Notes     *string `json:"manager_notes,omitempty"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if validator.IsEmpty(r.ManagerID) {
		errs = append(errs, validator.ValidationError{Field: "manager_id", Message: "manager_id is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	CompanyID  string
	EmployeeID string
	Status     *Status
	From       *time.Time
	To         *time.Time
}

// ParseListFilter builds a filter from query string values.
func ParseListFilter(companyID, employeeID, status, startDate, endDate string) (ListFilter, error) {
	var errs validator.ValidationErrors
	filter := ListFilter{CompanyID: companyID, EmployeeID: employeeID}

	if status != "" {
		s, err := ParseStatus(status)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be pending, approved or rejected"})
		} else {
			filter.Status = &s
		}
	}
	if startDate != "" {
		d, ok := validator.IsValidDate(startDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
		} else {
			filter.From = &d
		}
	}
	if endDate != "" {
		d, ok := validator.IsValidDate(endDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
		} else {
			filter.To = &d
		}
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return ListFilter{}, errs
	}
	return filter, nil
}

type ResolveRequest struct {
	CompanyID  string
	EmployeeID string
	Date       string
}

func (r *ResolveRequest) Validate() error {
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

type RequestResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	RequestDate  string          `json:"request_date"`
	FromTime     string          `json:"from_time"`
	ToTime       string          `json:"to_time"`
	RequestHours decimal.Decimal `json:"request_hours"`
	Reason       string          `json:"reason"`
	Status       Status          `json:"status"`
	ManagerID    *string         `json:"manager_id,omitempty"`
	ManagerNotes *string         `json:"manager_notes,omitempty"`
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`
}

func NewRequestResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		RequestDate:  r.RequestDate.Format(time.DateOnly),
		FromTime:     r.FromTime.String(),
		ToTime:       r.ToTime.String(),
		RequestHours: r.RequestHours,
		Reason:       r.Reason,
		Status:       r.Status,
		ManagerID:    r.ManagerID,
		ManagerNotes: r.ManagerNotes,
		ApprovedAt:   r.ApprovedAt,
	}
}

type WindowResponse struct {
	RequestID string          `json:"request_id"`
	FromTime  string          `json:"from_time"`
	ToTime    string          `json:"to_time"`
	Hours     decimal.Decimal `json:"approved_hours"`
}

type ResolvedWindowsResponse struct {
	EmployeeID     string           `json:"employee_id"`
	Date           string           `json:"date"`
	Baseline       Baseline         `json:"baseline"`
	ScheduledStart *string          `json:"scheduled_start,omitempty"`
	ScheduledEnd   *string          `json:"scheduled_end,omitempty"`
	BaseHours      decimal.Decimal  `json:"base_hours"`
	ApprovedBudget decimal.Decimal  `json:"approved_budget"`
	Approved       []WindowResponse `json:"approved_windows"`
}

func NewResolvedWindowsResponse(r ResolvedWindows) ResolvedWindowsResponse {
	resp := ResolvedWindowsResponse{
		EmployeeID:     r.EmployeeID,
		Date:           r.Date.Format(time.DateOnly),
		Baseline:       r.Baseline,
		BaseHours:      r.BaseHours,
		ApprovedBudget: r.Budget(),
		Approved:       make([]WindowResponse, 0, len(r.Approved)),
	}
	if r.Schedule != nil {
		start, end := r.Schedule.StartTime.String(), r.Schedule.EndTime.String()
		resp.ScheduledStart = &start
		resp.ScheduledEnd = &end
	}
	for _, w := range r.Approved {
		resp.Approved = append(resp.Approved, WindowResponse{
			RequestID: w.RequestID,
			FromTime:  w.From.String(),
			ToTime:    w.To.String(),
			Hours:     w.Hours,
		})
	}
	return resp
}
