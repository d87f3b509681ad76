package leave

import (
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SubmitRequest struct {
	EmployeeID string `json:"-"`
	CompanyID  string `json:"-"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	HalfDay    bool   `json:"half_day"`
	Reason     string `json:"reason"`
}

const maxLeaveSpanDays = 90

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !Type(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be paid or unpaid"})
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
		switch {
		case end.Before(start):
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
		case end.Sub(start) >= maxLeaveSpanDays*24*time.Hour:
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "leave must not span more than 90 days"})
		case r.HalfDay && !end.Equal(start):
			errs = append(errs, validator.ValidationError{Field: "half_day", Message: "half_day is only allowed for a single date"})
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
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return Request{
		CompanyID:  r.CompanyID,
		EmployeeID: r.EmployeeID,
		Type:       Type(r.Type),
		StartDate:  start,
		EndDate:    end,
		HalfDay:    r.HalfDay,
		Reason:     r.Reason,
		Status:     StatusPending,
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

type ListRequest struct {
	CompanyID  string
	EmployeeID string
	StartDate  string
	EndDate    string
	Status     string
}

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
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}
	if r.Status != "" && !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be pending, approved or rejected"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BalanceRequest struct {
	CompanyID  string
	EmployeeID string
	Year       int
}

func (r *BalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !validator.IsValidMonth(1, r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is invalid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	Type         Type       `json:"type"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date"`
	HalfDay      bool       `json:"half_day"`
	Reason       string     `json:"reason"`
	Status       Status     `json:"status"`
	ManagerID    *string    `json:"manager_id,omitempty"`
	ManagerNotes *string    `json:"manager_notes,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
}

func NewRequestResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		Type:         r.Type,
		StartDate:    r.StartDate.Format(time.DateOnly),
		EndDate:      r.EndDate.Format(time.DateOnly),
		HalfDay:      r.HalfDay,
		Reason:       r.Reason,
		Status:       r.Status,
		ManagerID:    r.ManagerID,
		ManagerNotes: r.ManagerNotes,
		ReviewedAt:   r.ReviewedAt,
	}
}

type BalanceResponse struct {
	EmployeeID  string          `json:"employee_id"`
	Year        int             `json:"year"`
	Entitlement decimal.Decimal `json:"entitlement"`
	Used        decimal.Decimal `json:"used"`
	Pending     decimal.Decimal `json:"pending"`
	Remaining   decimal.Decimal `json:"remaining"`
}

func NewBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse(b)
}
