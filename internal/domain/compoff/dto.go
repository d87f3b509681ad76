package compoff

import (
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var maxEntryDays = decimal.NewFromInt(31)

func validateDays(errs validator.ValidationErrors, days decimal.Decimal) validator.ValidationErrors {
	if !days.IsPositive() {
		return append(errs, validator.ValidationError{Field: "days", Message: "days must be positive"})
	}
	if days.GreaterThan(maxEntryDays) {
		return append(errs, validator.ValidationError{Field: "days", Message: "days must not exceed 31"})
	}
	// Whole or half days only.
	if !days.Mul(decimal.NewFromInt(2)).IsInteger() {
		return append(errs, validator.ValidationError{Field: "days", Message: "days must be a multiple of 0.5"})
	}
	return errs
}

// GrantRequest credits comp-off, typically for work on a weekend or holiday.
type GrantRequest struct {
	CompanyID  string          `json:"-"`
	GrantedBy  string          `json:"-"`
	EmployeeID string          `json:"employee_id"`
	Date       string          `json:"date"`
	Days       decimal.Decimal `json:"days"`
	Reason     string          `json:"reason"`
}

func (r *GrantRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	errs = validateDays(errs, r.Days)
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UseRequest struct {
	CompanyID  string          `json:"-"`
	EmployeeID string          `json:"-"`
	Date       string          `json:"date"`
	Days       decimal.Decimal `json:"days"`
	Reason     string          `json:"reason"`
}

func (r *UseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	errs = validateDays(errs, r.Days)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BalanceRequest struct {
	CompanyID  string
	EmployeeID string
	AsOf       string
}

func (r *BalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.AsOf != "" {
		if _, ok := validator.IsValidDate(r.AsOf); !ok {
			errs = append(errs, validator.ValidationError{Field: "as_of", Message: "as_of must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntryResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Date       string          `json:"date"`
	Kind       Kind            `json:"kind"`
	Days       decimal.Decimal `json:"days"`
	Reason     string          `json:"reason"`
}

func NewEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		Date:       e.EntryDate.Format(time.DateOnly),
		Kind:       e.Kind,
		Days:       e.Days,
		Reason:     e.Reason,
	}
}

type MonthResponse struct {
	Month      string          `json:"month"`
	Earned     decimal.Decimal `json:"earned"`
	Used       decimal.Decimal `json:"used"`
	Expired    decimal.Decimal `json:"expired"`
	Available  decimal.Decimal `json:"available"`
	ExpiryDate string          `json:"expiry_date"`
}

type BalanceResponse struct {
	EmployeeID string          `json:"employee_id"`
	AsOf       string          `json:"as_of"`
	Earned     decimal.Decimal `json:"earned"`
	Used       decimal.Decimal `json:"used"`
	Expired    decimal.Decimal `json:"expired"`
	Available  decimal.Decimal `json:"available"`
	Months     []MonthResponse `json:"months"`
}

func NewBalanceResponse(b Balance) BalanceResponse {
	resp := BalanceResponse{
		EmployeeID: b.EmployeeID,
		AsOf:       b.AsOf.Format(time.DateOnly),
		Earned:     b.Earned,
		Used:       b.Used,
		Expired:    b.Expired,
		Available:  b.Available,
		Months:     []MonthResponse{},
	}
	for _, m := range b.Months() {
		resp.Months = append(resp.Months, MonthResponse{
			Month:      m.Month,
			Earned:     m.Earned,
			Used:       m.Used,
			Expired:    m.Expired,
			Available:  m.Available,
			ExpiryDate: m.ExpiryDate.Format(time.DateOnly),
		})
	}
	return resp
}
