package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                  string
	CompanyID           string
	EmployeeCode        string
	FullName            string
	DepartmentID        *string
	DepartmentName      *string
	RoleID              *string
	RoleName            *string
	WeeklyHours         decimal.Decimal
	DailyMaxHours       decimal.Decimal
	ShiftsPerWeek       int
	DefaultBreakMinutes int
	AnnualPaidLeaveDays decimal.Decimal
	EmploymentStatus    EmploymentStatus
	HireDate            time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusInactive EmploymentStatus = "inactive"
)

var maxDailyHours = decimal.NewFromInt(24)

// CheckHourCaps reports ErrInvalidHourCaps when the caps the overtime rules
// depend on are missing or out of range.
func (e Employee) CheckHourCaps() error {
	if !e.DailyMaxHours.IsPositive() || e.DailyMaxHours.GreaterThan(maxDailyHours) {
		return ErrInvalidHourCaps
	}
	if e.WeeklyHours.IsNegative() || e.DefaultBreakMinutes < 0 {
		return ErrInvalidHourCaps
	}
	return nil
}

func (e Employee) Department() string {
	if e.DepartmentName == nil {
		return ""
	}
	return *e.DepartmentName
}

// BelongsTo reports whether the employee is part of companyID. An empty
// companyID matches any company, for internal callers such as jobs.
func (e Employee) BelongsTo(companyID string) bool {
	return companyID == "" || e.CompanyID == companyID
}
