package leave

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypePaid   Type = "paid"
	TypeUnpaid Type = "unpaid"
)

func (t Type) Valid() bool {
	return t == TypePaid || t == TypeUnpaid
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown leave status %q", s)
	}
	return status, nil
}

type Request struct {
	ID           string
	CompanyID    string
	EmployeeID   string
	Type         Type
	StartDate    time.Time
	EndDate      time.Time
	HalfDay      bool
	Reason       string
	Status       Status
	ManagerID    *string
	ManagerNotes *string
	ReviewedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var (
	fullDay = decimal.NewFromInt(1)
	halfDay = decimal.NewFromFloat(0.5)
)

// Covers reports whether date falls inside the request, inclusive.
func (r Request) Covers(date time.Time) bool {
	d := date.Format(time.DateOnly)
	return d >= r.StartDate.Format(time.DateOnly) && d <= r.EndDate.Format(time.DateOnly)
}

// DayWeight is the leave charged for each covered working day.
func (r Request) DayWeight() decimal.Decimal {
	if r.HalfDay {
		return halfDay
	}
	return fullDay
}

// Balance is the paid leave position for one calendar year.
type Balance struct {
	EmployeeID  string
	Year        int
	Entitlement decimal.Decimal
	Used        decimal.Decimal
	Pending     decimal.Decimal
	Remaining   decimal.Decimal
}
