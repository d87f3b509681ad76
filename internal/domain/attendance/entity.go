package attendance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PunctualityStatus flags a check-in or check-out against the schedule.
type PunctualityStatus string

const (
	StatusOnTime PunctualityStatus = "on_time"
	StatusLate   PunctualityStatus = "late"
	StatusEarly  PunctualityStatus = "early"
)

func (s PunctualityStatus) Valid() bool {
	switch s {
	case StatusOnTime, StatusLate, StatusEarly:
		return true
	}
	return false
}

func ParsePunctualityStatus(s string) (PunctualityStatus, error) {
	status := PunctualityStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown punctuality status %q", s)
	}
	return status, nil
}

// Attendance is created at check-in and completed once at check-out.
type Attendance struct {
	ID                    string
	CompanyID             string
	EmployeeID            string
	Date                  time.Time
	ScheduleID            *string
	CheckIn               *time.Time
	CheckOut              *time.Time
	BreakMinutes          int
	WorkedHours           decimal.Decimal
	OvertimeHours         decimal.Decimal
	NightHours            decimal.Decimal
	ApprovedOvertimeHours decimal.Decimal
	InStatus              PunctualityStatus
	OutStatus             *PunctualityStatus
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (a Attendance) IsOpen() bool {
	return a.CheckIn != nil && a.CheckOut == nil
}

func (a Attendance) IsComplete() bool {
	return a.CheckIn != nil && a.CheckOut != nil
}
