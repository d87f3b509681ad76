package overtime

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

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
		return "", fmt.Errorf("unknown overtime status %q", s)
	}
	return status, nil
}

type Request struct {
	ID           string
	CompanyID    string
	EmployeeID   string
	RequestDate  time.Time
	FromTime     schedule.TimeOfDay
	ToTime       schedule.TimeOfDay
	RequestHours decimal.Decimal
	Reason       string
	Status       Status
	ManagerID    *string
	ManagerNotes *string
	ApprovedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WindowHours is the length of the requested clock window. A window ending at
// or before its start crosses midnight.
func WindowHours(from, to schedule.TimeOfDay) decimal.Decimal {
	minutes := int64(from.Until(to) / time.Minute)
	return decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60)).Round(2)
}

// ApprovedWindow is one approved request as seen by the calculator.
type ApprovedWindow struct {
	RequestID string
	From      schedule.TimeOfDay
	To        schedule.TimeOfDay
	Hours     decimal.Decimal
}

// Span anchors the window on date.
func (w ApprovedWindow) Span(date time.Time) (time.Time, time.Time) {
	start := w.From.On(date)
	return start, start.Add(w.From.Until(w.To))
}

// Baseline tells how base hours were derived for a date.
type Baseline string

const (
	// BaselineSchedule uses the scheduled shift length net of its break.
	BaselineSchedule Baseline = "schedule"
	// BaselineDailyMax uses the employee's daily maximum, with no fixed start.
	BaselineDailyMax Baseline = "daily_max"
	// BaselineNoOvertime treats every worked hour as base when unscheduled.
	BaselineNoOvertime Baseline = "no_overtime"
)

// ResolvedWindows is what applies to one employee on one date.
type ResolvedWindows struct {
	EmployeeID string
	Date       time.Time
	Schedule   *schedule.Schedule
	Baseline   Baseline
	BaseHours  decimal.Decimal
	Approved   []ApprovedWindow
}

// Budget sums the approved hours of every window on the date.
func (r ResolvedWindows) Budget() decimal.Decimal {
	total := decimal.Zero
	for _, w := range r.Approved {
		total = total.Add(w.Hours)
	}
	return total
}

// CalculationInput carries one check-out event into the calculator.
type CalculationInput struct {
	CheckIn      time.Time
	CheckOut     time.Time
	BreakMinutes int
	Windows      ResolvedWindows
}

type Calculation struct {
	CheckOut         time.Time
	WorkedHours      decimal.Decimal
	BaseHours        decimal.Decimal
	RawOvertimeHours decimal.Decimal
	ApprovedBudget   decimal.Decimal
	OvertimeHours    decimal.Decimal
	NightHours       decimal.Decimal
}
