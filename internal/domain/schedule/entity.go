package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TimeOfDay is a wall-clock time stored as minutes since midnight.
type TimeOfDay int

const minutesPerDay = 24 * 60

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// On anchors t on the calendar day of date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(t)/60, int(t)%60, 0, 0, date.Location())
}

// Until returns the span from t to end. An end at or before t wraps past midnight.
func (t TimeOfDay) Until(end TimeOfDay) time.Duration {
	minutes := int(end) - int(t)
	if minutes <= 0 {
		minutes += minutesPerDay
	}
	return time.Duration(minutes) * time.Minute
}

type Shift struct {
	ID           string
	CompanyID    string
	RoleID       *string
	Name         string
	StartTime    TimeOfDay
	EndTime      TimeOfDay
	BreakMinutes int
	MinEmployees int
	MaxEmployees int
	Priority     int
}

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	return s == StatusScheduled || s == StatusCancelled
}

// Schedule is one employee's planned shift on one date.
type Schedule struct {
	ID           string
	EmployeeID   string
	ShiftID      *string
	ShiftName    string
	Date         time.Time
	StartTime    TimeOfDay
	EndTime      TimeOfDay
	BreakMinutes int
	Status       Status
}

// Window returns the planned start and end instants. Shifts ending at or
// before their start finish on the following day.
func (s Schedule) Window(loc *time.Location) (time.Time, time.Time) {
	date := time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, loc)
	start := s.StartTime.On(date)
	return start, start.Add(s.StartTime.Until(s.EndTime))
}

// NetHours is the planned span less the planned break, never below zero.
func (s Schedule) NetHours() decimal.Decimal {
	minutes := int64(s.StartTime.Until(s.EndTime)/time.Minute) - int64(s.BreakMinutes)
	if minutes < 0 {
		minutes = 0
	}
	return decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60)).Round(2)
}
