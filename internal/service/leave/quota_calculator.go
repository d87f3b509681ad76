package leave

import (
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

type QuotaCalculator struct {
	calendar calendar.Calendar
}

func NewQuotaCalculator(cal calendar.Calendar) *QuotaCalculator {
	return &QuotaCalculator{calendar: cal}
}

var (
	monthsPerYear = decimal.NewFromInt(12)
	two           = decimal.NewFromInt(2)
)

// Entitlement is the paid leave granted for year. Employees hired during the
// year accrue it pro rata from their hire month, rounded down to a half day.
func (c *QuotaCalculator) Entitlement(emp employee.Employee, year int) decimal.Decimal {
	annual := emp.AnnualPaidLeaveDays
	if emp.HireDate.IsZero() || emp.HireDate.Year() < year {
		return annual
	}
	if emp.HireDate.Year() > year {
		return decimal.Zero
	}

	monthsWorked := int64(12 - int(emp.HireDate.Month()) + 1)
	accrued := annual.Mul(decimal.NewFromInt(monthsWorked)).Div(monthsPerYear)
	return accrued.Mul(two).Floor().Div(two)
}

// ChargeableDays counts the working days of req inside [from, to], weighted
// for half days. Weekends and holidays are never charged.
func (c *QuotaCalculator) ChargeableDays(req leave.Request, from, to time.Time) decimal.Decimal {
	start, end := req.StartDate, req.EndDate
	if from.After(start) {
		start = from
	}
	if to.Before(end) {
		end = to
	}

	total := decimal.Zero
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.IsWorkingDay(d) {
			total = total.Add(req.DayWeight())
		}
	}
	return total
}

func (c *QuotaCalculator) IsWorkingDay(date time.Time) bool {
	return !c.calendar.IsHoliday(date) && !c.calendar.IsWeekend(date)
}
