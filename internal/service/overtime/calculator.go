package overtime

import (
	"cmp"
	"slices"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/config"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

var secondsPerHour = decimal.NewFromInt(3600)

// CalculatorImpl is pure: no I/O and no clock, the same input always yields
// the same Calculation.
type CalculatorImpl struct {
	matching   config.OvertimeMatching
	nightStart schedule.TimeOfDay
}

func NewCalculator(matching config.OvertimeMatching, nightStart schedule.TimeOfDay) overtime.Calculator {
	return &CalculatorImpl{matching: matching, nightStart: nightStart}
}

// Calculate implements overtime.Calculator.
//
// A check-out before the check-in is read as the next day. Worked hours are
// the span less the break, never negative. Overtime is the worked time past
// the base hours, capped by the approved budget.
func (c *CalculatorImpl) Calculate(in overtime.CalculationInput) overtime.Calculation {
	checkOut := in.CheckOut
	if checkOut.Before(in.CheckIn) {
		checkOut = checkOut.Add(24 * time.Hour)
	}

	worked := checkOut.Sub(in.CheckIn) - time.Duration(in.BreakMinutes)*time.Minute
	if worked < 0 {
		worked = 0
	}
	workedHours := toHours(worked)

	base := in.Windows.BaseHours
	if in.Windows.Baseline == overtime.BaselineNoOvertime {
		base = workedHours
	}

	raw := workedHours.Sub(base)
	if raw.IsNegative() {
		raw = decimal.Zero
	}
	budget := in.Windows.Budget()

	eligible := raw
	if c.matching == config.MatchByWindow {
		inside := toHours(overlapWithWindows(in.CheckIn, checkOut, in.Windows))
		eligible = decimal.Min(raw, inside)
	}

	return overtime.Calculation{
		CheckOut:         checkOut,
		WorkedHours:      workedHours,
		BaseHours:        base,
		RawOvertimeHours: raw,
		ApprovedBudget:   budget,
		OvertimeHours:    decimal.Min(eligible, decimal.Max(budget, decimal.Zero)),
		NightHours:       toHours(c.nightOverlap(in.CheckIn, checkOut)),
	}
}

// nightOverlap sums the time between the night start and midnight on every
// calendar day the shift touches.
func (c *CalculatorImpl) nightOverlap(start, end time.Time) time.Duration {
	var total time.Duration
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for !day.After(end) {
		nightFrom := c.nightStart.On(day)
		nightTo := day.AddDate(0, 0, 1)
		total += overlap(start, end, nightFrom, nightTo)
		day = nightTo
	}
	return total
}

// overlapWithWindows measures worked time inside the union of the approved
// windows, so overlapping requests are not counted twice. A window is placed
// on the work date and on the following day, so a window past midnight still
// meets an overnight shift.
func overlapWithWindows(start, end time.Time, windows overtime.ResolvedWindows) time.Duration {
	type span struct{ from, to time.Time }

	date := time.Date(windows.Date.Year(), windows.Date.Month(), windows.Date.Day(), 0, 0, 0, 0, start.Location())
	spans := make([]span, 0, 2*len(windows.Approved))
	for _, w := range windows.Approved {
		for _, day := range []time.Time{date, date.AddDate(0, 0, 1)} {
			from, to := w.Span(day)
			if to.After(start) && from.Before(end) {
				spans = append(spans, span{from, to})
			}
		}
	}
	slices.SortFunc(spans, func(a, b span) int { return cmp.Compare(a.from.UnixNano(), b.from.UnixNano()) })

	var total time.Duration
	var cur *span
	for i := range spans {
		s := spans[i]
		if cur != nil && !s.from.After(cur.to) {
			if s.to.After(cur.to) {
				cur.to = s.to
			}
			continue
		}
		if cur != nil {
			total += overlap(start, end, cur.from, cur.to)
		}
		cur = &s
	}
	if cur != nil {
		total += overlap(start, end, cur.from, cur.to)
	}
	return total
}

func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	from := aStart
	if bStart.After(from) {
		from = bStart
	}
	to := aEnd
	if bEnd.Before(to) {
		to = bEnd
	}
	if !to.After(from) {
		return 0
	}
	return to.Sub(from)
}

func toHours(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d / time.Second)).Div(secondsPerHour).Round(2)
}
