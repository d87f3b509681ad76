package overtime

import (
	"math/rand"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/config"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const nightStart = schedule.TimeOfDay(22 * 60)

var workDay = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 5, hour, minute, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dailyMaxWindows(base string, approved ...overtime.ApprovedWindow) overtime.ResolvedWindows {
	return overtime.ResolvedWindows{
		EmployeeID: "emp-1",
		Date:       workDay,
		Baseline:   overtime.BaselineDailyMax,
		BaseHours:  dec(base),
		Approved:   approved,
	}
}

func approved(from, to string, hours string) overtime.ApprovedWindow {
	f, _ := schedule.ParseTimeOfDay(from)
	t, _ := schedule.ParseTimeOfDay(to)
	return overtime.ApprovedWindow{RequestID: from + "-" + to, From: f, To: t, Hours: dec(hours)}
}

func TestCalculate_Scenarios(t *testing.T) {
	calc := NewCalculator(config.MatchByBudget, nightStart)

	cases := []struct {
		name         string
		checkIn      time.Time
		checkOut     time.Time
		breakMinutes int
		windows      overtime.ResolvedWindows
		worked       string
		overtime     string
		night        string
	}{
		{
			name:         "one approved hour fully worked",
			checkIn:      at(9, 0),
			checkOut:     at(19, 0),
			breakMinutes: 60,
			windows:      dailyMaxWindows("8", approved("18:00", "19:00", "1")),
			worked:       "9",
			overtime:     "1",
			night:        "0",
		},
		{
			name:         "worked beyond the approved budget",
			checkIn:      at(9, 0),
			checkOut:     at(20, 45),
			breakMinutes: 60,
			windows:      dailyMaxWindows("8", approved("18:00", "19:30", "1.5")),
			worked:       "10.75",
			overtime:     "1.5",
			night:        "0",
		},
		{
			name:         "no work past base hours",
			checkIn:      at(9, 0),
			checkOut:     at(18, 0),
			breakMinutes: 60,
			windows:      dailyMaxWindows("8", approved("18:00", "20:00", "2")),
			worked:       "8",
			overtime:     "0",
			night:        "0",
		},
		{
			name:         "extra hours without approval are not overtime",
			checkIn:      at(9, 0),
			checkOut:     at(21, 0),
			breakMinutes: 60,
			windows:      dailyMaxWindows("8"),
			worked:       "11",
			overtime:     "0",
			night:        "0",
		},
		{
			name:     "overnight shift rolls to the next day",
			checkIn:  at(22, 0),
			checkOut: at(2, 0),
			windows:  dailyMaxWindows("8"),
			worked:   "4",
			overtime: "0",
			night:    "2",
		},
		{
			name:     "equal times yield zero",
			checkIn:  at(9, 0),
			checkOut: at(9, 0),
			windows:  dailyMaxWindows("8", approved("18:00", "19:00", "1")),
			worked:   "0",
			overtime: "0",
			night:    "0",
		},
		{
			name:         "break longer than the span clamps to zero",
			checkIn:      at(9, 0),
			checkOut:     at(9, 30),
			breakMinutes: 60,
			windows:      dailyMaxWindows("8"),
			worked:       "0",
			overtime:     "0",
			night:        "0",
		},
		{
			name:         "late evening counts night hours",
			checkIn:      at(14, 0),
			checkOut:     at(23, 30),
			breakMinutes: 30,
			windows:      dailyMaxWindows("8", approved("22:00", "23:30", "1.5")),
			worked:       "9",
			overtime:     "1",
			night:        "1.5",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := calc.Calculate(overtime.CalculationInput{
				CheckIn:      c.checkIn,
				CheckOut:     c.checkOut,
				BreakMinutes: c.breakMinutes,
				Windows:      c.windows,
			})
			assert.True(t, dec(c.worked).Equal(got.WorkedHours), "worked = %s, want %s", got.WorkedHours, c.worked)
			assert.True(t, dec(c.overtime).Equal(got.OvertimeHours), "overtime = %s, want %s", got.OvertimeHours, c.overtime)
			assert.True(t, dec(c.night).Equal(got.NightHours), "night = %s, want %s", got.NightHours, c.night)
		})
	}
}

func TestCalculate_ScheduleBaseline(t *testing.T) {
	calc := NewCalculator(config.MatchByBudget, nightStart)

	sched := schedule.Schedule{
		Date:         workDay,
		StartTime:    schedule.TimeOfDay(9 * 60),
		EndTime:      schedule.TimeOfDay(18 * 60),
		BreakMinutes: 60,
	}
	windows := overtime.ResolvedWindows{
		Date:      workDay,
		Schedule:  &sched,
		Baseline:  overtime.BaselineSchedule,
		BaseHours: sched.NetHours(),
		Approved:  []overtime.ApprovedWindow{approved("18:00", "20:00", "2")},
	}

	got := calc.Calculate(overtime.CalculationInput{
		CheckIn:      at(9, 0),
		CheckOut:     at(19, 30),
		BreakMinutes: 60,
		Windows:      windows,
	})

	assert.True(t, dec("8").Equal(got.BaseHours))
	assert.True(t, dec("9.5").Equal(got.WorkedHours))
	assert.True(t, dec("1.5").Equal(got.RawOvertimeHours))
	assert.True(t, dec("2").Equal(got.ApprovedBudget))
	assert.True(t, dec("1.5").Equal(got.OvertimeHours))
}

func TestCalculate_NoOvertimeBaseline(t *testing.T) {
	calc := NewCalculator(config.MatchByBudget, nightStart)

	windows := dailyMaxWindows("8", approved("18:00", "20:00", "2"))
	windows.Baseline = overtime.BaselineNoOvertime

	got := calc.Calculate(overtime.CalculationInput{
		CheckIn:      at(9, 0),
		CheckOut:     at(21, 0),
		BreakMinutes: 60,
		Windows:      windows,
	})

	assert.True(t, dec("11").Equal(got.WorkedHours))
	assert.True(t, got.OvertimeHours.IsZero())
}

func TestCalculate_WindowMatching(t *testing.T) {
	calc := NewCalculator(config.MatchByWindow, nightStart)

	// Approved 19:00-21:00 but the employee left at 19:30: only half an hour
	// of worked time lies inside the window.
	got := calc.Calculate(overtime.CalculationInput{
		CheckIn:      at(8, 0),
		CheckOut:     at(19, 30),
		BreakMinutes: 60,
		Windows:      dailyMaxWindows("8", approved("19:00", "21:00", "2")),
	})

	assert.True(t, dec("10.5").Equal(got.WorkedHours))
	assert.True(t, dec("2.5").Equal(got.RawOvertimeHours))
	assert.True(t, dec("0.5").Equal(got.OvertimeHours))

	// Overlapping windows are not counted twice.
	got = calc.Calculate(overtime.CalculationInput{
		CheckIn:      at(8, 0),
		CheckOut:     at(21, 0),
		BreakMinutes: 60,
		Windows:      dailyMaxWindows("8", approved("18:00", "20:00", "2"), approved("19:00", "21:00", "2")),
	})
	assert.True(t, dec("3").Equal(got.OvertimeHours))

	// Overnight shift: the approved window after midnight belongs to the
	// same work date.
	got = calc.Calculate(overtime.CalculationInput{
		CheckIn:  at(20, 0),
		CheckOut: at(6, 0),
		Windows:  dailyMaxWindows("8", approved("02:00", "04:00", "2")),
	})
	assert.True(t, dec("10").Equal(got.WorkedHours))
	assert.True(t, dec("2").Equal(got.RawOvertimeHours))
	assert.True(t, dec("2").Equal(got.OvertimeHours))

	// A window before the check-in still counts on a day shift.
	got = calc.Calculate(overtime.CalculationInput{
		CheckIn:  at(6, 0),
		CheckOut: at(16, 0),
		Windows:  dailyMaxWindows("8", approved("05:00", "07:00", "2")),
	})
	assert.True(t, dec("1").Equal(got.OvertimeHours))
}

func TestCalculate_Properties(t *testing.T) {
	calc := NewCalculator(config.MatchByBudget, nightStart)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		checkIn := at(rng.Intn(24), rng.Intn(60))
		checkOut := checkIn.Add(time.Duration(rng.Intn(20*60)) * time.Minute)
		base := decimal.NewFromInt(int64(rng.Intn(12) + 1))
		budget := decimal.NewFromInt(int64(rng.Intn(16))).Div(decimal.NewFromInt(4))

		windows := dailyMaxWindows(base.String())
		if budget.IsPositive() {
			windows.Approved = []overtime.ApprovedWindow{{RequestID: "r", From: 0, To: 60, Hours: budget}}
		}

		got := calc.Calculate(overtime.CalculationInput{
			CheckIn:      checkIn,
			CheckOut:     checkOut,
			BreakMinutes: rng.Intn(90),
			Windows:      windows,
		})

		assert.False(t, got.WorkedHours.IsNegative())
		assert.False(t, got.OvertimeHours.IsNegative())
		assert.True(t, got.OvertimeHours.LessThanOrEqual(budget), "overtime %s exceeds budget %s", got.OvertimeHours, budget)
		assert.True(t, got.OvertimeHours.LessThanOrEqual(decimal.Max(decimal.Zero, got.WorkedHours.Sub(base))),
			"overtime %s exceeds worked-base (%s-%s)", got.OvertimeHours, got.WorkedHours, base)
		assert.False(t, got.CheckOut.Before(checkIn))
	}
}
