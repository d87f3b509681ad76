package summary

import (
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/compoff"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/summary"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Aggregate folds the facts of one employee into a summary. It reads nothing
// but its arguments, so the same facts always give the same summary.
//
// Days are classified holiday first, then weekend, then working. Hours are
// counted on every day with a completed record; presence counts toward
// DaysPresent on working days and NonWorkingDaysWorked otherwise. Leave is
// only charged on working days.
func Aggregate(facts summary.Facts, cal calendar.Calendar) summary.Summary {
	emp := facts.Employee
	s := summary.Summary{
		EmployeeID:      emp.ID,
		EmployeeCode:    emp.EmployeeCode,
		EmployeeName:    emp.FullName,
		Department:      emp.Department(),
		PeriodStart:     facts.Start,
		PeriodEnd:       facts.End,
		WorkedHours:     decimal.Zero,
		OvertimeHours:   decimal.Zero,
		NightHours:      decimal.Zero,
		PaidLeaveDays:   decimal.Zero,
		UnpaidLeaveDays: decimal.Zero,
		Days:            make([]summary.DayLine, 0, summary.DaysInRange(facts.Start, facts.End)),
	}

	schedules := make(map[string]schedule.Schedule, len(facts.Schedules))
	for _, sc := range facts.Schedules {
		key := sc.Date.Format(time.DateOnly)
		if _, ok := schedules[key]; !ok {
			schedules[key] = sc
		}
	}
	records := make(map[string]attendance.Attendance, len(facts.Attendance))
	for _, a := range facts.Attendance {
		records[a.Date.Format(time.DateOnly)] = a
	}

	for d := facts.Start; !d.After(facts.End); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		line := summary.DayLine{
			Date:          d,
			Kind:          summary.DayWorking,
			WorkedHours:   decimal.Zero,
			OvertimeHours: decimal.Zero,
			NightHours:    decimal.Zero,
			LeaveDays:     decimal.Zero,
		}

		switch {
		case cal.IsHoliday(d):
			line.Kind = summary.DayHoliday
			line.HolidayName = cal.HolidayName(d)
			s.HolidayDays++
		case cal.IsWeekend(d):
			line.Kind = summary.DayWeekend
			s.WeekendDays++
		default:
			s.WorkingDays++
		}
		s.TotalDays++

		if sc, ok := schedules[key]; ok {
			line.Scheduled = true
			line.ShiftName = sc.ShiftName
			s.ScheduledDays++
		}

		if a, ok := records[key]; ok && a.CheckIn != nil {
			line.CheckIn = a.CheckIn
			line.CheckOut = a.CheckOut
			status := a.InStatus
			line.InStatus = &status

			if line.Kind == summary.DayWorking {
				s.DaysPresent++
			} else {
				s.NonWorkingDaysWorked++
			}

			s.AttendanceCount++
			switch a.InStatus {
			case attendance.StatusOnTime:
				s.OnTimeCount++
			case attendance.StatusLate:
				s.LateCount++
			}

			if a.IsComplete() {
				line.BreakMinutes = a.BreakMinutes
				line.WorkedHours = a.WorkedHours
				line.OvertimeHours = a.OvertimeHours
				line.NightHours = a.NightHours
				s.WorkedHours = s.WorkedHours.Add(a.WorkedHours)
				s.OvertimeHours = s.OvertimeHours.Add(a.OvertimeHours)
				s.NightHours = s.NightHours.Add(a.NightHours)
			}
		}

		if line.Kind == summary.DayWorking {
			if req, ok := leaveOn(facts.Leave, d); ok {
				leaveType := req.Type
				line.LeaveType = &leaveType
				line.LeaveDays = req.DayWeight()
				if req.Type == leave.TypePaid {
					s.PaidLeaveDays = s.PaidLeaveDays.Add(line.LeaveDays)
				} else {
					s.UnpaidLeaveDays = s.UnpaidLeaveDays.Add(line.LeaveDays)
				}
			}
		}

		s.Days = append(s.Days, line)
	}

	s.CompOffEarned, s.CompOffUsed = compoff.Activity(facts.CompOffEntries, facts.Start, facts.End)
	s.CompOffExpired = facts.CompOffBalance.ExpiredBetween(facts.Start, facts.End)
	s.CompOffBalance = facts.CompOffBalance.Available

	if s.AttendanceCount > 0 {
		pct := decimal.NewFromInt(int64(s.OnTimeCount)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(s.AttendanceCount))).
			Round(2)
		s.OnTimePercentage = &pct
	}

	return s
}

// leaveOn returns the first approved request covering date. Requests are
// expected in start date order.
func leaveOn(requests []leave.Request, date time.Time) (leave.Request, bool) {
	for _, r := range requests {
		if r.Status == leave.StatusApproved && r.Covers(date) {
			return r, true
		}
	}
	return leave.Request{}, false
}
