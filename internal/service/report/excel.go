package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/summary"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/i18n"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// sheetWriter appends rows to one sheet and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (w *sheetWriter) append(values ...any) {
	w.row++
	if w.err != nil {
		return
	}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			w.err = err
			return
		}
		if err := w.f.SetCellValue(w.sheet, cell, v); err != nil {
			w.err = err
			return
		}
	}
}

func (w *sheetWriter) blank() {
	w.row++
}

func hours(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func percentage(p *decimal.Decimal, tr i18n.Translator) any {
	if p == nil {
		return tr.T("not_available")
	}
	return p.InexactFloat64()
}

func period(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", start.Format(time.DateOnly), end.Format(time.DateOnly))
}

// renderMonthly writes the company month as a statistics sheet followed by
// one row per employee.
func renderMonthly(c summary.CompanySummary, tr i18n.Translator) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	statsName := tr.T("statistics")
	if err := f.SetSheetName("Sheet1", statsName); err != nil {
		return nil, err
	}
	stats := &sheetWriter{f: f, sheet: statsName}
	stats.append(tr.T("monthly_attendance_report"))
	stats.append(tr.T("period"), period(c.PeriodStart, c.PeriodEnd))
	stats.blank()
	stats.append(tr.T("total_days_in_period"), c.TotalDays)
	stats.append(tr.T("public_holidays"), c.HolidayDays)
	stats.append(tr.T("weekends"), c.WeekendDays)
	stats.append(tr.T("working_days_available"), c.WorkingDays)
	stats.blank()
	stats.append(tr.T("total_employees"), c.Totals.Employees)
	stats.append(tr.T("employees_present"), c.Totals.EmployeesPresent)
	stats.append(tr.T("total_working_hours_all"), hours(c.Totals.WorkedHours))
	stats.append(tr.T("total_overtime_hours_all"), hours(c.Totals.OvertimeHours))
	if len(c.Holidays) > 0 {
		stats.blank()
		stats.append(tr.T("public_holidays"))
		for _, h := range c.Holidays {
			stats.append(h.Date.Format(time.DateOnly), h.Name)
		}
	}
	if stats.err != nil {
		return nil, stats.err
	}

	detailsName := tr.T("attendance_details")
	if _, err := f.NewSheet(detailsName); err != nil {
		return nil, err
	}
	details := &sheetWriter{f: f, sheet: detailsName}
	details.append(
		tr.T("employee_id"),
		tr.T("name"),
		tr.T("department"),
		tr.T("days_present"),
		tr.T("scheduled_days"),
		tr.T("non_working_days_worked"),
		tr.T("total_hours_worked"),
		tr.T("total_overtime_hours"),
		tr.T("total_night_hours"),
		tr.T("paid_leave_days_used"),
		tr.T("unpaid_leave_days"),
		tr.T("comp_off_earned"),
		tr.T("comp_off_used"),
		tr.T("comp_off_expired"),
		tr.T("comp_off_balance"),
		tr.T("on_time_percentage"),
	)
	for _, e := range c.Employees {
		details.append(
			e.EmployeeCode,
			e.EmployeeName,
			e.Department,
			e.DaysPresent,
			e.ScheduledDays,
			e.NonWorkingDaysWorked,
			hours(e.WorkedHours),
			hours(e.OvertimeHours),
			hours(e.NightHours),
			hours(e.PaidLeaveDays),
			hours(e.UnpaidLeaveDays),
			hours(e.CompOffEarned),
			hours(e.CompOffUsed),
			hours(e.CompOffExpired),
			hours(e.CompOffBalance),
			percentage(e.OnTimePercentage, tr),
		)
	}
	if details.err != nil {
		return nil, details.err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderEmployee writes one line per calendar day and a summary sheet.
func renderEmployee(s summary.Summary, tr i18n.Translator, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	dailyName := tr.T("daily_attendance")
	if err := f.SetSheetName("Sheet1", dailyName); err != nil {
		return nil, err
	}
	daily := &sheetWriter{f: f, sheet: dailyName}
	daily.append(tr.T("employee_monthly_report"), s.EmployeeCode, s.EmployeeName)
	daily.append(tr.T("period"), period(s.PeriodStart, s.PeriodEnd))
	daily.blank()
	daily.append(
		tr.T("date"),
		tr.T("day"),
		tr.T("day_type"),
		tr.T("check_in"),
		tr.T("check_out"),
		tr.T("break_minutes"),
		tr.T("hours_worked"),
		tr.T("ot_hours"),
		tr.T("night_hours"),
		tr.T("status"),
		tr.T("leave_status"),
	)
	for _, d := range s.Days {
		var status, leaveStatus string
		if d.InStatus != nil {
			status = tr.T("status_" + string(*d.InStatus))
		}
		if d.LeaveType != nil {
			leaveStatus = tr.T("leave_" + string(*d.LeaveType))
		}
		daily.append(
			d.Date.Format(time.DateOnly),
			tr.Weekday(d.Date.Weekday()),
			tr.T("day_"+string(d.Kind)),
			clock(d.CheckIn, loc),
			clock(d.CheckOut, loc),
			d.BreakMinutes,
			hours(d.WorkedHours),
			hours(d.OvertimeHours),
			hours(d.NightHours),
			status,
			leaveStatus,
		)
	}
	if daily.err != nil {
		return nil, daily.err
	}

	summaryName := tr.T("summary")
	if _, err := f.NewSheet(summaryName); err != nil {
		return nil, err
	}
	sum := &sheetWriter{f: f, sheet: summaryName}
	sum.append(tr.T("employee_id"), s.EmployeeCode)
	sum.append(tr.T("name"), s.EmployeeName)
	sum.append(tr.T("department"), s.Department)
	sum.append(tr.T("period"), period(s.PeriodStart, s.PeriodEnd))
	sum.blank()
	sum.append(tr.T("total_days_in_period"), s.TotalDays)
	sum.append(tr.T("working_days_available"), s.WorkingDays)
	sum.append(tr.T("weekends"), s.WeekendDays)
	sum.append(tr.T("public_holidays"), s.HolidayDays)
	sum.append(tr.T("scheduled_days"), s.ScheduledDays)
	sum.append(tr.T("days_present"), s.DaysPresent)
	sum.append(tr.T("non_working_days_worked"), s.NonWorkingDaysWorked)
	sum.append(tr.T("total_hours_worked"), hours(s.WorkedHours))
	sum.append(tr.T("total_overtime_hours"), hours(s.OvertimeHours))
	sum.append(tr.T("total_night_hours"), hours(s.NightHours))
	sum.append(tr.T("paid_leave_days_used"), hours(s.PaidLeaveDays))
	sum.append(tr.T("unpaid_leave_days"), hours(s.UnpaidLeaveDays))
	sum.append(tr.T("comp_off_earned"), hours(s.CompOffEarned))
	sum.append(tr.T("comp_off_used"), hours(s.CompOffUsed))
	sum.append(tr.T("comp_off_expired"), hours(s.CompOffExpired))
	sum.append(tr.T("comp_off_balance"), hours(s.CompOffBalance))
	sum.append(tr.T("on_time_percentage"), percentage(s.OnTimePercentage, tr))
	if sum.err != nil {
		return nil, sum.err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("15:04")
}
