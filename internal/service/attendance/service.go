package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/config"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

// maxShift bounds one check-in to check-out span.
const maxShift = 24 * time.Hour

type AttendanceServiceImpl struct {
	db database.Transactor
	attendance.AttendanceRepository
	employee.EmployeeRepository
	schedule.ScheduleRepository
	resolver   overtime.Resolver
	calculator overtime.Calculator
	cfg        config.AttendanceConfig
	loc        *time.Location
}

func NewAttendanceService(
	db database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.ScheduleRepository,
	resolver overtime.Resolver,
	calculator overtime.Calculator,
	cfg config.AttendanceConfig,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		ScheduleRepository:   scheduleRepo,
		resolver:             resolver,
		calculator:           calculator,
		cfg:                  cfg,
		loc:                  loc,
	}
}

func (a *AttendanceServiceImpl) companyEmployee(ctx context.Context, companyID, employeeID string) (employee.Employee, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.BelongsTo(companyID) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	checkIn, _ := validator.ParseMoment(req.CheckInTime, date, a.loc)
	checkIn = checkIn.In(a.loc)

	localDate := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, a.loc)
	if checkIn.Before(localDate) || !checkIn.Before(localDate.AddDate(0, 0, 1)) {
		return attendance.Attendance{}, validator.Single("check_in_time", "check_in_time must fall on date")
	}

	emp, err := a.companyEmployee(ctx, req.CompanyID, req.EmployeeID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	activeSchedule, err := a.ScheduleRepository.GetForEmployeeOnDate(ctx, emp.ID, date)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	record := attendance.Attendance{
		CompanyID:  emp.CompanyID,
		EmployeeID: emp.ID,
		Date:       date,
		CheckIn:    &checkIn,
		InStatus:   attendance.StatusOnTime,
	}

	if activeSchedule != nil {
		record.ScheduleID = &activeSchedule.ID
		scheduledIn, _ := activeSchedule.Window(a.loc)
		graceLimit := scheduledIn.Add(time.Duration(a.cfg.GraceMinutes) * time.Minute)
		if checkIn.After(graceLimit) {
			record.InStatus = attendance.StatusLate
		}
	}

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.Attendance{}, err
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	slog.Info("employee checked in",
		"employee_id", created.EmployeeID,
		"date", req.Date,
		"status", created.InStatus,
	)
	return created, nil
}

// RecordCheckout implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordCheckout(ctx context.Context, req attendance.CheckOutRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	_, isTimestamp := validator.IsValidDateTime(req.CheckOutTime)

	var completed attendance.Attendance
	err := a.db.WithTx(ctx, func(ctx context.Context) error {
		emp, err := a.companyEmployee(ctx, req.CompanyID, req.EmployeeID)
		if err != nil {
			return err
		}

		record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return validator.Single("check_in", "no check-in recorded for this date")
			}
			return fmt.Errorf("failed to get attendance: %w", err)
		}
		if record.CheckIn == nil {
			return validator.Single("check_in", "no check-in recorded for this date")
		}
		if record.CheckOut != nil {
			return attendance.ErrAlreadyCheckedOut
		}

		checkIn := record.CheckIn.In(a.loc)
		checkOut, _ := validator.ParseMoment(req.CheckOutTime, checkIn, a.loc)
		checkOut = checkOut.In(a.loc)
		if checkOut.Before(checkIn) {
			// A clock value earlier than the check-in is the next morning.
			if isTimestamp {
				return validator.Single("check_out_time", "check_out_time must not be before the check-in")
			}
			checkOut = checkOut.AddDate(0, 0, 1)
		}

		span := checkOut.Sub(checkIn)
		switch {
		case span <= 0:
			return validator.Single("check_out_time", "check_out_time must be after the check-in")
		case span > maxShift:
			return validator.Single("check_out_time", "shift must not exceed 24 hours")
		}

		windows, err := a.resolver.Resolve(ctx, emp.ID, date)
		if err != nil {
			return fmt.Errorf("failed to resolve overtime windows: %w", err)
		}

		breakMinutes, err := a.breakFor(req, windows, emp, span)
		if err != nil {
			return err
		}

		calc := a.calculator.Calculate(overtime.CalculationInput{
			CheckIn:      checkIn,
			CheckOut:     checkOut,
			BreakMinutes: breakMinutes,
			Windows:      windows,
		})

		outStatus := attendance.StatusOnTime
		if windows.Schedule != nil {
			_, scheduledOut := windows.Schedule.Window(a.loc)
			if calc.CheckOut.Before(scheduledOut) {
				outStatus = attendance.StatusEarly
			}
		}

		record.CheckOut = &calc.CheckOut
		record.BreakMinutes = breakMinutes
		record.WorkedHours = calc.WorkedHours
		record.OvertimeHours = calc.OvertimeHours
		record.NightHours = calc.NightHours
		record.ApprovedOvertimeHours = calc.ApprovedBudget
		record.OutStatus = &outStatus
		if record.ScheduleID == nil && windows.Schedule != nil {
			record.ScheduleID = &windows.Schedule.ID
		}

		completed, err = a.AttendanceRepository.CompleteCheckout(ctx, record)
		if err != nil {
			if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
				return err
			}
			return fmt.Errorf("failed to complete checkout: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	slog.Info("employee checked out",
		"employee_id", completed.EmployeeID,
		"date", req.Date,
		"worked_hours", completed.WorkedHours.String(),
		"overtime_hours", completed.OvertimeHours.String(),
		"night_hours", completed.NightHours.String(),
	)
	return completed, nil
}

// breakFor picks the break to deduct: the reported one, else the scheduled
// break, else the employee default, else the configured default. A reported
// break must be shorter than the span; a defaulted one is skipped on a day too
// short to hold it.
func (a *AttendanceServiceImpl) breakFor(req attendance.CheckOutRequest, windows overtime.ResolvedWindows, emp employee.Employee, span time.Duration) (int, error) {
	if req.BreakMinutes != nil {
		if time.Duration(*req.BreakMinutes)*time.Minute >= span {
			return 0, validator.Single("break_minutes", "break_minutes must be shorter than the worked span")
		}
		return *req.BreakMinutes, nil
	}

	breakMinutes := a.cfg.DefaultBreakMinutes
	switch {
	case windows.Schedule != nil:
		breakMinutes = windows.Schedule.BreakMinutes
	case emp.DefaultBreakMinutes > 0:
		breakMinutes = emp.DefaultBreakMinutes
	}
	if time.Duration(breakMinutes)*time.Minute >= span {
		return 0, nil
	}
	return breakMinutes, nil
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, req attendance.GetRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}
	if _, err := a.companyEmployee(ctx, req.CompanyID, req.EmployeeID); err != nil {
		return attendance.Attendance{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return record, nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, req attendance.ListRequest) ([]attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := a.companyEmployee(ctx, req.CompanyID, req.EmployeeID); err != nil {
		return nil, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)
	records, err := a.AttendanceRepository.ListForEmployee(ctx, req.EmployeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}
