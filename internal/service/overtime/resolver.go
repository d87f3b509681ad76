package overtime

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/config"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
)

type ResolverImpl struct {
	employee.EmployeeRepository
	schedule.ScheduleRepository
	overtime.RequestRepository
	noSchedule config.NoSchedulePolicy
}

func NewResolver(
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.ScheduleRepository,
	requestRepo overtime.RequestRepository,
	noSchedule config.NoSchedulePolicy,
) overtime.Resolver {
	return &ResolverImpl{
		EmployeeRepository: employeeRepo,
		ScheduleRepository: scheduleRepo,
		RequestRepository:  requestRepo,
		noSchedule:         noSchedule,
	}
}

// Resolve implements overtime.Resolver. It only reads; callers that need a
// consistent view run it inside a transaction.
func (r *ResolverImpl) Resolve(ctx context.Context, employeeID string, date time.Time) (overtime.ResolvedWindows, error) {
	emp, err := r.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return overtime.ResolvedWindows{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if err := emp.CheckHourCaps(); err != nil {
		return overtime.ResolvedWindows{}, fmt.Errorf("employee %s: %w", emp.ID, err)
	}

	sched, err := r.ScheduleRepository.GetForEmployeeOnDate(ctx, employeeID, date)
	if err != nil {
		return overtime.ResolvedWindows{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	requests, err := r.RequestRepository.ListApprovedForDate(ctx, employeeID, date)
	if err != nil {
		return overtime.ResolvedWindows{}, fmt.Errorf("failed to list approved overtime: %w", err)
	}

	resolved := overtime.ResolvedWindows{
		EmployeeID: employeeID,
		Date:       date,
		Schedule:   sched,
		Approved:   make([]overtime.ApprovedWindow, 0, len(requests)),
	}

	switch {
	case sched != nil:
		resolved.Baseline = overtime.BaselineSchedule
		resolved.BaseHours = sched.NetHours()
	case r.noSchedule == config.NoScheduleNoOvertime:
		resolved.Baseline = overtime.BaselineNoOvertime
		resolved.BaseHours = emp.DailyMaxHours
	default:
		resolved.Baseline = overtime.BaselineDailyMax
		resolved.BaseHours = emp.DailyMaxHours
	}

	for _, req := range requests {
		if req.Status != overtime.StatusApproved {
			continue
		}
		resolved.Approved = append(resolved.Approved, overtime.ApprovedWindow{
			RequestID: req.ID,
			From:      req.FromTime,
			To:        req.ToTime,
			Hours:     req.RequestHours,
		})
	}

	return resolved, nil
}
