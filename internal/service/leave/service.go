package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type LeaveServiceImpl struct {
	db database.Transactor
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	calculator *QuotaCalculator
	now        func() time.Time
}

func NewLeaveService(
	db database.Transactor,
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	calculator *QuotaCalculator,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                     db,
		LeaveRequestRepository: leaveRequestRepo,
		EmployeeRepository:     employeeRepo,
		calculator:             calculator,
		now:                    time.Now,
	}
}

func (l *LeaveServiceImpl) companyEmployee(ctx context.Context, companyID, employeeID string) (employee.Employee, error) {
	emp, err := l.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.BelongsTo(companyID) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// Submit implements leave.LeaveService.
func (l *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	request := req.ToRequest()
	if !l.calculator.ChargeableDays(request, request.StartDate, request.EndDate).IsPositive() {
		return leave.Request{}, validator.Single("start_date", "leave must cover at least one working day")
	}

	var created leave.Request
	err := l.db.WithTx(ctx, func(ctx context.Context) error {
		emp, err := l.companyEmployee(ctx, req.CompanyID, req.EmployeeID)
		if err != nil {
			return err
		}
		request.CompanyID = emp.CompanyID

		overlaps, err := l.LeaveRequestRepository.HasOverlap(ctx, emp.ID, request.StartDate, request.EndDate, "")
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave: %w", err)
		}
		if overlaps {
			return leave.ErrOverlappingLeave
		}

		if request.Type == leave.TypePaid {
			for year := request.StartDate.Year(); year <= request.EndDate.Year(); year++ {
				balance, err := l.balance(ctx, emp, year)
				if err != nil {
					return err
				}
				from, to := yearRange(year)
				if l.calculator.ChargeableDays(request, from, to).GreaterThan(balance.Remaining) {
					return leave.ErrInsufficientBalance
				}
			}
		}

		created, err = l.LeaveRequestRepository.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.Request{}, err
	}

	slog.Info("leave request submitted",
		"request_id", created.ID,
		"employee_id", created.EmployeeID,
		"type", created.Type,
		"start_date", created.StartDate.Format(time.DateOnly),
		"end_date", created.EndDate.Format(time.DateOnly),
	)
	return created, nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, req leave.ReviewRequest) (leave.Request, error) {
	return l.review(ctx, req, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, req leave.ReviewRequest) (leave.Request, error) {
	return l.review(ctx, req, leave.StatusRejected)
}

func (l *LeaveServiceImpl) review(ctx context.Context, req leave.ReviewRequest, status leave.Status) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	var reviewed leave.Request
	err := l.db.WithTx(ctx, func(ctx context.Context) error {
		existing, err := l.LeaveRequestRepository.GetByID(ctx, req.ID)
		if err != nil {
			return fmt.Errorf("failed to get leave request: %w", err)
		}
		if req.CompanyID != "" && existing.CompanyID != req.CompanyID {
			return leave.ErrLeaveRequestNotFound
		}
		if existing.EmployeeID == req.ManagerID {
			return validator.Single("id", "managers cannot review their own leave request")
		}
		if existing.Status != leave.StatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		reviewed, err = l.LeaveRequestRepository.Review(ctx, req.ID, status, req.ManagerID, req.Notes, l.now().UTC())
		if err != nil {
			return fmt.Errorf("failed to review leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.Request{}, err
	}

	slog.Info("leave request reviewed",
		"request_id", reviewed.ID,
		"status", reviewed.Status,
		"manager_id", req.ManagerID,
	)
	return reviewed, nil
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, req leave.ListRequest) ([]leave.Request, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := l.companyEmployee(ctx, req.CompanyID, req.EmployeeID); err != nil {
		return nil, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)
	statuses := []leave.Status{leave.StatusPending, leave.StatusApproved, leave.StatusRejected}
	if req.Status != "" {
		statuses = []leave.Status{leave.Status(req.Status)}
	}

	requests, err := l.LeaveRequestRepository.ListForEmployee(ctx, req.EmployeeID, start, end, statuses...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, nil
}

// Balance implements leave.LeaveService.
func (l *LeaveServiceImpl) Balance(ctx context.Context, req leave.BalanceRequest) (leave.Balance, error) {
	if err := req.Validate(); err != nil {
		return leave.Balance{}, err
	}

	var balance leave.Balance
	err := l.db.WithSnapshot(ctx, func(ctx context.Context) error {
		emp, err := l.companyEmployee(ctx, req.CompanyID, req.EmployeeID)
		if err != nil {
			return err
		}
		balance, err = l.balance(ctx, emp, req.Year)
		return err
	})
	if err != nil {
		return leave.Balance{}, err
	}
	return balance, nil
}

// balance charges approved and pending paid leave against the entitlement.
func (l *LeaveServiceImpl) balance(ctx context.Context, emp employee.Employee, year int) (leave.Balance, error) {
	from, to := yearRange(year)
	requests, err := l.LeaveRequestRepository.ListForEmployee(ctx, emp.ID, from, to, leave.StatusApproved, leave.StatusPending)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	balance := leave.Balance{
		EmployeeID:  emp.ID,
		Year:        year,
		Entitlement: l.calculator.Entitlement(emp, year),
		Used:        decimal.Zero,
		Pending:     decimal.Zero,
	}
	for _, r := range requests {
		if r.Type != leave.TypePaid {
			continue
		}
		days := l.calculator.ChargeableDays(r, from, to)
		switch r.Status {
		case leave.StatusApproved:
			balance.Used = balance.Used.Add(days)
		case leave.StatusPending:
			balance.Pending = balance.Pending.Add(days)
		}
	}
	balance.Remaining = balance.Entitlement.Sub(balance.Used).Sub(balance.Pending)
	return balance, nil
}

func yearRange(year int) (time.Time, time.Time) {
	return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
}
