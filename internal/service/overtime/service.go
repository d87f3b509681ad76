package overtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

type OvertimeServiceImpl struct {
	db database.Transactor
	overtime.RequestRepository
	employee.EmployeeRepository
	resolver overtime.Resolver
	now      func() time.Time
}

func NewOvertimeService(
	db database.Transactor,
	requestRepo overtime.RequestRepository,
	employeeRepo employee.EmployeeRepository,
	resolver overtime.Resolver,
) overtime.Service {
	return &OvertimeServiceImpl{
		db:                 db,
		RequestRepository:  requestRepo,
		EmployeeRepository: employeeRepo,
		resolver:           resolver,
		now:                time.Now,
	}
}

// companyEmployee loads an employee and hides employees of other companies
// behind ErrEmployeeNotFound.
func companyEmployee(ctx context.Context, repo employee.EmployeeRepository, companyID, employeeID string) (employee.Employee, error) {
	emp, err := repo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.BelongsTo(companyID) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// Submit implements overtime.Service.
func (s *OvertimeServiceImpl) Submit(ctx context.Context, req overtime.SubmitRequest) (overtime.Request, error) {
	if err := req.Validate(); err != nil {
		return overtime.Request{}, err
	}

	emp, err := companyEmployee(ctx, s.EmployeeRepository, req.CompanyID, req.EmployeeID)
	if err != nil {
		return overtime.Request{}, err
	}

	request := req.ToRequest()
	request.CompanyID = emp.CompanyID

	created, err := s.RequestRepository.Create(ctx, request)
	if err != nil {
		return overtime.Request{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	slog.Info("overtime request submitted",
		"request_id", created.ID,
		"employee_id", created.EmployeeID,
		"date", created.RequestDate.Format(time.DateOnly),
		"hours", created.RequestHours.String(),
	)
	return created, nil
}

// Approve implements overtime.Service.
func (s *OvertimeServiceImpl) Approve(ctx context.Context, req overtime.ReviewRequest) (overtime.Request, error) {
	return s.review(ctx, req, overtime.StatusApproved)
}

// Reject implements overtime.Service.
func (s *OvertimeServiceImpl) Reject(ctx context.Context, req overtime.ReviewRequest) (overtime.Request, error) {
	return s.review(ctx, req, overtime.StatusRejected)
}

func (s *OvertimeServiceImpl) review(ctx context.Context, req overtime.ReviewRequest, status overtime.Status) (overtime.Request, error) {
	if err := req.Validate(); err != nil {
		return overtime.Request{}, err
	}

	var reviewed overtime.Request
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		existing, err := s.RequestRepository.GetByID(ctx, req.ID)
		if err != nil {
			return fmt.Errorf("failed to get overtime request: %w", err)
		}
		if req.CompanyID != "" && existing.CompanyID != req.CompanyID {
			return overtime.ErrRequestNotFound
		}
		if existing.EmployeeID == req.ManagerID {
			return validator.Single("id", "managers cannot review their own overtime request")
		}
		if existing.Status != overtime.StatusPending {
			return overtime.ErrRequestAlreadyProcessed
		}

		reviewed, err = s.RequestRepository.Review(ctx, req.ID, status, req.ManagerID, req.Notes, s.now().UTC())
		if err != nil {
			return fmt.Errorf("failed to review overtime request: %w", err)
		}
		return nil
	})
	if err != nil {
		return overtime.Request{}, err
	}

	slog.Info("overtime request reviewed",
		"request_id", reviewed.ID,
		"status", reviewed.Status,
		"manager_id", req.ManagerID,
	)
	return reviewed, nil
}

// List implements overtime.Service.
func (s *OvertimeServiceImpl) List(ctx context.Context, filter overtime.ListFilter) ([]overtime.Request, error) {
	if filter.EmployeeID != "" {
		if _, err := companyEmployee(ctx, s.EmployeeRepository, filter.CompanyID, filter.EmployeeID); err != nil {
			return nil, err
		}
	}

	requests, err := s.RequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	return requests, nil
}

// ResolveWindows implements overtime.Service.
func (s *OvertimeServiceImpl) ResolveWindows(ctx context.Context, req overtime.ResolveRequest) (overtime.ResolvedWindows, error) {
	if err := req.Validate(); err != nil {
		return overtime.ResolvedWindows{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	var resolved overtime.ResolvedWindows
	err := s.db.WithSnapshot(ctx, func(ctx context.Context) error {
		if _, err := companyEmployee(ctx, s.EmployeeRepository, req.CompanyID, req.EmployeeID); err != nil {
			return err
		}
		var err error
		resolved, err = s.resolver.Resolve(ctx, req.EmployeeID, date)
		return err
	})
	if err != nil {
		return overtime.ResolvedWindows{}, err
	}
	return resolved, nil
}
