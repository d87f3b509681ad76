package compoff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/compoff"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

var endOfTime = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

type CompOffServiceImpl struct {
	db database.Transactor
	compoff.LedgerRepository
	employee.EmployeeRepository
	expiryMonths int
	loc          *time.Location
	now          func() time.Time
}

func NewCompOffService(
	db database.Transactor,
	ledgerRepo compoff.LedgerRepository,
	employeeRepo employee.EmployeeRepository,
	expiryMonths int,
	loc *time.Location,
) compoff.CompOffService {
	if loc == nil {
		loc = time.UTC
	}
	return &CompOffServiceImpl{
		db:                 db,
		LedgerRepository:   ledgerRepo,
		EmployeeRepository: employeeRepo,
		expiryMonths:       expiryMonths,
		loc:                loc,
		now:                time.Now,
	}
}

func (c *CompOffServiceImpl) companyEmployee(ctx context.Context, companyID, employeeID string) (employee.Employee, error) {
	emp, err := c.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.BelongsTo(companyID) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (c *CompOffServiceImpl) today() time.Time {
	now := c.now().In(c.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Grant implements compoff.CompOffService.
func (c *CompOffServiceImpl) Grant(ctx context.Context, req compoff.GrantRequest) (compoff.Entry, error) {
	if err := req.Validate(); err != nil {
		return compoff.Entry{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	var entry compoff.Entry
	err := c.db.WithTx(ctx, func(ctx context.Context) error {
		emp, err := c.companyEmployee(ctx, req.CompanyID, req.EmployeeID)
		if err != nil {
			return err
		}
		if err := c.LedgerRepository.LockEmployee(ctx, emp.ID); err != nil {
			return fmt.Errorf("failed to lock comp-off ledger: %w", err)
		}

		entry = compoff.Entry{
			CompanyID:  emp.CompanyID,
			EmployeeID: emp.ID,
			EntryDate:  date,
			Kind:       compoff.KindEarned,
			Days:       req.Days,
			Reason:     req.Reason,
		}
		if req.GrantedBy != "" {
			entry.CreatedBy = &req.GrantedBy
		}

		entry, err = c.LedgerRepository.Append(ctx, entry)
		if err != nil {
			return fmt.Errorf("failed to append comp-off entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return compoff.Entry{}, err
	}

	slog.Info("comp-off granted",
		"employee_id", entry.EmployeeID,
		"date", req.Date,
		"days", entry.Days.String(),
	)
	return entry, nil
}

// Use implements compoff.CompOffService. The use is rejected when it would
// leave any used day without an unexpired earned day to draw from, now or
// against entries already dated after it.
func (c *CompOffServiceImpl) Use(ctx context.Context, req compoff.UseRequest) (compoff.Entry, error) {
	if err := req.Validate(); err != nil {
		return compoff.Entry{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	var entry compoff.Entry
	err := c.db.WithTx(ctx, func(ctx context.Context) error {
		emp, err := c.companyEmployee(ctx, req.CompanyID, req.EmployeeID)
		if err != nil {
			return err
		}
		if err := c.LedgerRepository.LockEmployee(ctx, emp.ID); err != nil {
			return fmt.Errorf("failed to lock comp-off ledger: %w", err)
		}

		entries, err := c.LedgerRepository.ListForEmployee(ctx, emp.ID, endOfTime)
		if err != nil {
			return fmt.Errorf("failed to list comp-off entries: %w", err)
		}

		entry = compoff.Entry{
			CompanyID:  emp.CompanyID,
			EmployeeID: emp.ID,
			EntryDate:  date,
			Kind:       compoff.KindUsed,
			Days:       req.Days,
			Reason:     req.Reason,
		}

		horizon := date
		for _, e := range entries {
			if e.EntryDate.After(horizon) {
				horizon = e.EntryDate
			}
		}
		before, err := compoff.ComputeBalance(emp.ID, entries, horizon, c.expiryMonths)
		if err != nil {
			return err
		}
		after, err := compoff.ComputeBalance(emp.ID, append(entries, entry), horizon, c.expiryMonths)
		if err != nil {
			return err
		}
		if after.Unallocated.GreaterThan(before.Unallocated) {
			return compoff.ErrInsufficientBalance
		}

		entry, err = c.LedgerRepository.Append(ctx, entry)
		if err != nil {
			return fmt.Errorf("failed to append comp-off entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return compoff.Entry{}, err
	}

	slog.Info("comp-off used",
		"employee_id", entry.EmployeeID,
		"date", req.Date,
		"days", entry.Days.String(),
	)
	return entry, nil
}

// Balance implements compoff.CompOffService.
func (c *CompOffServiceImpl) Balance(ctx context.Context, req compoff.BalanceRequest) (compoff.Balance, error) {
	if err := req.Validate(); err != nil {
		return compoff.Balance{}, err
	}
	asOf := c.today()
	if req.AsOf != "" {
		asOf, _ = validator.IsValidDate(req.AsOf)
	}

	var balance compoff.Balance
	err := c.db.WithSnapshot(ctx, func(ctx context.Context) error {
		emp, err := c.companyEmployee(ctx, req.CompanyID, req.EmployeeID)
		if err != nil {
			return err
		}
		entries, err := c.LedgerRepository.ListForEmployee(ctx, emp.ID, asOf)
		if err != nil {
			return fmt.Errorf("failed to list comp-off entries: %w", err)
		}
		balance, err = compoff.ComputeBalance(emp.ID, entries, asOf, c.expiryMonths)
		return err
	})
	if err != nil {
		return compoff.Balance{}, err
	}
	return balance, nil
}

// ExpireDue implements compoff.CompOffService. Each employee is handled in its
// own transaction; one failure does not stop the others.
func (c *CompOffServiceImpl) ExpireDue(ctx context.Context, asOf time.Time) (int, error) {
	asOf = time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	ids, err := c.LedgerRepository.ListEmployeeIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list comp-off employees: %w", err)
	}

	expired := 0
	var errs []error
	for _, id := range ids {
		wrote, err := c.expireEmployee(ctx, id, asOf)
		if err != nil {
			slog.Error("failed to expire comp-off", "employee_id", id, "error", err)
			errs = append(errs, fmt.Errorf("employee %s: %w", id, err))
			continue
		}
		if wrote {
			expired++
		}
	}
	return expired, errors.Join(errs...)
}

func (c *CompOffServiceImpl) expireEmployee(ctx context.Context, employeeID string, asOf time.Time) (bool, error) {
	wrote := false
	err := c.db.WithTx(ctx, func(ctx context.Context) error {
		if err := c.LedgerRepository.LockEmployee(ctx, employeeID); err != nil {
			return fmt.Errorf("failed to lock comp-off ledger: %w", err)
		}
		entries, err := c.LedgerRepository.ListForEmployee(ctx, employeeID, asOf)
		if err != nil {
			return fmt.Errorf("failed to list comp-off entries: %w", err)
		}
		bal, err := compoff.ComputeBalance(employeeID, entries, asOf, c.expiryMonths)
		if err != nil {
			return err
		}

		due := bal.Expired.Sub(bal.RecordedExpired)
		if !due.IsPositive() {
			return nil
		}

		companyID := ""
		if len(entries) > 0 {
			companyID = entries[0].CompanyID
		}
		if _, err := c.LedgerRepository.Append(ctx, compoff.Entry{
			CompanyID:  companyID,
			EmployeeID: employeeID,
			EntryDate:  asOf,
			Kind:       compoff.KindExpired,
			Days:       due,
			Reason:     "unused comp-off expired",
		}); err != nil {
			return fmt.Errorf("failed to append expired entry: %w", err)
		}
		wrote = true

		slog.Info("comp-off expired",
			"employee_id", employeeID,
			"days", due.String(),
			"as_of", asOf.Format(time.DateOnly),
		)
		return nil
	})
	return wrote, err
}
