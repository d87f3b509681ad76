package overtime

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
)

type fakeTx struct{}

func (fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTx) WithSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployees map[string]employee.Employee

func (f fakeEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f fakeEmployees) GetActiveByCompanyID(_ context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f {
		if emp.CompanyID == companyID {
			out = append(out, emp)
		}
	}
	return out, nil
}

type fakeSchedules map[string]schedule.Schedule

func scheduleKey(employeeID string, date time.Time) string {
	return employeeID + "/" + date.Format(time.DateOnly)
}

func (f fakeSchedules) GetForEmployeeOnDate(_ context.Context, employeeID string, date time.Time) (*schedule.Schedule, error) {
	s, ok := f[scheduleKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f fakeSchedules) ListForEmployee(_ context.Context, employeeID string, start, end time.Time) ([]schedule.Schedule, error) {
	return nil, nil
}

type fakeRequests struct {
	items []overtime.Request
	seq   int
}

func (f *fakeRequests) Create(_ context.Context, req overtime.Request) (overtime.Request, error) {
	f.seq++
	req.ID = fmt.Sprintf("req-%d", f.seq)
	f.items = append(f.items, req)
	return req, nil
}

func (f *fakeRequests) GetByID(_ context.Context, id string) (overtime.Request, error) {
	for _, r := range f.items {
		if r.ID == id {
			return r, nil
		}
	}
	return overtime.Request{}, overtime.ErrRequestNotFound
}

func (f *fakeRequests) ListApprovedForDate(_ context.Context, employeeID string, date time.Time) ([]overtime.Request, error) {
	var out []overtime.Request
	for _, r := range f.items {
		if r.EmployeeID == employeeID && r.Status == overtime.StatusApproved && r.RequestDate.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequests) List(_ context.Context, filter overtime.ListFilter) ([]overtime.Request, error) {
	var out []overtime.Request
	for _, r := range f.items {
		if filter.EmployeeID != "" && r.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRequests) Review(_ context.Context, id string, status overtime.Status, managerID string, notes *string, reviewedAt time.Time) (overtime.Request, error) {
	for i := range f.items {
		if f.items[i].ID != id {
			continue
		}
		if f.items[i].Status != overtime.StatusPending {
			return overtime.Request{}, overtime.ErrRequestAlreadyProcessed
		}
		f.items[i].Status = status
		f.items[i].ManagerID = &managerID
		f.items[i].ManagerNotes = notes
		f.items[i].ApprovedAt = &reviewedAt
		return f.items[i], nil
	}
	return overtime.Request{}, overtime.ErrRequestNotFound
}
