package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveColumns = `
	id, company_id, employee_id, leave_type, start_date, end_date, half_day, reason,
	status, manager_id, manager_notes, reviewed_at, created_at, updated_at`

func scanLeave(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.CompanyID, &req.EmployeeID, &req.Type, &req.StartDate, &req.EndDate, &req.HalfDay, &req.Reason,
		&req.Status, &req.ManagerID, &req.ManagerNotes, &req.ReviewedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.Request{}, err
	}

	query := `
		INSERT INTO leave_requests (
			id, company_id, employee_id, leave_type, start_date, end_date, half_day, reason, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + leaveColumns

	created, err := scanLeave(q.QueryRow(ctx, query,
		id,
		req.CompanyID,
		req.EmployeeID,
		req.Type,
		req.StartDate,
		req.EndDate,
		req.HalfDay,
		req.Reason,
		req.Status,
	))
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id = $1`

	req, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

// HasOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3 AND end_date >= $2
			  AND id::text <> $4
		)`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	return exists, nil
}

// ListForEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListForEmployee(ctx context.Context, employeeID string, start, end time.Time, statuses ...leave.Status) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	wanted := make([]string, 0, len(statuses))
	for _, s := range statuses {
		wanted = append(wanted, string(s))
	}

	query := `SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		  AND start_date <= $3 AND end_date >= $2
		  AND (cardinality($4::text[]) = 0 OR status = ANY($4::text[]))
		ORDER BY start_date, created_at, id`

	rows, err := q.Query(ctx, query, employeeID, start, end, wanted)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}
	return requests, nil
}

// Review implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Review(ctx context.Context, id string, status leave.Status, managerID string, notes *string, reviewedAt time.Time) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, manager_id = $3, manager_notes = $4, reviewed_at = $5, updated_at = $5
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + leaveColumns

	req, err := scanLeave(q.QueryRow(ctx, query, id, status, managerID, notes, reviewedAt))
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return leave.Request{}, fmt.Errorf("failed to review leave request: %w", err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return leave.Request{}, err
	}
	return leave.Request{}, leave.ErrLeaveRequestAlreadyProcessed
}
