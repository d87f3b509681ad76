package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type overtimeRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.RequestRepository {
	return &overtimeRepositoryImpl{db: db}
}

const overtimeColumns = `
	id, company_id, employee_id, request_date, from_time, to_time, request_hours,
	reason, status, manager_id, manager_notes, approved_at, created_at, updated_at`

func scanOvertime(row pgx.Row) (overtime.Request, error) {
	var (
		req      overtime.Request
		from, to pgtype.Time
	)
	err := row.Scan(
		&req.ID, &req.CompanyID, &req.EmployeeID, &req.RequestDate, &from, &to, &req.RequestHours,
		&req.Reason, &req.Status, &req.ManagerID, &req.ManagerNotes, &req.ApprovedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return overtime.Request{}, err
	}
	req.FromTime = fromPgTime(from)
	req.ToTime = fromPgTime(to)
	return req, nil
}

func collectOvertime(rows pgx.Rows) ([]overtime.Request, error) {
	defer rows.Close()

	var requests []overtime.Request
	for rows.Next() {
		req, err := scanOvertime(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate overtime requests: %w", err)
	}
	return requests, nil
}

// Create implements overtime.RequestRepository.
func (r *overtimeRepositoryImpl) Create(ctx context.Context, req overtime.Request) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return overtime.Request{}, err
	}

	query := `
		INSERT INTO overtime_requests (
			id, company_id, employee_id, request_date, from_time, to_time, request_hours, reason, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + overtimeColumns

	created, err := scanOvertime(q.QueryRow(ctx, query,
		id,
		req.CompanyID,
		req.EmployeeID,
		req.RequestDate,
		toPgTime(req.FromTime),
		toPgTime(req.ToTime),
		req.RequestHours,
		req.Reason,
		req.Status,
	))
	if err != nil {
		return overtime.Request{}, fmt.Errorf("failed to create overtime request: %w", err)
	}
	return created, nil
}

// GetByID implements overtime.RequestRepository.
func (r *overtimeRepositoryImpl) GetByID(ctx context.Context, id string) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeColumns + ` FROM overtime_requests WHERE id = $1`

	req, err := scanOvertime(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return overtime.Request{}, overtime.ErrRequestNotFound
		}
		return overtime.Request{}, fmt.Errorf("failed to get overtime request: %w", err)
	}
	return req, nil
}

// ListApprovedForDate implements overtime.RequestRepository.
func (r *overtimeRepositoryImpl) ListApprovedForDate(ctx context.Context, employeeID string, date time.Time) ([]overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeColumns + `
		FROM overtime_requests
		WHERE employee_id = $1 AND request_date = $2 AND status = $3
		ORDER BY from_time, id`

	rows, err := q.Query(ctx, query, employeeID, date, overtime.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved overtime: %w", err)
	}
	return collectOvertime(rows)
}

// List implements overtime.RequestRepository.
func (r *overtimeRepositoryImpl) List(ctx context.Context, filter overtime.ListFilter) ([]overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1"}
	args := []any{filter.CompanyID}
	argIdx := 2

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("request_date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("request_date <= $%d", argIdx))
		args = append(args, *filter.To)
	}

	query := fmt.Sprintf(`SELECT %s
		FROM overtime_requests
		WHERE %s
		ORDER BY request_date DESC, from_time, id`, overtimeColumns, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query overtime requests: %w", err)
	}
	return collectOvertime(rows)
}

// Review implements overtime.RequestRepository. The status guard in the WHERE
// clause makes concurrent reviews of one request resolve to a single winner.
func (r *overtimeRepositoryImpl) Review(ctx context.Context, id string, status overtime.Status, managerID string, notes *string, reviewedAt time.Time) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_requests
		SET status = $2, manager_id = $3, manager_notes = $4,
			approved_at = CASE WHEN $2 = 'approved' THEN $5::timestamptz ELSE NULL END,
			updated_at = $5
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + overtimeColumns

	req, err := scanOvertime(q.QueryRow(ctx, query, id, status, managerID, notes, reviewedAt))
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return overtime.Request{}, fmt.Errorf("failed to review overtime request: %w", err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return overtime.Request{}, err
	}
	return overtime.Request{}, overtime.ErrRequestAlreadyProcessed
}
