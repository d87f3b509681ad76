package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const microsecondsPerMinute = int64(time.Minute / time.Microsecond)

func toPgTime(t schedule.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t) * microsecondsPerMinute, Valid: true}
}

func fromPgTime(t pgtype.Time) schedule.TimeOfDay {
	return schedule.TimeOfDay(t.Microseconds / microsecondsPerMinute)
}

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

const scheduleSelect = `
	SELECT s.id, s.employee_id, s.shift_id, COALESCE(sh.name, ''), s.date,
		   s.start_time, s.end_time, s.break_minutes, s.status
	FROM schedules s
	LEFT JOIN shifts sh ON sh.id = s.shift_id`

func scanSchedule(row pgx.Row) (schedule.Schedule, error) {
	var (
		sc         schedule.Schedule
		start, end pgtype.Time
	)
	err := row.Scan(
		&sc.ID, &sc.EmployeeID, &sc.ShiftID, &sc.ShiftName, &sc.Date,
		&start, &end, &sc.BreakMinutes, &sc.Status,
	)
	if err != nil {
		return schedule.Schedule{}, err
	}
	sc.StartTime = fromPgTime(start)
	sc.EndTime = fromPgTime(end)
	return sc, nil
}

// GetForEmployeeOnDate implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetForEmployeeOnDate(ctx context.Context, employeeID string, date time.Time) (*schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := scheduleSelect + `
		WHERE s.employee_id = $1 AND s.date = $2 AND s.status = $3
		ORDER BY s.start_time, s.id
		LIMIT 1`

	sc, err := scanSchedule(q.QueryRow(ctx, query, employeeID, date, schedule.StatusScheduled))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &sc, nil
}

// ListForEmployee implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListForEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := scheduleSelect + `
		WHERE s.employee_id = $1 AND s.date BETWEEN $2 AND $3 AND s.status = $4
		ORDER BY s.date, s.start_time, s.id`

	rows, err := q.Query(ctx, query, employeeID, start, end, schedule.StatusScheduled)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		sc, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedules: %w", err)
	}
	return schedules, nil
}
