package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/workforce-backend-go/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, migrations.Apply(ctx, db.Pool))
	truncateAll(t, db)
	return db
}

func truncateAll(t *testing.T, db *database.DB) {
	t.Helper()

	tables := []string{
		"comp_off_ledger",
		"leave_requests",
		"attendances",
		"overtime_requests",
		"schedules",
		"shifts",
		"employees",
		"roles",
		"departments",
	}
	for _, table := range tables {
		_, err := db.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "truncate %s", table)
	}
}

type seededEmployee struct {
	ID        string
	CompanyID string
}

func seedEmployee(t *testing.T, db *database.DB, code string) seededEmployee {
	t.Helper()

	emp := seededEmployee{ID: uuid.Must(uuid.NewV7()).String(), CompanyID: uuid.Must(uuid.NewV7()).String()}
	_, err := db.Exec(context.Background(), `
		INSERT INTO employees (
			id, company_id, employee_code, full_name, weekly_hours, daily_max_hours,
			default_break_minutes, annual_paid_leave_days, hire_date
		) VALUES ($1, $2, $3, $4, 40, 8, 60, 12, $5)`,
		emp.ID, emp.CompanyID, code, "Employee "+code, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return emp
}

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}
