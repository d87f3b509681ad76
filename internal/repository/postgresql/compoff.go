package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/compoff"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
)

type compOffLedgerRepositoryImpl struct {
	db *database.DB
}

func NewCompOffLedgerRepository(db *database.DB) compoff.LedgerRepository {
	return &compOffLedgerRepositoryImpl{db: db}
}

const compOffColumns = `
	id, company_id, employee_id, entry_date, kind, days, reason, source_entry_id, created_by, created_at`

// Append implements compoff.LedgerRepository. Entries are never updated.
func (r *compOffLedgerRepositoryImpl) Append(ctx context.Context, entry compoff.Entry) (compoff.Entry, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return compoff.Entry{}, err
	}

	query := `
		INSERT INTO comp_off_ledger (
			id, company_id, employee_id, entry_date, kind, days, reason, source_entry_id, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + compOffColumns

	var created compoff.Entry
	err = q.QueryRow(ctx, query,
		id,
		entry.CompanyID,
		entry.EmployeeID,
		entry.EntryDate,
		entry.Kind,
		entry.Days,
		entry.Reason,
		entry.SourceEntryID,
		entry.CreatedBy,
	).Scan(
		&created.ID, &created.CompanyID, &created.EmployeeID, &created.EntryDate, &created.Kind,
		&created.Days, &created.Reason, &created.SourceEntryID, &created.CreatedBy, &created.CreatedAt,
	)
	if err != nil {
		return compoff.Entry{}, fmt.Errorf("failed to append comp-off entry: %w", err)
	}
	return created, nil
}

// LockEmployee implements compoff.LedgerRepository with a transaction scoped
// advisory lock. It must run inside WithTx.
func (r *compOffLedgerRepositoryImpl) LockEmployee(ctx context.Context, employeeID string) error {
	if _, ok := database.TxFromContext(ctx); !ok {
		return fmt.Errorf("comp-off ledger lock requires a transaction")
	}
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('comp_off:' || $1))`, employeeID); err != nil {
		return fmt.Errorf("failed to lock comp-off ledger: %w", err)
	}
	return nil
}

// ListForEmployee implements compoff.LedgerRepository.
func (r *compOffLedgerRepositoryImpl) ListForEmployee(ctx context.Context, employeeID string, until time.Time) ([]compoff.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + compOffColumns + `
		FROM comp_off_ledger
		WHERE employee_id = $1 AND entry_date <= $2
		ORDER BY entry_date, created_at, id`

	rows, err := q.Query(ctx, query, employeeID, until)
	if err != nil {
		return nil, fmt.Errorf("failed to query comp-off entries: %w", err)
	}
	defer rows.Close()

	var entries []compoff.Entry
	for rows.Next() {
		var e compoff.Entry
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.EmployeeID, &e.EntryDate, &e.Kind,
			&e.Days, &e.Reason, &e.SourceEntryID, &e.CreatedBy, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comp-off entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comp-off entries: %w", err)
	}
	return entries, nil
}

// ListEmployeeIDs implements compoff.LedgerRepository.
func (r *compOffLedgerRepositoryImpl) ListEmployeeIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT DISTINCT employee_id::text
		FROM comp_off_ledger
		WHERE kind = 'earned'
		ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to query comp-off employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comp-off employees: %w", err)
	}
	return ids, nil
}
