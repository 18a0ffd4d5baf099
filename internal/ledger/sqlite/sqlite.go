// Package sqlite provides a SQLite-backed implementation of the ledger.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/trilhaufpb/caixinha/internal/ledger"
	"github.com/trilhaufpb/caixinha/internal/models"
)

// Ensure Store implements ledger.Store
var _ ledger.Store = (*Store)(nil)

// Store implements ledger.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies database connectivity, for health probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// AddMember inserts a member at the end of the sheet's roster order,
// along with any payment statuses it already carries.
func (s *Store) AddMember(ctx context.Context, m *models.Member, sheet string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO members (id, sheet, name, email, position)
		 VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM members WHERE sheet = ?))`,
		id, sheet, m.Name, m.Email, sheet,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	for period, status := range m.PaymentStatus {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO payment_status (member_id, period, status) VALUES (?, ?, ?)",
			id, period, status,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment status: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetMembers returns all members on the sheet in roster order, each with
// its full period-status map.
func (s *Store) GetMembers(ctx context.Context, sheet string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email FROM members WHERE sheet = ? ORDER BY position",
		sheet,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	var ids []string
	for rows.Next() {
		var id string
		var m models.Member
		if err := rows.Scan(&id, &m.Name, &m.Email); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.PaymentStatus = make(map[string]string)
		members = append(members, m)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	for i, id := range ids {
		statusRows, err := s.db.QueryContext(ctx,
			"SELECT period, status FROM payment_status WHERE member_id = ?",
			id,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get payment status: %w", err)
		}

		for statusRows.Next() {
			var period, status string
			if err := statusRows.Scan(&period, &status); err != nil {
				statusRows.Close()
				return nil, fmt.Errorf("failed to scan payment status: %w", err)
			}
			members[i].PaymentStatus[period] = status
		}
		statusRows.Close()
		if err := statusRows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate payment status: %w", err)
		}
	}

	return members, nil
}

// GetUnpaidMembers returns the members whose status for the period does not
// normalize to paid, preserving roster order.
func (s *Store) GetUnpaidMembers(ctx context.Context, period, sheet string) ([]models.Member, error) {
	members, err := s.GetMembers(ctx, sheet)
	if err != nil {
		return nil, err
	}

	var unpaid []models.Member
	for i := range members {
		if !members[i].PaidFor(period) {
			unpaid = append(unpaid, members[i])
		}
	}
	return unpaid, nil
}

// MarkPaid sets the member's status for the period to "Paid".
func (s *Store) MarkPaid(ctx context.Context, name, period, sheet string) error {
	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM members WHERE sheet = ? AND name = ?",
		sheet, name,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", ledger.ErrMemberNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to look up member: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO payment_status (member_id, period, status) VALUES (?, ?, 'Paid')
		 ON CONFLICT (member_id, period) DO UPDATE SET status = 'Paid'`,
		id, period,
	)
	if err != nil {
		return fmt.Errorf("failed to mark %s as paid for %s: %w", name, period, err)
	}
	return nil
}
