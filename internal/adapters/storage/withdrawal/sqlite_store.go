package withdrawal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"ofx/internal/adapters/storage"
	domain "ofx/internal/domain/withdrawal"
)

const selectColumns = "SELECT id, user_id, amount, status, requested_at, decided_at FROM withdrawals"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new WithdrawalStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a Withdrawal.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Create(ctx context.Context, entity domain.Withdrawal) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO withdrawals (id, user_id, amount, status, requested_at, decided_at) VALUES (?, ?, ?, ?, ?, ?)",
		entity.ID,
		entity.UserID,
		entity.Amount.String(),
		string(entity.Status),
		storage.FormatTime(entity.RequestedAt),
		storage.NullTime(entity.DecidedAt),
	)
	return err
}

// GetByID retrieves a Withdrawal by its ID.
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Withdrawal, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	w, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Withdrawal{}, fmt.Errorf("withdrawal %s: %w", id, domain.ErrNotFound)
	}
	return w, err
}

// SaveDecision persists a decided withdrawal. The update only applies while
// the stored row is still pending.
// PRE: entity.Status is approved or rejected
// POST: Row carries the new status, or domain.ErrAlreadyDecided
// INVARIANT: terminal rows are never rewritten
func (s *SQLiteStore) SaveDecision(ctx context.Context, entity domain.Withdrawal) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE withdrawals SET status = ?, decided_at = ? WHERE id = ? AND status = ?",
		string(entity.Status),
		storage.NullTime(entity.DecidedAt),
		entity.ID,
		string(domain.StatusPending),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAlreadyDecided
	}
	return tx.Commit()
}

// List retrieves every Withdrawal in request order.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Withdrawal, error) {
	return s.list(ctx, selectColumns+" ORDER BY requested_at ASC, rowid ASC")
}

// ListByUserID retrieves a user's withdrawals in request order.
func (s *SQLiteStore) ListByUserID(ctx context.Context, userID string) ([]domain.Withdrawal, error) {
	return s.list(ctx, selectColumns+" WHERE user_id = ? ORDER BY requested_at ASC, rowid ASC", userID)
}

// ListByStatus retrieves withdrawals in the given status in request order.
func (s *SQLiteStore) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Withdrawal, error) {
	return s.list(ctx, selectColumns+" WHERE status = ? ORDER BY requested_at ASC, rowid ASC", string(status))
}

// SumByStatus totals withdrawal amounts in the given status, zero when none.
func (s *SQLiteStore) SumByStatus(ctx context.Context, status domain.Status) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM withdrawals WHERE status = ?", string(status)).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Round(2), nil
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Withdrawal, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Withdrawal
	for rows.Next() {
		w, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, w)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (domain.Withdrawal, error) {
	var w domain.Withdrawal
	var status, requestedAt string
	var decidedAt sql.NullString
	if err := row.Scan(&w.ID, &w.UserID, &w.Amount, &status, &requestedAt, &decidedAt); err != nil {
		return domain.Withdrawal{}, err
	}
	w.Status = domain.Status(status)
	w.RequestedAt, _ = storage.ParseTime(requestedAt)
	w.DecidedAt = storage.ParseNullTime(decidedAt)
	return w, nil
}
