package earning

import (
	"context"

	"github.com/shopspring/decimal"

	"ofx/internal/adapters/storage"
	domain "ofx/internal/domain/earning"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new EarningStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts an Earning.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Create(ctx context.Context, entity domain.Earning) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO earnings (id, user_id, amount, type, created_at) VALUES (?, ?, ?, ?, ?)",
		entity.ID,
		entity.UserID,
		entity.Amount.String(),
		string(entity.Type),
		storage.FormatTime(entity.CreatedAt),
	)
	return err
}

// ListByUserID returns a user's earnings in the order they were recorded.
// PRE: userID is non-empty
// POST: Returns zero or more earnings
func (s *SQLiteStore) ListByUserID(ctx context.Context, userID string) ([]domain.Earning, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, amount, type, created_at FROM earnings WHERE user_id = ? ORDER BY created_at ASC, rowid ASC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Earning
	for rows.Next() {
		var e domain.Earning
		var typ, createdAt string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &typ, &createdAt); err != nil {
			return nil, err
		}
		e.Type = domain.Type(typ)
		e.CreatedAt, _ = storage.ParseTime(createdAt)
		results = append(results, e)
	}
	return results, rows.Err()
}

// SumByUserID returns the user's balance, zero when they have no earnings.
func (s *SQLiteStore) SumByUserID(ctx context.Context, userID string) (decimal.Decimal, error) {
	return s.sum(ctx, "SELECT COALESCE(SUM(amount), 0) FROM earnings WHERE user_id = ?", userID)
}

// Sum returns total earnings across all users.
func (s *SQLiteStore) Sum(ctx context.Context) (decimal.Decimal, error) {
	return s.sum(ctx, "SELECT COALESCE(SUM(amount), 0) FROM earnings")
}

// SumByType returns total earnings grouped by type. Types with no rows are absent.
func (s *SQLiteStore) SumByType(ctx context.Context) (map[domain.Type]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT type, COALESCE(SUM(amount), 0) FROM earnings GROUP BY type")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[domain.Type]decimal.Decimal)
	for rows.Next() {
		var typ string
		var total decimal.Decimal
		if err := rows.Scan(&typ, &total); err != nil {
			return nil, err
		}
		totals[domain.Type(typ)] = total.Round(2)
	}
	return totals, rows.Err()
}

func (s *SQLiteStore) sum(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total.Round(2), nil
}
