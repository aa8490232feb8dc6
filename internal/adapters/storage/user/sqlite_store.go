package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ofx/internal/adapters/storage"
	domain "ofx/internal/domain/user"
)

const selectColumns = "SELECT id, name, email, password_hash, referral_id, is_admin, created_at FROM users"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new UserStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a User by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	return scanOne(row)
}

// GetByEmail retrieves a User by exact email.
// PRE: email is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE email = ?", email)
	return scanOne(row)
}

// Create inserts a new User. Users are never updated or deleted.
// PRE: entity has been validated and has a password hash
// POST: Entity is persisted; duplicate email returns domain.ErrDuplicateEmail
func (s *SQLiteStore) Create(ctx context.Context, entity domain.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var referralID any
	if entity.ReferralID != "" {
		referralID = entity.ReferralID
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, referral_id, is_admin, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		entity.ID,
		entity.Name,
		entity.Email,
		entity.PasswordHash,
		referralID,
		entity.IsAdmin,
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}

	return tx.Commit()
}

// List retrieves all Users in signup order.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY created_at ASC, rowid ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.User
	for rows.Next() {
		entity, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the total number of users.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM users")
}

// CountReferred returns the number of users who signed up with a referral code.
func (s *SQLiteStore) CountReferred(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM users WHERE referral_id IS NOT NULL")
}

// CountReferredBy returns the number of users referred by referrerID.
// PRE: referrerID is non-empty
// POST: Returns count >= 0
func (s *SQLiteStore) CountReferredBy(ctx context.Context, referrerID string) (int, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM users WHERE referral_id = ?", referrerID)
}

// CountAdmins returns the number of administrator accounts.
func (s *SQLiteStore) CountAdmins(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM users WHERE is_admin = 1")
}

func (s *SQLiteStore) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func scanOne(row *sql.Row) (domain.User, error) {
	entity, err := scanUser(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return entity, err
}

// scanUser extracts a User from a row scanner function.
func scanUser(scan func(dest ...any) error) (domain.User, error) {
	var entity domain.User
	var referralID sql.NullString
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.Email,
		&entity.PasswordHash,
		&referralID,
		&entity.IsAdmin,
		&createdAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	entity.ReferralID = referralID.String
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	return entity, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
