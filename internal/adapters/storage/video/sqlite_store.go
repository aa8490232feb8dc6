package video

import (
	"context"

	"ofx/internal/adapters/storage"
	domain "ofx/internal/domain/video"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new VideoStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a Video. Videos are immutable once uploaded.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Create(ctx context.Context, entity domain.Video) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO videos (id, title, duration, amount, description, file_path, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		entity.ID,
		entity.Title,
		entity.Duration,
		entity.Amount,
		entity.Description,
		entity.FilePath,
		storage.FormatTime(entity.CreatedAt),
	)
	return err
}

// List returns every Video in upload order.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Video, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, duration, amount, description, file_path, created_at FROM videos ORDER BY created_at ASC, rowid ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Video
	for rows.Next() {
		var v domain.Video
		var createdAt string
		if err := rows.Scan(&v.ID, &v.Title, &v.Duration, &v.Amount, &v.Description, &v.FilePath, &createdAt); err != nil {
			return nil, err
		}
		v.CreatedAt, _ = storage.ParseTime(createdAt)
		results = append(results, v)
	}
	return results, rows.Err()
}

// Count returns the number of videos.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM videos").Scan(&n)
	return n, err
}
