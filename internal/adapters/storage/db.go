package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// DSN builds the connection string for a SQLite database file with WAL mode,
// foreign keys and a busy timeout.
func DSN(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
}

// Open opens and pings the SQLite database at path.
// PRE: the "sqlite" driver is registered (import modernc.org/sqlite)
// POST: Returns a pooled connection or an error
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return db, nil
}

// migration is one step of the schema history.
type migration struct {
	version int
	name    string
	sql     string
}

// migrations must only ever be appended to.
var migrations = []migration{
	{1, "baseline", schemaV1},
	{2, "withdrawal_decided_at", `ALTER TABLE withdrawals ADD COLUMN decided_at TEXT;`},
}

const schemaV1 = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	referral_id TEXT REFERENCES users(id),
	is_admin INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_users_referral_id ON users(referral_id);

CREATE TABLE IF NOT EXISTS videos (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	duration TEXT NOT NULL,
	amount TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	file_path TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS earnings (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	amount NUMERIC NOT NULL,
	type TEXT NOT NULL CHECK (type IN ('CPA', 'Referral Overflow', 'Referral Bonus', 'Video Reward')),
	created_at TEXT NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_earnings_user_id ON earnings(user_id);

CREATE TABLE IF NOT EXISTS withdrawals (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	amount NUMERIC NOT NULL,
	status TEXT NOT NULL CHECK (status IN ('pending', 'approved', 'rejected')),
	requested_at TEXT NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_withdrawals_user_id ON withdrawals(user_id);
CREATE INDEX IF NOT EXISTS idx_withdrawals_status ON withdrawals(status);
`

// LatestSchemaVersion returns the version the newest migration produces.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the currently applied schema version (0 when unmigrated).
func SchemaVersion(db *sql.DB) (int, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return 0, fmt.Errorf("failed to create schema_version: %w", err)
	}
	var version int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// MigrateDB applies every migration newer than the stored schema version.
// Each migration runs in its own transaction together with its version row.
// PRE: db is a valid database connection
// POST: Schema is at LatestSchemaVersion()
func MigrateDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
	}
	return nil
}

func applyMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.sql); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version, name, applied_at) VALUES (?, ?, ?)",
		m.version, m.name, FormatTime(time.Now())); err != nil {
		return err
	}
	return tx.Commit()
}
