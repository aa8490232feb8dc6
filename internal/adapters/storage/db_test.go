package storage

import (
	"database/sql"
	"sort"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
// A single connection keeps every statement on the same in-memory database.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expectedTables is the sorted list of tables after all migrations.
var expectedTables = []string{
	"earnings",
	"schema_version",
	"users",
	"videos",
	"withdrawals",
}

// TestMigrateDB_Fresh verifies all migrations apply cleanly to an empty database.
func TestMigrateDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB failed on fresh db: %v", err)
	}

	version, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != LatestSchemaVersion() {
		t.Errorf("version = %d, want %d", version, LatestSchemaVersion())
	}

	tables := getTableNames(t, db)
	if len(tables) != len(expectedTables) {
		t.Fatalf("got %d tables, want %d\ngot:  %v\nwant: %v", len(tables), len(expectedTables), tables, expectedTables)
	}
	for i, want := range expectedTables {
		if tables[i] != want {
			t.Errorf("table[%d] = %q, want %q", i, tables[i], want)
		}
	}
}

// TestMigrateDB_Idempotent verifies that running MigrateDB twice is a no-op.
func TestMigrateDB_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateDB(db); err != nil {
		t.Fatalf("first MigrateDB failed: %v", err)
	}
	version1, _ := SchemaVersion(db)

	if err := MigrateDB(db); err != nil {
		t.Fatalf("second MigrateDB failed: %v", err)
	}
	version2, _ := SchemaVersion(db)

	if version1 != version2 {
		t.Errorf("version changed after idempotent run: %d → %d", version1, version2)
	}
}

// TestSchema_EmailUnique verifies duplicate emails are rejected by the database.
func TestSchema_EmailUnique(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}

	insert := "INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)"
	now := FormatTime(time.Now())
	if _, err := db.Exec(insert, "u1", "Ada", "ada@x.com", "h", now); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := db.Exec(insert, "u2", "Ada Again", "ada@x.com", "h", now); err == nil {
		t.Error("second insert with the same email should fail")
	}
}

// TestSchema_ForeignKeys verifies earnings must belong to an existing user.
func TestSchema_ForeignKeys(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}

	_, err := db.Exec("INSERT INTO earnings (id, user_id, amount, type, created_at) VALUES (?, ?, ?, ?, ?)",
		"e1", "ghost", 100, "CPA", FormatTime(time.Now()))
	if err == nil {
		t.Error("earning for a missing user should violate the foreign key")
	}
}

// TestSchema_StatusCheck verifies unknown withdrawal statuses are rejected.
func TestSchema_StatusCheck(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}
	now := FormatTime(time.Now())
	if _, err := db.Exec("INSERT INTO users (id, name, email, password_hash, created_at) VALUES ('u1', 'Ada', 'a@x.com', 'h', ?)", now); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	_, err := db.Exec("INSERT INTO withdrawals (id, user_id, amount, status, requested_at) VALUES ('w1', 'u1', 10, 'paid', ?)", now)
	if err == nil {
		t.Error("status 'paid' should violate the CHECK constraint")
	}
}

func TestParseTime_RoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 6, time.FixedZone("WAT", 3600))
	got, err := ParseTime(FormatTime(now))
	if err != nil {
		t.Fatalf("ParseTime: %v", err)
	}
	if !got.Equal(now) {
		t.Errorf("round trip = %v, want %v", got, now)
	}
	if _, err := ParseTime("yesterday"); err == nil {
		t.Error("ParseTime should reject garbage")
	}
}
