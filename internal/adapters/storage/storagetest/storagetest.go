// Package storagetest opens migrated in-memory databases for tests.
package storagetest

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	_ "modernc.org/sqlite"

	"ofx/internal/adapters/storage"
)

var dbCounter atomic.Int64

// Open returns a fresh, fully migrated in-memory database that is closed when
// the test ends. Each call gets its own shared-cache database so pooled
// connections see the same data.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	name := fmt.Sprintf("file:ofxtest%d?mode=memory&cache=shared&_pragma=foreign_keys(ON)", dbCounter.Add(1))
	db, err := sql.Open("sqlite", name)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}
