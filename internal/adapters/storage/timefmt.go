package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// timeLayout is the on-disk timestamp format. Values are stored in UTC so
// text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

// FormatTime renders t for storage.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// NullTime renders t for a nullable column; the zero time is stored as NULL.
func NullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return FormatTime(t)
}

// ParseTime accepts the stored format plus the legacy SQLite formats.
func ParseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}

// ParseNullTime is ParseTime for nullable columns.
func ParseNullTime(ns sql.NullString) time.Time {
	if !ns.Valid || ns.String == "" {
		return time.Time{}
	}
	t, _ := ParseTime(ns.String)
	return t
}
