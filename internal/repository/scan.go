package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// SQLite hands back DATETIME values as time.Time only for plain column
// references; aggregates such as MAX(created_at) or DATE(created_at) come
// back as text. MySQL with parseTime returns time.Time throughout. The
// scanners below accept both.

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "Z")
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time value %q", s)
}

// timeCol scans a non-null timestamp into dst.
type timeCol struct{ dst *time.Time }

func (c timeCol) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*c.dst = x.UTC()
	case string:
		t, err := parseTime(x)
		if err != nil {
			return err
		}
		*c.dst = t
	case []byte:
		t, err := parseTime(string(x))
		if err != nil {
			return err
		}
		*c.dst = t
	case nil:
		*c.dst = time.Time{}
	default:
		return fmt.Errorf("cannot scan %T into time", v)
	}
	return nil
}

// nullTimeCol scans a nullable timestamp; NULL leaves *dst nil.
type nullTimeCol struct{ dst **time.Time }

func (c nullTimeCol) Scan(v any) error {
	if v == nil {
		*c.dst = nil
		return nil
	}
	var t time.Time
	if err := (timeCol{&t}).Scan(v); err != nil {
		return err
	}
	*c.dst = &t
	return nil
}

// dayCol scans a DATE(...) result as YYYY-MM-DD.
type dayCol struct{ dst *string }

func (c dayCol) Scan(v any) error {
	var t time.Time
	if err := (timeCol{&t}).Scan(v); err != nil {
		return err
	}
	*c.dst = t.Format("2006-01-02")
	return nil
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func stringArgs(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// withTx runs fn inside a transaction, committing on success.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
