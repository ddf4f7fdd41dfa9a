// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/secondary"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return formatTime(t.Time)
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// nextID returns prefix followed by the next zero-padded sequence number
// for table. The number comes from id_counters, which only grows; rows
// inserted with explicit IDs (fixtures) are folded in through MAX.
func nextID(ctx context.Context, db *sql.DB, table, prefix string, width int) (string, error) {
	var next int
	query := fmt.Sprintf(`
		INSERT INTO id_counters (name, last)
		VALUES (?, (SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM %s WHERE id LIKE ?) + 1)
		ON CONFLICT(name) DO UPDATE SET last = MAX(id_counters.last + 1, excluded.last)
		RETURNING last`,
		len(prefix)+1, table,
	)
	if err := db.QueryRowContext(ctx, query, table, prefix+"%").Scan(&next); err != nil {
		return "", errs.Persistence(fmt.Sprintf("failed to get next %s ID", strings.TrimSuffix(table, "s")), err)
	}
	return fmt.Sprintf("%s%0*d", prefix, width, next), nil
}

// updateOrders writes each (id, position) pair with its own statement, in
// the order given. Nothing is rolled back: rows written before a failure
// stay written and the failure is reported as a PartialOrderError.
func updateOrders(ctx context.Context, db *sql.DB, table, entity string, updates []secondary.OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE %s SET position = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", table)
	var applied []string
	failed := make(map[string]error)
	var firstErr error

	for _, u := range updates {
		result, err := db.ExecContext(ctx, query, u.Order, u.ID)
		if err == nil {
			if n, _ := result.RowsAffected(); n == 0 {
				err = errs.NotFound(entity, u.ID)
			}
		}
		if err != nil {
			failed[u.ID] = err
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		applied = append(applied, u.ID)
	}

	switch {
	case len(failed) == 0:
		return nil
	case len(applied) == 0:
		return &errs.Error{
			Kind:   errs.KindPersistence,
			Entity: entity,
			Msg:    fmt.Sprintf("failed to update %s order", entity),
			Err:    firstErr,
		}
	default:
		return &errs.PartialOrderError{Entity: entity, Applied: applied, Failed: failed}
	}
}
