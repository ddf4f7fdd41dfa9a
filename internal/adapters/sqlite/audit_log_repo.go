package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/secondary"
)

// AuditLogRepository implements secondary.AuditLogRepository with SQLite.
type AuditLogRepository struct {
	db *sql.DB
}

// NewAuditLogRepository creates a new SQLite audit log repository.
func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create persists a new audit entry.
func (r *AuditLogRepository) Create(ctx context.Context, entry *secondary.AuditLogRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, actor_id, entity_type, entity_id, action, field_name, old_value, new_value)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		nullString(entry.ActorID),
		entry.EntityType,
		entry.EntityID,
		entry.Action,
		nullString(entry.FieldName),
		nullString(entry.OldValue),
		nullString(entry.NewValue),
	)
	if err != nil {
		return errs.Persistence("failed to create audit entry", err)
	}
	return nil
}

// List retrieves audit entries newest first.
func (r *AuditLogRepository) List(ctx context.Context, filters secondary.AuditLogFilters) ([]*secondary.AuditLogRecord, error) {
	query := `SELECT id, timestamp, actor_id, entity_type, entity_id, action, field_name, old_value, new_value, created_at
		FROM audit_log WHERE 1=1`
	var args []any

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}
	if filters.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}
	if filters.ActorID != "" {
		query += " AND actor_id = ?"
		args = append(args, filters.ActorID)
	}
	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}

	query += " ORDER BY timestamp DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.Persistence("failed to list audit entries", err)
	}
	defer rows.Close()

	var entries []*secondary.AuditLogRecord
	for rows.Next() {
		var (
			actorID, fieldName, oldValue, newValue sql.NullString
			timestamp, createdAt                   time.Time
		)
		record := &secondary.AuditLogRecord{}
		err := rows.Scan(
			&record.ID,
			&timestamp,
			&actorID,
			&record.EntityType,
			&record.EntityID,
			&record.Action,
			&fieldName,
			&oldValue,
			&newValue,
			&createdAt,
		)
		if err != nil {
			return nil, errs.Persistence("failed to scan audit entry", err)
		}
		record.Timestamp = formatTime(timestamp)
		record.ActorID = actorID.String
		record.FieldName = fieldName.String
		record.OldValue = oldValue.String
		record.NewValue = newValue.String
		record.CreatedAt = formatTime(createdAt)
		entries = append(entries, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence("failed to list audit entries", err)
	}

	return entries, nil
}

// GetNextID returns the next available audit entry ID.
func (r *AuditLogRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, r.db, "audit_log", "LOG-", 4)
}

// Ensure AuditLogRepository implements the interface.
var _ secondary.AuditLogRepository = (*AuditLogRepository)(nil)
