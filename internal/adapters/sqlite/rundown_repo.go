package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/secondary"
)

// RundownRepository implements secondary.RundownRepository with SQLite.
type RundownRepository struct {
	db *sql.DB
}

// NewRundownRepository creates a new SQLite rundown repository.
func NewRundownRepository(db *sql.DB) *RundownRepository {
	return &RundownRepository{db: db}
}

const rundownSelect = `SELECT r.id, r.program_id, p.name, r.air_date, r.air_time, r.editor, r.presenters,
	r.mode, r.status, r.created_by, r.created_at, r.updated_at, r.deleted_at
	FROM rundowns r JOIN programs p ON p.id = r.program_id`

// Create persists a new rundown.
func (r *RundownRepository) Create(ctx context.Context, rundown *secondary.RundownRecord) error {
	presenters, err := encodePresenters(rundown.Presenters)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO rundowns (id, program_id, air_date, air_time, editor, presenters, mode, status, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rundown.ID,
		rundown.ProgramID,
		rundown.AirDate,
		rundown.AirTime,
		nullString(rundown.Editor),
		presenters,
		rundown.Mode,
		rundown.Status,
		nullString(rundown.CreatedBy),
	)
	if isUniqueViolation(err) {
		return errs.Conflict("rundown", rundown.ID,
			"a rundown for program %s on %s already exists", rundown.ProgramID, rundown.AirDate)
	}
	if err != nil {
		return errs.Persistence("failed to create rundown", err)
	}
	return nil
}

// GetByID retrieves a rundown by its ID.
func (r *RundownRepository) GetByID(ctx context.Context, id string, includeDeleted bool) (*secondary.RundownRecord, error) {
	query := rundownSelect + " WHERE r.id = ?"
	if !includeDeleted {
		query += " AND r.deleted_at IS NULL"
	}

	record, err := scanRundown(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("rundown", id)
	}
	if err != nil {
		return nil, errs.Persistence("failed to get rundown", err)
	}
	return record, nil
}

// FindBySlot returns the live rundown for (programID, airDate), or nil.
func (r *RundownRepository) FindBySlot(ctx context.Context, programID, airDate string) (*secondary.RundownRecord, error) {
	record, err := scanRundown(r.db.QueryRowContext(ctx,
		rundownSelect+" WHERE r.program_id = ? AND r.air_date = ? AND r.deleted_at IS NULL",
		programID, airDate,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Persistence("failed to find rundown", err)
	}
	return record, nil
}

// List retrieves live rundowns, newest air date first.
func (r *RundownRepository) List(ctx context.Context, filters secondary.RundownFilters) ([]*secondary.RundownRecord, error) {
	query := rundownSelect + " WHERE r.deleted_at IS NULL"
	var args []any

	if filters.ProgramID != "" {
		query += " AND r.program_id = ?"
		args = append(args, filters.ProgramID)
	}
	if filters.From != "" {
		query += " AND r.air_date >= ?"
		args = append(args, filters.From)
	}
	if filters.To != "" {
		query += " AND r.air_date <= ?"
		args = append(args, filters.To)
	}

	query += " ORDER BY r.air_date DESC, r.created_at DESC, r.rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	return r.queryRundowns(ctx, query, args...)
}

// ListDeleted retrieves soft-deleted rundowns, newest deletion first.
func (r *RundownRepository) ListDeleted(ctx context.Context) ([]*secondary.RundownRecord, error) {
	return r.queryRundowns(ctx,
		rundownSelect+" WHERE r.deleted_at IS NOT NULL ORDER BY r.deleted_at DESC, r.rowid DESC",
	)
}

func (r *RundownRepository) queryRundowns(ctx context.Context, query string, args ...any) ([]*secondary.RundownRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.Persistence("failed to list rundowns", err)
	}
	defer rows.Close()

	var rundowns []*secondary.RundownRecord
	for rows.Next() {
		record, err := scanRundown(rows)
		if err != nil {
			return nil, errs.Persistence("failed to scan rundown", err)
		}
		rundowns = append(rundowns, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence("failed to list rundowns", err)
	}

	return rundowns, nil
}

// Update updates the mutable header fields of a live rundown.
func (r *RundownRepository) Update(ctx context.Context, rundown *secondary.RundownRecord) error {
	presenters, err := encodePresenters(rundown.Presenters)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE rundowns SET air_time = ?, editor = ?, presenters = ?, mode = ?, status = ?,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		rundown.AirTime,
		nullString(rundown.Editor),
		presenters,
		rundown.Mode,
		rundown.Status,
		rundown.ID,
	)
	if err != nil {
		return errs.Persistence("failed to update rundown", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFound("rundown", rundown.ID)
	}
	return nil
}

// SoftDelete stamps the deletion timestamp of a live rundown.
func (r *RundownRepository) SoftDelete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE rundowns SET deleted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL",
		id,
	)
	if err != nil {
		return errs.Persistence("failed to delete rundown", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFound("rundown", id)
	}
	return nil
}

// Restore clears the deletion timestamp. Restoring into an occupied slot
// fails with a Conflict error.
func (r *RundownRepository) Restore(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE rundowns SET deleted_at = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NOT NULL",
		id,
	)
	if isUniqueViolation(err) {
		return errs.Conflict("rundown", id, "another rundown already occupies the slot of %s", id)
	}
	if err != nil {
		return errs.Persistence("failed to restore rundown", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFound("deleted rundown", id)
	}
	return nil
}

// GetNextID returns the next available rundown ID.
func (r *RundownRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, r.db, "rundowns", "RD-", 3)
}

func encodePresenters(presenters []string) (string, error) {
	if len(presenters) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(presenters)
	if err != nil {
		return "", errs.InvalidInput("invalid presenters: %v", err)
	}
	return string(data), nil
}

func decodePresenters(raw string) []string {
	var presenters []string
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	if err := json.Unmarshal([]byte(raw), &presenters); err != nil || presenters == nil {
		return []string{}
	}
	return presenters
}

func scanRundown(s scanner) (*secondary.RundownRecord, error) {
	var (
		editor     sql.NullString
		presenters string
		createdBy  sql.NullString
		createdAt  time.Time
		updatedAt  time.Time
		deletedAt  sql.NullTime
	)

	record := &secondary.RundownRecord{}
	err := s.Scan(
		&record.ID,
		&record.ProgramID,
		&record.ProgramName,
		&record.AirDate,
		&record.AirTime,
		&editor,
		&presenters,
		&record.Mode,
		&record.Status,
		&createdBy,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Editor = editor.String
	record.Presenters = decodePresenters(presenters)
	record.CreatedBy = createdBy.String
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	record.DeletedAt = formatNullTime(deletedAt)

	return record, nil
}

// Ensure RundownRepository implements the interface.
var _ secondary.RundownRepository = (*RundownRepository)(nil)
