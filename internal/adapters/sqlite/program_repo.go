package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/secondary"
)

// ProgramRepository implements secondary.ProgramRepository with SQLite.
type ProgramRepository struct {
	db *sql.DB
}

// NewProgramRepository creates a new SQLite program repository.
func NewProgramRepository(db *sql.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

const programColumns = "id, name, default_duration, active, created_at, updated_at"

// Create persists a new program.
func (r *ProgramRepository) Create(ctx context.Context, program *secondary.ProgramRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO programs (id, name, default_duration, active) VALUES (?, ?, ?, ?)",
		program.ID, program.Name, program.DefaultDuration, program.Active,
	)
	if isUniqueViolation(err) {
		return errs.Conflict("program", program.ID, "program %q already exists", program.Name)
	}
	if err != nil {
		return errs.Persistence("failed to create program", err)
	}
	return nil
}

// GetByID retrieves a program by its ID.
func (r *ProgramRepository) GetByID(ctx context.Context, id string) (*secondary.ProgramRecord, error) {
	record, err := scanProgram(r.db.QueryRowContext(ctx,
		"SELECT "+programColumns+" FROM programs WHERE id = ?", id,
	))
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("program", id)
	}
	if err != nil {
		return nil, errs.Persistence("failed to get program", err)
	}
	return record, nil
}

// List retrieves programs ordered by name.
func (r *ProgramRepository) List(ctx context.Context, filters secondary.ProgramFilters) ([]*secondary.ProgramRecord, error) {
	query := "SELECT " + programColumns + " FROM programs"
	if filters.ActiveOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errs.Persistence("failed to list programs", err)
	}
	defer rows.Close()

	var programs []*secondary.ProgramRecord
	for rows.Next() {
		record, err := scanProgram(rows)
		if err != nil {
			return nil, errs.Persistence("failed to scan program", err)
		}
		programs = append(programs, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence("failed to list programs", err)
	}

	return programs, nil
}

// SetActive toggles the active flag of a program.
func (r *ProgramRepository) SetActive(ctx context.Context, id string, active bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE programs SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		active, id,
	)
	if err != nil {
		return errs.Persistence("failed to update program", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFound("program", id)
	}
	return nil
}

// GetNextID returns the next available program ID.
func (r *ProgramRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, r.db, "programs", "PROG-", 3)
}

func scanProgram(s scanner) (*secondary.ProgramRecord, error) {
	var (
		createdAt time.Time
		updatedAt time.Time
	)
	record := &secondary.ProgramRecord{}
	if err := s.Scan(&record.ID, &record.Name, &record.DefaultDuration, &record.Active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

// Ensure ProgramRepository implements the interface.
var _ secondary.ProgramRepository = (*ProgramRepository)(nil)
