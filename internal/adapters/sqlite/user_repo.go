package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, email, name, password_hash, role, active, created_at"

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, email, name, password_hash, role, active) VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, user.Email, user.Name, user.PasswordHash, user.Role, user.Active,
	)
	if isUniqueViolation(err) {
		return errs.Conflict("user", user.ID, "a user with email %s already exists", user.Email)
	}
	if err != nil {
		return errs.Persistence("failed to create user", err)
	}
	return nil
}

// GetByID retrieves a user by its ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	record, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id,
	))
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("user", id)
	}
	if err != nil {
		return nil, errs.Persistence("failed to get user", err)
	}
	return record, nil
}

// GetByEmail retrieves a user by email. The column collates case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*secondary.UserRecord, error) {
	record, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email,
	))
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("user", email)
	}
	if err != nil {
		return nil, errs.Persistence("failed to get user", err)
	}
	return record, nil
}

// List retrieves all users ordered by name.
func (r *UserRepository) List(ctx context.Context) ([]*secondary.UserRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY name ASC")
	if err != nil {
		return nil, errs.Persistence("failed to list users", err)
	}
	defer rows.Close()

	var users []*secondary.UserRecord
	for rows.Next() {
		record, err := scanUser(rows)
		if err != nil {
			return nil, errs.Persistence("failed to scan user", err)
		}
		users = append(users, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence("failed to list users", err)
	}

	return users, nil
}

// GetNextID returns the next available user ID.
func (r *UserRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, r.db, "users", "USR-", 3)
}

func scanUser(s scanner) (*secondary.UserRecord, error) {
	var createdAt time.Time
	record := &secondary.UserRecord{}
	err := s.Scan(&record.ID, &record.Email, &record.Name, &record.PasswordHash, &record.Role, &record.Active, &createdAt)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = formatTime(createdAt)
	return record, nil
}

// Ensure UserRepository implements the interface.
var _ secondary.UserRepository = (*UserRepository)(nil)
