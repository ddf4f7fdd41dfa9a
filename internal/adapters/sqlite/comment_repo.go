package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/secondary"
)

// CommentRepository implements secondary.CommentRepository with SQLite.
type CommentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new SQLite comment repository.
func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create persists a new comment.
func (r *CommentRepository) Create(ctx context.Context, comment *secondary.CommentRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (id, rundown_id, author_id, text) VALUES (?, ?, ?, ?)",
		comment.ID, comment.RundownID, nullString(comment.AuthorID), comment.Text,
	)
	if err != nil {
		return errs.Persistence("failed to create comment", err)
	}
	return nil
}

// ListByRundown retrieves comments oldest first.
func (r *CommentRepository) ListByRundown(ctx context.Context, rundownID string) ([]*secondary.CommentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.rundown_id, c.author_id, u.name, c.text, c.created_at
		 FROM comments c LEFT JOIN users u ON u.id = c.author_id
		 WHERE c.rundown_id = ? ORDER BY c.created_at ASC, c.rowid ASC`,
		rundownID,
	)
	if err != nil {
		return nil, errs.Persistence("failed to list comments", err)
	}
	defer rows.Close()

	comments := []*secondary.CommentRecord{}
	for rows.Next() {
		var (
			authorID   sql.NullString
			authorName sql.NullString
			createdAt  time.Time
		)
		record := &secondary.CommentRecord{}
		if err := rows.Scan(&record.ID, &record.RundownID, &authorID, &authorName, &record.Text, &createdAt); err != nil {
			return nil, errs.Persistence("failed to scan comment", err)
		}
		record.AuthorID = authorID.String
		record.AuthorName = authorName.String
		record.CreatedAt = formatTime(createdAt)
		comments = append(comments, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence("failed to list comments", err)
	}

	return comments, nil
}

// GetNextID returns the next available comment ID.
func (r *CommentRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, r.db, "comments", "CMT-", 3)
}

// Ensure CommentRepository implements the interface.
var _ secondary.CommentRepository = (*CommentRepository)(nil)
