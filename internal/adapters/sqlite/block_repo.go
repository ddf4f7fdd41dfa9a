package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/secondary"
)

// BlockRepository implements secondary.BlockRepository with SQLite.
type BlockRepository struct {
	db *sql.DB
}

// NewBlockRepository creates a new SQLite block repository.
func NewBlockRepository(db *sql.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

const blockColumns = "rowid, id, rundown_id, position, title, planned_duration, real_duration, created_at, updated_at"

// Create persists a new block and fills in its insertion sequence.
func (r *BlockRepository) Create(ctx context.Context, block *secondary.BlockRecord) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO blocks (id, rundown_id, position, title, planned_duration, real_duration)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		block.ID,
		block.RundownID,
		block.Order,
		block.Title,
		block.PlannedDuration,
		nullInt(block.RealDuration),
	)
	if err != nil {
		return errs.Persistence("failed to create block", err)
	}

	if seq, err := result.LastInsertId(); err == nil {
		block.Seq = seq
	}
	return nil
}

// GetByID retrieves a block by its ID.
func (r *BlockRepository) GetByID(ctx context.Context, id string) (*secondary.BlockRecord, error) {
	record, err := scanBlock(r.db.QueryRowContext(ctx,
		"SELECT "+blockColumns+" FROM blocks WHERE id = ?", id,
	))
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("block", id)
	}
	if err != nil {
		return nil, errs.Persistence("failed to get block", err)
	}
	return record, nil
}

// ListByRundown retrieves the blocks of a rundown sorted by position then insertion.
func (r *BlockRepository) ListByRundown(ctx context.Context, rundownID string) ([]*secondary.BlockRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+blockColumns+" FROM blocks WHERE rundown_id = ? ORDER BY position ASC, rowid ASC",
		rundownID,
	)
	if err != nil {
		return nil, errs.Persistence("failed to list blocks", err)
	}
	defer rows.Close()

	blocks := []*secondary.BlockRecord{}
	for rows.Next() {
		record, err := scanBlock(rows)
		if err != nil {
			return nil, errs.Persistence("failed to scan block", err)
		}
		blocks = append(blocks, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence("failed to list blocks", err)
	}

	return blocks, nil
}

// Update updates title and cached durations of a block.
func (r *BlockRepository) Update(ctx context.Context, block *secondary.BlockRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE blocks SET title = ?, planned_duration = ?, real_duration = ?,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		block.Title,
		block.PlannedDuration,
		nullInt(block.RealDuration),
		block.ID,
	)
	if err != nil {
		return errs.Persistence("failed to update block", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFound("block", block.ID)
	}
	return nil
}

// Delete removes a block and its items.
func (r *BlockRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.Persistence("failed to delete block", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE block_id = ?", id); err != nil {
		return errs.Persistence("failed to delete block items", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM blocks WHERE id = ?", id)
	if err != nil {
		return errs.Persistence("failed to delete block", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFound("block", id)
	}

	if err := tx.Commit(); err != nil {
		return errs.Persistence("failed to delete block", err)
	}
	return nil
}

// UpdateOrders applies each pair in the given order, one write per pair.
func (r *BlockRepository) UpdateOrders(ctx context.Context, updates []secondary.OrderUpdate) error {
	return updateOrders(ctx, r.db, "blocks", "block", updates)
}

// GetNextID returns the next available block ID.
func (r *BlockRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, r.db, "blocks", "BLK-", 3)
}

func scanBlock(s scanner) (*secondary.BlockRecord, error) {
	var (
		realDuration sql.NullInt64
		createdAt    time.Time
		updatedAt    time.Time
	)

	record := &secondary.BlockRecord{}
	err := s.Scan(
		&record.Seq,
		&record.ID,
		&record.RundownID,
		&record.Order,
		&record.Title,
		&record.PlannedDuration,
		&realDuration,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.RealDuration = intFromNull(realDuration)
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

// Ensure BlockRepository implements the interface.
var _ secondary.BlockRepository = (*BlockRepository)(nil)
