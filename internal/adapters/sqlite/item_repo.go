package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/secondary"
)

// ItemRepository implements secondary.ItemRepository with SQLite.
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new SQLite rundown item repository.
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `rowid, id, block_id, position, type, title, details, talent, reporter, video_editor,
	source, planned_duration, real_duration, status, report_id, created_at, updated_at`

// Create persists a new item and fills in its insertion sequence.
func (r *ItemRepository) Create(ctx context.Context, item *secondary.ItemRecord) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO items (id, block_id, position, type, title, details, talent, reporter, video_editor,
		 source, planned_duration, real_duration, status, report_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.BlockID,
		item.Order,
		item.Type,
		item.Title,
		nullString(item.Details),
		nullString(item.Talent),
		nullString(item.Reporter),
		nullString(item.VideoEditor),
		nullString(item.Source),
		item.PlannedDuration,
		nullInt(item.RealDuration),
		nullString(item.Status),
		nullString(item.ReportID),
	)
	if err != nil {
		return errs.Persistence("failed to create item", err)
	}

	if seq, err := result.LastInsertId(); err == nil {
		item.Seq = seq
	}
	return nil
}

// GetByID retrieves an item by its ID.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*secondary.ItemRecord, error) {
	record, err := scanItem(r.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = ?", id,
	))
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("item", id)
	}
	if err != nil {
		return nil, errs.Persistence("failed to get item", err)
	}
	return record, nil
}

// ListByBlock retrieves the items of a block sorted by position then insertion.
func (r *ItemRepository) ListByBlock(ctx context.Context, blockID string) ([]*secondary.ItemRecord, error) {
	return r.queryItems(ctx,
		"SELECT "+itemColumns+" FROM items WHERE block_id = ? ORDER BY position ASC, rowid ASC",
		blockID,
	)
}

// ListByBlocks retrieves the items of several blocks in one query.
func (r *ItemRepository) ListByBlocks(ctx context.Context, blockIDs []string) ([]*secondary.ItemRecord, error) {
	if len(blockIDs) == 0 {
		return []*secondary.ItemRecord{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(blockIDs)), ", ")
	args := make([]any, len(blockIDs))
	for i, id := range blockIDs {
		args[i] = id
	}

	return r.queryItems(ctx,
		"SELECT "+itemColumns+" FROM items WHERE block_id IN ("+placeholders+") ORDER BY block_id ASC, position ASC, rowid ASC",
		args...,
	)
}

func (r *ItemRepository) queryItems(ctx context.Context, query string, args ...any) ([]*secondary.ItemRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.Persistence("failed to list items", err)
	}
	defer rows.Close()

	items := []*secondary.ItemRecord{}
	for rows.Next() {
		record, err := scanItem(rows)
		if err != nil {
			return nil, errs.Persistence("failed to scan item", err)
		}
		items = append(items, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence("failed to list items", err)
	}

	return items, nil
}

// Update updates an existing item. Position is changed through UpdateOrders.
func (r *ItemRepository) Update(ctx context.Context, item *secondary.ItemRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE items SET type = ?, title = ?, details = ?, talent = ?, reporter = ?, video_editor = ?,
		 source = ?, planned_duration = ?, real_duration = ?, status = ?, report_id = ?,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		item.Type,
		item.Title,
		nullString(item.Details),
		nullString(item.Talent),
		nullString(item.Reporter),
		nullString(item.VideoEditor),
		nullString(item.Source),
		item.PlannedDuration,
		nullInt(item.RealDuration),
		nullString(item.Status),
		nullString(item.ReportID),
		item.ID,
	)
	if err != nil {
		return errs.Persistence("failed to update item", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFound("item", item.ID)
	}
	return nil
}

// Delete removes a single item.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return errs.Persistence("failed to delete item", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFound("item", id)
	}
	return nil
}

// UpdateOrders applies each pair in the given order, one write per pair.
func (r *ItemRepository) UpdateOrders(ctx context.Context, updates []secondary.OrderUpdate) error {
	return updateOrders(ctx, r.db, "items", "item", updates)
}

// GetNextID returns the next available item ID.
func (r *ItemRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, r.db, "items", "ITEM-", 3)
}

func scanItem(s scanner) (*secondary.ItemRecord, error) {
	var (
		details, talent, reporter, videoEditor sql.NullString
		source, status, reportID               sql.NullString
		realDuration                           sql.NullInt64
		createdAt                              time.Time
		updatedAt                              time.Time
	)

	record := &secondary.ItemRecord{}
	err := s.Scan(
		&record.Seq,
		&record.ID,
		&record.BlockID,
		&record.Order,
		&record.Type,
		&record.Title,
		&details,
		&talent,
		&reporter,
		&videoEditor,
		&source,
		&record.PlannedDuration,
		&realDuration,
		&status,
		&reportID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Details = details.String
	record.Talent = talent.String
	record.Reporter = reporter.String
	record.VideoEditor = videoEditor.String
	record.Source = source.String
	record.RealDuration = intFromNull(realDuration)
	record.Status = status.String
	record.ReportID = reportID.String
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

// Ensure ItemRepository implements the interface.
var _ secondary.ItemRepository = (*ItemRepository)(nil)
