package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/newsroom/internal/core/duration"
	"github.com/example/newsroom/internal/core/ordering"
	"github.com/example/newsroom/internal/core/rundown"
	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/logging"
	"github.com/example/newsroom/internal/metrics"
	"github.com/example/newsroom/internal/ports/primary"
	"github.com/example/newsroom/internal/ports/secondary"
)

// Block and item commands. Each command reads the current siblings,
// computes the new order in the core, writes the changed row first and
// then the shifted siblings, one write at a time in that order.

// AddBlock inserts a block at an index (appends when Index is nil).
func (s *RundownServiceImpl) AddBlock(ctx context.Context, req primary.AddBlockRequest) (*primary.MutationResponse, error) {
	rd, err := s.editableRundown(ctx, req.RundownID)
	if err != nil {
		return nil, err
	}

	blocks, err := s.siblingBlocks(ctx, rd.ID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = fmt.Sprintf("Bloco %d", len(blocks)+1)
	}

	index := len(blocks)
	if req.Index != nil {
		index = *req.Index
	}

	nextID, err := s.blockRepo.GetNextID(ctx)
	if err != nil {
		return nil, err
	}
	entry := &rundown.Block{ID: nextID, RundownID: rd.ID, Title: title}
	_, changes := ordering.InsertAt(blocks, entry, index)

	if err := s.blockRepo.Create(ctx, &secondary.BlockRecord{
		ID:        entry.ID,
		RundownID: entry.RundownID,
		Order:     entry.Order,
		Title:     entry.Title,
	}); err != nil {
		return nil, err
	}
	metrics.RecordMutation("block", "create")
	if err := s.logWriter.LogCreate(ctx, "block", entry.ID); err != nil {
		return nil, err
	}

	if err := s.applyOrders(ctx, "block", changes, s.blockRepo.UpdateOrders); err != nil {
		return nil, err
	}
	return s.mutationResponse(ctx, rd.ID, entry.ID)
}

// RenameBlock changes a block title.
func (s *RundownServiceImpl) RenameBlock(ctx context.Context, blockID, title string) (*primary.MutationResponse, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errs.InvalidInput("block title cannot be empty")
	}

	block, rd, err := s.editableBlock(ctx, blockID)
	if err != nil {
		return nil, err
	}

	if block.Title != title {
		old := block.Title
		block.Title = title
		if err := s.blockRepo.Update(ctx, block); err != nil {
			return nil, err
		}
		metrics.RecordMutation("block", "update")
		if err := s.logWriter.LogUpdate(ctx, "block", block.ID, "title", old, title); err != nil {
			return nil, err
		}
	}
	return s.mutationResponse(ctx, rd.ID, block.ID)
}

// MoveBlock moves a block to a new position within its rundown.
func (s *RundownServiceImpl) MoveBlock(ctx context.Context, blockID string, toIndex int) (*primary.MutationResponse, error) {
	block, rd, err := s.editableBlock(ctx, blockID)
	if err != nil {
		return nil, err
	}

	blocks, err := s.siblingBlocks(ctx, rd.ID)
	if err != nil {
		return nil, err
	}
	from := ordering.IndexOf(blocks, block.ID)
	if from < 0 {
		return nil, errs.NotFound("block", block.ID)
	}

	_, changes, err := ordering.Move(blocks, from, toIndex)
	if err != nil {
		return nil, errs.InvalidInput("%v", err)
	}
	if len(changes) > 0 {
		metrics.RecordMutation("block", "move")
		if err := s.applyOrders(ctx, "block", changes, s.blockRepo.UpdateOrders); err != nil {
			return nil, err
		}
		if err := s.logWriter.LogUpdate(ctx, "block", block.ID, "position",
			strconv.Itoa(from+1), strconv.Itoa(clampIndex(toIndex, len(blocks))+1)); err != nil {
			return nil, err
		}
	}
	return s.mutationResponse(ctx, rd.ID, block.ID)
}

// DeleteBlock removes a block and all of its items. Remaining blocks keep
// their order values.
func (s *RundownServiceImpl) DeleteBlock(ctx context.Context, blockID string) (*primary.MutationResponse, error) {
	block, rd, err := s.editableBlock(ctx, blockID)
	if err != nil {
		return nil, err
	}

	if err := s.blockRepo.Delete(ctx, block.ID); err != nil {
		return nil, err
	}
	metrics.RecordMutation("block", "delete")
	if err := s.logWriter.LogDelete(ctx, "block", block.ID); err != nil {
		return nil, err
	}
	return s.mutationResponse(ctx, rd.ID, block.ID)
}

// AddItem inserts an item into a block at an index (appends when Index is nil).
func (s *RundownServiceImpl) AddItem(ctx context.Context, req primary.AddItemRequest) (*primary.MutationResponse, error) {
	block, rd, err := s.editableBlock(ctx, req.BlockID)
	if err != nil {
		return nil, err
	}

	entry := &rundown.Item{
		BlockID:     block.ID,
		Type:        rundown.ItemType(strings.ToUpper(strings.TrimSpace(req.Type))),
		Title:       strings.TrimSpace(req.Title),
		Details:     req.Details,
		Talent:      strings.TrimSpace(req.Talent),
		Reporter:    strings.TrimSpace(req.Reporter),
		VideoEditor: strings.TrimSpace(req.VideoEditor),
		Source:      strings.TrimSpace(req.Source),
		Planned:     req.Planned,
		Real:        copyInt(req.Real),
		Status:      rundown.ItemStatus(req.Status),
		ReportID:    strings.TrimSpace(req.ReportID),
	}
	if entry.Type == "" {
		entry.Type = rundown.ItemVT
	}
	if err := validateItem(entry); err != nil {
		return nil, err
	}
	if entry.Status != "" {
		if err := guardError(errs.KindInvalidInput, "item", "", rundown.CanSetItemStatus(entry.Type, entry.Status)); err != nil {
			return nil, err
		}
	}
	entry.Normalize()

	items, err := s.siblingItems(ctx, block.ID)
	if err != nil {
		return nil, err
	}
	index := len(items)
	if req.Index != nil {
		index = *req.Index
	}

	nextID, err := s.itemRepo.GetNextID(ctx)
	if err != nil {
		return nil, err
	}
	entry.ID = nextID
	_, changes := ordering.InsertAt(items, entry, index)

	if err := s.itemRepo.Create(ctx, itemToRecord(entry)); err != nil {
		return nil, err
	}
	metrics.RecordMutation("item", "create")
	if err := s.logWriter.LogCreate(ctx, "item", entry.ID); err != nil {
		return nil, err
	}

	if err := s.applyOrders(ctx, "item", changes, s.itemRepo.UpdateOrders); err != nil {
		return nil, err
	}
	if err := s.refreshBlockTotals(ctx, block); err != nil {
		return nil, err
	}
	return s.mutationResponse(ctx, rd.ID, entry.ID)
}

// UpdateItem patches the fields of an item. Changing the type to BREAK
// clears the fields a break does not carry.
func (s *RundownServiceImpl) UpdateItem(ctx context.Context, req primary.UpdateItemRequest) (*primary.MutationResponse, error) {
	record, err := s.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	block, rd, err := s.editableBlock(ctx, record.BlockID)
	if err != nil {
		return nil, err
	}

	before := recordToItem(record)
	it := recordToItem(record)

	if req.Type != nil {
		it.Type = rundown.ItemType(strings.ToUpper(strings.TrimSpace(*req.Type)))
	}
	setString(&it.Title, req.Title, true)
	setString(&it.Details, req.Details, false)
	setString(&it.Talent, req.Talent, true)
	setString(&it.Reporter, req.Reporter, true)
	setString(&it.VideoEditor, req.VideoEditor, true)
	setString(&it.Source, req.Source, true)
	setString(&it.ReportID, req.ReportID, true)
	if req.Planned != nil {
		it.Planned = *req.Planned
	}
	if req.ClearReal {
		it.Real = nil
	} else if req.Real != nil {
		it.Real = copyInt(req.Real)
	}

	if err := validateItem(it); err != nil {
		return nil, err
	}
	it.Normalize()

	changes := itemChanges(before, it)
	if len(changes) > 0 {
		if err := s.itemRepo.Update(ctx, itemToRecord(it)); err != nil {
			return nil, err
		}
		metrics.RecordMutation("item", "update")
		for _, c := range changes {
			if err := s.logWriter.LogUpdate(ctx, "item", it.ID, c.field, c.from, c.to); err != nil {
				return nil, err
			}
		}
		if err := s.refreshBlockTotals(ctx, block); err != nil {
			return nil, err
		}
	}
	return s.mutationResponse(ctx, rd.ID, it.ID)
}

// SetItemStatus sets the production status of an item. Item statuses are
// independent of each other and of the rundown status.
func (s *RundownServiceImpl) SetItemStatus(ctx context.Context, itemID, status string) (*primary.MutationResponse, error) {
	record, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	_, rd, err := s.editableBlock(ctx, record.BlockID)
	if err != nil {
		return nil, err
	}

	target := rundown.ItemStatus(strings.TrimSpace(status))
	if err := guardError(errs.KindInvalidInput, "item", record.ID,
		rundown.CanSetItemStatus(rundown.ItemType(record.Type), target)); err != nil {
		return nil, err
	}

	if record.Status != string(target) {
		old := record.Status
		record.Status = string(target)
		if err := s.itemRepo.Update(ctx, record); err != nil {
			return nil, err
		}
		metrics.RecordMutation("item", "status")
		if err := s.logWriter.LogUpdate(ctx, "item", record.ID, "status", old, record.Status); err != nil {
			return nil, err
		}
	}
	return s.mutationResponse(ctx, rd.ID, record.ID)
}

// MoveItem moves an item to a new position within its block.
func (s *RundownServiceImpl) MoveItem(ctx context.Context, itemID string, toIndex int) (*primary.MutationResponse, error) {
	record, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	block, rd, err := s.editableBlock(ctx, record.BlockID)
	if err != nil {
		return nil, err
	}

	items, err := s.siblingItems(ctx, block.ID)
	if err != nil {
		return nil, err
	}
	from := ordering.IndexOf(items, record.ID)
	if from < 0 {
		return nil, errs.NotFound("item", record.ID)
	}

	_, changes, err := ordering.Move(items, from, toIndex)
	if err != nil {
		return nil, errs.InvalidInput("%v", err)
	}
	if len(changes) > 0 {
		metrics.RecordMutation("item", "move")
		if err := s.applyOrders(ctx, "item", changes, s.itemRepo.UpdateOrders); err != nil {
			return nil, err
		}
		if err := s.logWriter.LogUpdate(ctx, "item", record.ID, "position",
			strconv.Itoa(from+1), strconv.Itoa(clampIndex(toIndex, len(items))+1)); err != nil {
			return nil, err
		}
	}
	return s.mutationResponse(ctx, rd.ID, record.ID)
}

// DeleteItem removes a single item. Remaining items keep their order values.
func (s *RundownServiceImpl) DeleteItem(ctx context.Context, itemID string) (*primary.MutationResponse, error) {
	record, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	block, rd, err := s.editableBlock(ctx, record.BlockID)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Delete(ctx, record.ID); err != nil {
		return nil, err
	}
	metrics.RecordMutation("item", "delete")
	if err := s.logWriter.LogDelete(ctx, "item", record.ID); err != nil {
		return nil, err
	}
	if err := s.refreshBlockTotals(ctx, block); err != nil {
		return nil, err
	}
	return s.mutationResponse(ctx, rd.ID, record.ID)
}

// ============================================================================
// Helpers
// ============================================================================

// editableRundown loads a live rundown whose tree may change.
func (s *RundownServiceImpl) editableRundown(ctx context.Context, rundownID string) (*secondary.RundownRecord, error) {
	rd, err := s.rundownRepo.GetByID(ctx, rundownID, false)
	if err != nil {
		return nil, err
	}
	if err := guardError(errs.KindConflict, "rundown", rd.ID, rundown.CanEditTree(rundown.Status(rd.Status))); err != nil {
		return nil, err
	}
	return rd, nil
}

// editableBlock loads a block and its editable parent rundown.
func (s *RundownServiceImpl) editableBlock(ctx context.Context, blockID string) (*secondary.BlockRecord, *secondary.RundownRecord, error) {
	block, err := s.blockRepo.GetByID(ctx, blockID)
	if err != nil {
		return nil, nil, err
	}
	rd, err := s.editableRundown(ctx, block.RundownID)
	if err != nil {
		return nil, nil, err
	}
	return block, rd, nil
}

func (s *RundownServiceImpl) siblingBlocks(ctx context.Context, rundownID string) ([]*rundown.Block, error) {
	records, err := s.blockRepo.ListByRundown(ctx, rundownID)
	if err != nil {
		return nil, err
	}
	blocks := make([]*rundown.Block, len(records))
	for i, rec := range records {
		blocks[i] = recordToBlock(rec)
	}
	return ordering.Sorted(blocks), nil
}

func (s *RundownServiceImpl) siblingItems(ctx context.Context, blockID string) ([]*rundown.Item, error) {
	records, err := s.itemRepo.ListByBlock(ctx, blockID)
	if err != nil {
		return nil, err
	}
	items := make([]*rundown.Item, len(records))
	for i, rec := range records {
		items[i] = recordToItem(rec)
	}
	return ordering.Sorted(items), nil
}

// applyOrders persists sibling order changes in the order computed.
func (s *RundownServiceImpl) applyOrders(ctx context.Context, entity string, changes []ordering.Change,
	update func(context.Context, []secondary.OrderUpdate) error) error {
	if len(changes) == 0 {
		return nil
	}
	updates := make([]secondary.OrderUpdate, len(changes))
	for i, c := range changes {
		updates[i] = secondary.OrderUpdate{ID: c.ID, Order: c.Order}
	}

	err := update(ctx, updates)
	if err == nil {
		return nil
	}

	partial := errs.IsPartialOrdering(err)
	metrics.RecordOrderingFailure(entity, partial)
	logging.FromContext(ctx, "rundown").Warn().
		Err(err).
		Str("entity", entity).
		Int("updates", len(updates)).
		Bool("partial", partial).
		Msg("order update failed")
	return err
}

// refreshBlockTotals rewrites the cached duration totals of a block.
func (s *RundownServiceImpl) refreshBlockTotals(ctx context.Context, block *secondary.BlockRecord) error {
	items, err := s.siblingItems(ctx, block.ID)
	if err != nil {
		return err
	}
	totals := rundown.AggregateBlock(&rundown.Block{ID: block.ID, Items: items})
	if totals.Planned == block.PlannedDuration && equalIntPtr(totals.Real, block.RealDuration) {
		return nil
	}
	block.PlannedDuration = totals.Planned
	block.RealDuration = totals.Real
	return s.blockRepo.Update(ctx, block)
}

func (s *RundownServiceImpl) mutationResponse(ctx context.Context, rundownID, entityID string) (*primary.MutationResponse, error) {
	view, err := s.GetRundown(ctx, rundownID)
	if err != nil {
		return nil, err
	}
	return &primary.MutationResponse{EntityID: entityID, Rundown: view}, nil
}

// guardError classifies a rejected guard.
func guardError(kind errs.Kind, entity, id string, result rundown.GuardResult) error {
	if result.Allowed {
		return nil
	}
	return &errs.Error{Kind: kind, Entity: entity, ID: id, Msg: result.Reason}
}

func validateItem(it *rundown.Item) error {
	if !rundown.ValidItemType(it.Type) {
		return errs.InvalidInput("invalid item type %q (want VT, REP, LIVE, NOTE or BREAK)", it.Type)
	}
	if it.Planned < 0 {
		return errs.InvalidInput("planned duration cannot be negative")
	}
	if it.Real != nil && *it.Real < 0 {
		return errs.InvalidInput("real duration cannot be negative")
	}
	return nil
}

type fieldChange struct{ field, from, to string }

func itemChanges(before, after *rundown.Item) []fieldChange {
	var changes []fieldChange
	add := func(field, from, to string) {
		if from != to {
			changes = append(changes, fieldChange{field, from, to})
		}
	}
	add("type", string(before.Type), string(after.Type))
	add("title", before.Title, after.Title)
	add("details", before.Details, after.Details)
	add("talent", before.Talent, after.Talent)
	add("reporter", before.Reporter, after.Reporter)
	add("video_editor", before.VideoEditor, after.VideoEditor)
	add("source", before.Source, after.Source)
	add("planned_duration", duration.FormatHMS(before.Planned), duration.FormatHMS(after.Planned))
	add("real_duration", optionalHMS(before.Real), optionalHMS(after.Real))
	add("status", string(before.Status), string(after.Status))
	add("report_id", before.ReportID, after.ReportID)
	return changes
}

func setString(dst *string, v *string, trim bool) {
	if v == nil {
		return
	}
	if trim {
		*dst = strings.TrimSpace(*v)
		return
	}
	*dst = *v
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func optionalHMS(seconds *int) string {
	if seconds == nil {
		return ""
	}
	return duration.FormatHMS(*seconds)
}
