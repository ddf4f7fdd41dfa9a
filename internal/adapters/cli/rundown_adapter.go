package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/example/newsroom/internal/core/duration"
	"github.com/example/newsroom/internal/ports/primary"
)

// RundownAdapter is a thin adapter that translates CLI operations to RundownService calls.
type RundownAdapter struct {
	service primary.RundownService
	out     io.Writer
}

// NewRundownAdapter creates a new RundownAdapter with the given service.
func NewRundownAdapter(service primary.RundownService, out io.Writer) *RundownAdapter {
	return &RundownAdapter{
		service: service,
		out:     out,
	}
}

// Load loads or provisions the rundown of a slot and shows it.
func (a *RundownAdapter) Load(ctx context.Context, req primary.LoadRundownRequest) (*primary.Rundown, error) {
	resp, err := a.service.LoadRundown(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.Created {
		fmt.Fprintf(a.out, "✓ Created rundown %s for %s on %s\n\n", resp.Rundown.ID, req.ProgramID, req.AirDate)
	}
	RenderRundown(a.out, resp.Rundown)
	return resp.Rundown, nil
}

// Show displays a hydrated rundown.
func (a *RundownAdapter) Show(ctx context.Context, rundownID string) (*primary.Rundown, error) {
	r, err := a.service.GetRundown(ctx, rundownID)
	if err != nil {
		return nil, err
	}
	RenderRundown(a.out, r)
	return r, nil
}

// List lists rundown headers.
func (a *RundownAdapter) List(ctx context.Context, filters primary.RundownFilters) ([]*primary.Rundown, error) {
	rundowns, err := a.service.ListRundowns(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list rundowns: %w", err)
	}

	if len(rundowns) == 0 {
		fmt.Fprintln(a.out, "No rundowns found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Load the first one:")
		fmt.Fprintln(a.out, "  newsroom rundown load --program PROG-001 --date 2024-05-01")
		return rundowns, nil
	}

	t := newTable(a.out)
	t.AppendHeader([]interface{}{"ID", "AIR DATE", "TIME", "PROGRAM", "EDITOR", "MODE", "STATUS"})
	for _, r := range rundowns {
		program := r.ProgramName
		if program == "" {
			program = r.ProgramID
		}
		t.AppendRow([]interface{}{r.ID, r.AirDate, r.AirTime, program, r.Editor, r.Mode, StatusBadge(r.Status)})
	}
	t.Render()
	return rundowns, nil
}

// Update patches rundown header fields.
func (a *RundownAdapter) Update(ctx context.Context, req primary.UpdateRundownRequest) (*primary.Rundown, error) {
	r, err := a.service.UpdateRundownDetails(ctx, req)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Rundown %s updated\n", r.ID)
	RenderRundownHeader(a.out, r)
	return r, nil
}

// Transition moves a rundown through the status workflow.
func (a *RundownAdapter) Transition(ctx context.Context, req primary.TransitionRundownRequest) (*primary.TransitionRundownResponse, error) {
	resp, err := a.service.TransitionRundown(ctx, req)
	if err != nil {
		return nil, err
	}

	switch {
	case !resp.Changed:
		fmt.Fprintf(a.out, "Rundown %s is already %s\n", req.RundownID, StatusBadge(resp.To))
	case resp.Forced:
		fmt.Fprintf(a.out, "⚠ Rundown %s forced: %s → %s\n", req.RundownID, StatusBadge(resp.From), StatusBadge(resp.To))
	default:
		fmt.Fprintf(a.out, "✓ Rundown %s: %s → %s\n", req.RundownID, StatusBadge(resp.From), StatusBadge(resp.To))
	}
	return resp, nil
}

// Delete moves a rundown to the trash.
func (a *RundownAdapter) Delete(ctx context.Context, rundownID string) error {
	if err := a.service.DeleteRundown(ctx, rundownID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Rundown %s moved to trash\n", rundownID)
	fmt.Fprintf(a.out, "  Restore with: newsroom trash restore %s\n", rundownID)
	return nil
}

// Timing displays the live timing view at now.
func (a *RundownAdapter) Timing(ctx context.Context, rundownID string, now time.Time) (*primary.Timing, error) {
	t, err := a.service.Timing(ctx, rundownID, now)
	if err != nil {
		return nil, err
	}
	RenderTiming(a.out, t)
	return t, nil
}

// AddBlock inserts a block.
func (a *RundownAdapter) AddBlock(ctx context.Context, req primary.AddBlockRequest) (*primary.MutationResponse, error) {
	resp, err := a.service.AddBlock(ctx, req)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Block %s added to %s\n", resp.EntityID, req.RundownID)
	return resp, nil
}

// RenameBlock changes a block title.
func (a *RundownAdapter) RenameBlock(ctx context.Context, blockID, title string) (*primary.MutationResponse, error) {
	resp, err := a.service.RenameBlock(ctx, blockID, title)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Block %s renamed to %q\n", blockID, title)
	return resp, nil
}

// MoveBlock moves a block to a 1-based position.
func (a *RundownAdapter) MoveBlock(ctx context.Context, blockID string, position int) (*primary.MutationResponse, error) {
	resp, err := a.service.MoveBlock(ctx, blockID, position-1)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Block %s moved to position %d\n", blockID, position)
	return resp, nil
}

// DeleteBlock removes a block and its items.
func (a *RundownAdapter) DeleteBlock(ctx context.Context, blockID string) (*primary.MutationResponse, error) {
	resp, err := a.service.DeleteBlock(ctx, blockID)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Block %s deleted with its items\n", blockID)
	return resp, nil
}

// AddItem inserts an item.
func (a *RundownAdapter) AddItem(ctx context.Context, req primary.AddItemRequest) (*primary.MutationResponse, error) {
	resp, err := a.service.AddItem(ctx, req)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Item %s added to %s (%s)\n", resp.EntityID, req.BlockID, duration.FormatHMS(req.Planned))
	return resp, nil
}

// UpdateItem patches an item.
func (a *RundownAdapter) UpdateItem(ctx context.Context, req primary.UpdateItemRequest) (*primary.MutationResponse, error) {
	resp, err := a.service.UpdateItem(ctx, req)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Item %s updated\n", req.ItemID)
	return resp, nil
}

// SetItemStatus sets an item's production status.
func (a *RundownAdapter) SetItemStatus(ctx context.Context, itemID, status string) (*primary.MutationResponse, error) {
	resp, err := a.service.SetItemStatus(ctx, itemID, status)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Item %s is %s\n", itemID, ItemStatusBadge(status))
	return resp, nil
}

// MoveItem moves an item to a 1-based position within its block.
func (a *RundownAdapter) MoveItem(ctx context.Context, itemID string, position int) (*primary.MutationResponse, error) {
	resp, err := a.service.MoveItem(ctx, itemID, position-1)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Item %s moved to position %d\n", itemID, position)
	return resp, nil
}

// DeleteItem removes an item.
func (a *RundownAdapter) DeleteItem(ctx context.Context, itemID string) (*primary.MutationResponse, error) {
	resp, err := a.service.DeleteItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Item %s deleted\n", itemID)
	return resp, nil
}
