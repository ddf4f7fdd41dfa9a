package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/newsroom/internal/ports/primary"
)

// TrashAdapter translates CLI operations to TrashService calls.
type TrashAdapter struct {
	service primary.TrashService
	out     io.Writer
}

// NewTrashAdapter creates a new TrashAdapter with the given service.
func NewTrashAdapter(service primary.TrashService, out io.Writer) *TrashAdapter {
	return &TrashAdapter{
		service: service,
		out:     out,
	}
}

// List shows the trash, newest deletion first.
func (a *TrashAdapter) List(ctx context.Context) ([]*primary.Rundown, error) {
	rundowns, err := a.service.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}

	if len(rundowns) == 0 {
		fmt.Fprintln(a.out, "Trash is empty.")
		return rundowns, nil
	}

	t := newTable(a.out)
	t.AppendHeader([]interface{}{"ID", "AIR DATE", "PROGRAM", "STATUS", "DELETED"})
	for _, r := range rundowns {
		program := r.ProgramName
		if program == "" {
			program = r.ProgramID
		}
		t.AppendRow([]interface{}{r.ID, r.AirDate, program, StatusBadge(r.Status), r.DeletedAt})
	}
	t.Render()
	return rundowns, nil
}

// Restore brings a rundown back from the trash.
func (a *TrashAdapter) Restore(ctx context.Context, rundownID string) (*primary.Rundown, error) {
	r, err := a.service.Restore(ctx, rundownID)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Rundown %s restored (%s %s)\n", r.ID, r.ProgramID, r.AirDate)
	return r, nil
}
