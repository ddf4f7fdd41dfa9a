package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/newsroom/internal/ports/primary"
)

// LogAdapter translates CLI audit queries to LogService calls.
type LogAdapter struct {
	service primary.LogService
	out     io.Writer
}

// NewLogAdapter creates a new LogAdapter with the given service.
func NewLogAdapter(service primary.LogService, out io.Writer) *LogAdapter {
	return &LogAdapter{
		service: service,
		out:     out,
	}
}

// List shows audit entries, newest first.
func (a *LogAdapter) List(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	entries, err := a.service.ListLogs(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No audit entries found.")
		return entries, nil
	}

	t := newTable(a.out)
	t.AppendHeader([]interface{}{"TIME", "ACTOR", "ACTION", "ENTITY", "CHANGE"})
	for _, e := range entries {
		actor := e.ActorID
		if actor == "" {
			actor = "-"
		}
		change := ""
		if e.FieldName != "" {
			change = fmt.Sprintf("%s: %q → %q", e.FieldName, e.OldValue, e.NewValue)
		}
		t.AppendRow([]interface{}{e.Timestamp, actor, e.Action, e.EntityType + " " + e.EntityID, change})
	}
	t.Render()
	return entries, nil
}
