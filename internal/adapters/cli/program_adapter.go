package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/newsroom/internal/core/duration"
	"github.com/example/newsroom/internal/ports/primary"
)

// ProgramAdapter translates CLI operations to ProgramService calls.
type ProgramAdapter struct {
	service primary.ProgramService
	out     io.Writer
}

// NewProgramAdapter creates a new ProgramAdapter with the given service.
func NewProgramAdapter(service primary.ProgramService, out io.Writer) *ProgramAdapter {
	return &ProgramAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a program.
func (a *ProgramAdapter) Create(ctx context.Context, name string, defaultDuration int) (*primary.Program, error) {
	resp, err := a.service.CreateProgram(ctx, primary.CreateProgramRequest{Name: name, DefaultDuration: defaultDuration})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Created program %s: %s (%s)\n", resp.ProgramID, resp.Program.Name, duration.FormatHMS(resp.Program.DefaultDuration))
	return resp.Program, nil
}

// List lists programs.
func (a *ProgramAdapter) List(ctx context.Context, includeInactive bool) ([]*primary.Program, error) {
	programs, err := a.service.ListPrograms(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}

	if len(programs) == 0 {
		fmt.Fprintln(a.out, "No programs found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first program:")
		fmt.Fprintln(a.out, "  newsroom program create \"Jornal da Noite\" --duration 00:45:00")
		return programs, nil
	}

	t := newTable(a.out)
	t.AppendHeader([]interface{}{"ID", "NAME", "DURATION", "ACTIVE"})
	for _, p := range programs {
		active := "yes"
		if !p.Active {
			active = "no"
		}
		t.AppendRow([]interface{}{p.ID, p.Name, duration.FormatHMS(p.DefaultDuration), active})
	}
	t.Render()
	return programs, nil
}

// Show displays a program.
func (a *ProgramAdapter) Show(ctx context.Context, programID string) (*primary.Program, error) {
	p, err := a.service.GetProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "\nProgram: %s\n", p.ID)
	fmt.Fprintf(a.out, "Name:     %s\n", p.Name)
	fmt.Fprintf(a.out, "Duration: %s\n", duration.FormatHMS(p.DefaultDuration))
	fmt.Fprintf(a.out, "Active:   %t\n", p.Active)
	fmt.Fprintf(a.out, "Created:  %s\n", p.CreatedAt)
	fmt.Fprintln(a.out)
	return p, nil
}

// SetActive activates or deactivates a program.
func (a *ProgramAdapter) SetActive(ctx context.Context, programID string, active bool) error {
	if err := a.service.SetProgramActive(ctx, programID, active); err != nil {
		return err
	}
	if active {
		fmt.Fprintf(a.out, "✓ Program %s activated\n", programID)
	} else {
		fmt.Fprintf(a.out, "✓ Program %s deactivated\n", programID)
	}
	return nil
}
