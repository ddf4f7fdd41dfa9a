package primary

import "context"

// ProgramService defines the primary port for program operations.
type ProgramService interface {
	// CreateProgram creates a new active program.
	CreateProgram(ctx context.Context, req CreateProgramRequest) (*CreateProgramResponse, error)

	// GetProgram retrieves a program by ID.
	GetProgram(ctx context.Context, programID string) (*Program, error)

	// ListPrograms retrieves programs ordered by name.
	ListPrograms(ctx context.Context, includeInactive bool) ([]*Program, error)

	// SetProgramActive activates or deactivates a program.
	SetProgramActive(ctx context.Context, programID string, active bool) error
}

// CreateProgramRequest contains parameters for creating a program.
type CreateProgramRequest struct {
	Name            string
	DefaultDuration int // seconds
}

// CreateProgramResponse contains the result of creating a program.
type CreateProgramResponse struct {
	ProgramID string
	Program   *Program
}

// Program represents a program at the port boundary.
type Program struct {
	ID              string
	Name            string
	DefaultDuration int
	Active          bool
	CreatedAt       string
}
