package app

import (
	"context"
	"strings"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/logging"
	"github.com/example/newsroom/internal/ports/primary"
	"github.com/example/newsroom/internal/ports/secondary"
)

// ProgramServiceImpl implements the ProgramService interface.
type ProgramServiceImpl struct {
	programRepo secondary.ProgramRepository
	logWriter   secondary.LogWriter
}

// NewProgramService creates a new ProgramService with injected dependencies.
func NewProgramService(programRepo secondary.ProgramRepository, logWriter secondary.LogWriter) *ProgramServiceImpl {
	return &ProgramServiceImpl{
		programRepo: programRepo,
		logWriter:   logWriter,
	}
}

// CreateProgram creates a new active program.
func (s *ProgramServiceImpl) CreateProgram(ctx context.Context, req primary.CreateProgramRequest) (*primary.CreateProgramResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.InvalidInput("program name is required")
	}
	if req.DefaultDuration < 0 {
		return nil, errs.InvalidInput("default duration cannot be negative")
	}

	nextID, err := s.programRepo.GetNextID(ctx)
	if err != nil {
		return nil, err
	}

	record := &secondary.ProgramRecord{
		ID:              nextID,
		Name:            name,
		DefaultDuration: req.DefaultDuration,
		Active:          true,
	}
	if err := s.programRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	if err := s.logWriter.LogCreate(ctx, "program", record.ID); err != nil {
		return nil, err
	}
	logging.FromContext(ctx, "program").Info().Str("program_id", record.ID).Str("name", name).Msg("program created")

	created, err := s.programRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return &primary.CreateProgramResponse{
		ProgramID: created.ID,
		Program:   recordToProgram(created),
	}, nil
}

// GetProgram retrieves a program by ID.
func (s *ProgramServiceImpl) GetProgram(ctx context.Context, programID string) (*primary.Program, error) {
	record, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	return recordToProgram(record), nil
}

// ListPrograms retrieves programs ordered by name.
func (s *ProgramServiceImpl) ListPrograms(ctx context.Context, includeInactive bool) ([]*primary.Program, error) {
	records, err := s.programRepo.List(ctx, secondary.ProgramFilters{ActiveOnly: !includeInactive})
	if err != nil {
		return nil, err
	}

	programs := make([]*primary.Program, len(records))
	for i, r := range records {
		programs[i] = recordToProgram(r)
	}
	return programs, nil
}

// SetProgramActive activates or deactivates a program. Rundowns of an
// inactive program stay readable; new ones cannot be provisioned.
func (s *ProgramServiceImpl) SetProgramActive(ctx context.Context, programID string, active bool) error {
	record, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return err
	}
	if record.Active == active {
		return nil
	}

	if err := s.programRepo.SetActive(ctx, programID, active); err != nil {
		return err
	}
	return s.logWriter.LogUpdate(ctx, "program", programID, "active", boolString(record.Active), boolString(active))
}

func recordToProgram(r *secondary.ProgramRecord) *primary.Program {
	return &primary.Program{
		ID:              r.ID,
		Name:            r.Name,
		DefaultDuration: r.DefaultDuration,
		Active:          r.Active,
		CreatedAt:       r.CreatedAt,
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Ensure ProgramServiceImpl implements the interface
var _ primary.ProgramService = (*ProgramServiceImpl)(nil)
