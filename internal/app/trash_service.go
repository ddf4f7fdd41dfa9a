package app

import (
	"context"

	"github.com/example/newsroom/internal/logging"
	"github.com/example/newsroom/internal/ports/primary"
	"github.com/example/newsroom/internal/ports/secondary"
)

// TrashServiceImpl implements the TrashService interface.
type TrashServiceImpl struct {
	rundownRepo secondary.RundownRepository
	logWriter   secondary.LogWriter
}

// NewTrashService creates a new TrashService with injected dependencies.
func NewTrashService(rundownRepo secondary.RundownRepository, logWriter secondary.LogWriter) *TrashServiceImpl {
	return &TrashServiceImpl{
		rundownRepo: rundownRepo,
		logWriter:   logWriter,
	}
}

// ListDeleted retrieves soft-deleted rundown headers, newest deletion first.
func (s *TrashServiceImpl) ListDeleted(ctx context.Context) ([]*primary.Rundown, error) {
	records, err := s.rundownRepo.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}

	rundowns := make([]*primary.Rundown, len(records))
	for i, r := range records {
		rundowns[i] = rundownHeader(r)
	}
	return rundowns, nil
}

// Restore brings a rundown back unless another live rundown now holds its
// slot; the repository reports that as a Conflict.
func (s *TrashServiceImpl) Restore(ctx context.Context, rundownID string) (*primary.Rundown, error) {
	record, err := s.rundownRepo.GetByID(ctx, rundownID, true)
	if err != nil {
		return nil, err
	}
	if record.DeletedAt == "" {
		return rundownHeader(record), nil
	}

	if err := s.rundownRepo.Restore(ctx, rundownID); err != nil {
		return nil, err
	}
	if err := s.logWriter.LogUpdate(ctx, "rundown", rundownID, "deleted_at", record.DeletedAt, ""); err != nil {
		return nil, err
	}
	logging.FromContext(ctx, "trash").Info().Str("rundown_id", rundownID).Msg("rundown restored")

	restored, err := s.rundownRepo.GetByID(ctx, rundownID, false)
	if err != nil {
		return nil, err
	}
	return rundownHeader(restored), nil
}

// Ensure TrashServiceImpl implements the interface
var _ primary.TrashService = (*TrashServiceImpl)(nil)
