package app

import (
	"context"

	"github.com/example/newsroom/internal/ports/primary"
	"github.com/example/newsroom/internal/ports/secondary"
)

// LogServiceImpl implements the LogService interface.
type LogServiceImpl struct {
	logRepo secondary.AuditLogRepository
}

// NewLogService creates a new LogService with injected dependencies.
func NewLogService(logRepo secondary.AuditLogRepository) *LogServiceImpl {
	return &LogServiceImpl{
		logRepo: logRepo,
	}
}

// ListLogs retrieves audit entries matching the given filters, newest first.
func (s *LogServiceImpl) ListLogs(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	records, err := s.logRepo.List(ctx, secondary.AuditLogFilters{
		EntityType: filters.EntityType,
		EntityID:   filters.EntityID,
		ActorID:    filters.ActorID,
		Action:     filters.Action,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*primary.LogEntry, len(records))
	for i, r := range records {
		entries[i] = recordToLogEntry(r)
	}
	return entries, nil
}

func recordToLogEntry(r *secondary.AuditLogRecord) *primary.LogEntry {
	return &primary.LogEntry{
		ID:         r.ID,
		Timestamp:  r.Timestamp,
		ActorID:    r.ActorID,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Action:     r.Action,
		FieldName:  r.FieldName,
		OldValue:   r.OldValue,
		NewValue:   r.NewValue,
	}
}

// Ensure LogServiceImpl implements the interface
var _ primary.LogService = (*LogServiceImpl)(nil)
