package primary

import "context"

// LogService defines the primary port for audit trail queries.
type LogService interface {
	// ListLogs retrieves audit entries matching the given filters.
	ListLogs(ctx context.Context, filters LogFilters) ([]*LogEntry, error)
}

// LogEntry represents an audit entry at the port boundary.
type LogEntry struct {
	ID         string
	Timestamp  string
	ActorID    string
	EntityType string
	EntityID   string
	Action     string // 'create', 'update', 'delete'
	FieldName  string // For updates only
	OldValue   string
	NewValue   string
}

// LogFilters contains filter options for querying the audit trail.
type LogFilters struct {
	EntityType string
	EntityID   string
	ActorID    string
	Action     string
	Limit      int
}
