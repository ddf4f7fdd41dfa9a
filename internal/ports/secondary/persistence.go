// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// ProgramRepository defines the secondary port for program persistence.
type ProgramRepository interface {
	// Create persists a new program.
	Create(ctx context.Context, program *ProgramRecord) error

	// GetByID retrieves a program by its ID.
	GetByID(ctx context.Context, id string) (*ProgramRecord, error)

	// List retrieves programs ordered by name.
	List(ctx context.Context, filters ProgramFilters) ([]*ProgramRecord, error)

	// SetActive toggles the active flag of a program.
	SetActive(ctx context.Context, id string, active bool) error

	// GetNextID returns the next available program ID.
	GetNextID(ctx context.Context) (string, error)
}

// ProgramRecord represents a program as stored in persistence.
type ProgramRecord struct {
	ID              string
	Name            string
	DefaultDuration int // seconds
	Active          bool
	CreatedAt       string
	UpdatedAt       string
}

// ProgramFilters contains filter options for querying programs.
type ProgramFilters struct {
	ActiveOnly bool
}

// RundownRepository defines the secondary port for rundown persistence.
// Soft-deleted rundowns are invisible to every read except ListDeleted
// and GetByID with includeDeleted set.
type RundownRepository interface {
	// Create persists a new rundown. A second live rundown for the same
	// (program, air date) slot fails with a Conflict error.
	Create(ctx context.Context, rundown *RundownRecord) error

	// GetByID retrieves a rundown by its ID.
	GetByID(ctx context.Context, id string, includeDeleted bool) (*RundownRecord, error)

	// FindBySlot returns the live rundown for (programID, airDate), or nil when the slot is empty.
	FindBySlot(ctx context.Context, programID, airDate string) (*RundownRecord, error)

	// List retrieves live rundowns, newest air date first.
	List(ctx context.Context, filters RundownFilters) ([]*RundownRecord, error)

	// ListDeleted retrieves soft-deleted rundowns, newest deletion first.
	ListDeleted(ctx context.Context) ([]*RundownRecord, error)

	// Update updates the mutable header fields of a rundown.
	Update(ctx context.Context, rundown *RundownRecord) error

	// SoftDelete stamps the deletion timestamp.
	SoftDelete(ctx context.Context, id string) error

	// Restore clears the deletion timestamp.
	Restore(ctx context.Context, id string) error

	// GetNextID returns the next available rundown ID.
	GetNextID(ctx context.Context) (string, error)
}

// RundownRecord represents a rundown as stored in persistence.
type RundownRecord struct {
	ID          string
	ProgramID   string
	ProgramName string // joined from programs on reads
	AirDate     string // YYYY-MM-DD
	AirTime     string // HH:MM:SS
	Editor      string // Empty string means null
	Presenters  []string
	Mode        string
	Status      string
	CreatedBy   string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string // Empty string means live
}

// RundownFilters contains filter options for querying rundowns.
type RundownFilters struct {
	ProgramID string
	From      string // inclusive air date
	To        string // inclusive air date
	Limit     int
}

// OrderUpdate is one (id, order) pair of a bulk order update.
type OrderUpdate struct {
	ID    string
	Order int
}

// BlockRepository defines the secondary port for block persistence.
type BlockRepository interface {
	// Create persists a new block.
	Create(ctx context.Context, block *BlockRecord) error

	// GetByID retrieves a block by its ID.
	GetByID(ctx context.Context, id string) (*BlockRecord, error)

	// ListByRundown retrieves the blocks of a rundown sorted by order then insertion.
	ListByRundown(ctx context.Context, rundownID string) ([]*BlockRecord, error)

	// Update updates title and cached durations of a block.
	Update(ctx context.Context, block *BlockRecord) error

	// Delete removes a block and its items.
	Delete(ctx context.Context, id string) error

	// UpdateOrders applies each pair in the given order, one write per pair.
	// Some pairs failing yields *errs.PartialOrderError.
	UpdateOrders(ctx context.Context, updates []OrderUpdate) error

	// GetNextID returns the next available block ID.
	GetNextID(ctx context.Context) (string, error)
}

// BlockRecord represents a block as stored in persistence.
type BlockRecord struct {
	ID              string
	RundownID       string
	Order           int
	Seq             int64 // insertion sequence, order tie-breaker
	Title           string
	PlannedDuration int
	RealDuration    *int
	CreatedAt       string
	UpdatedAt       string
}

// ItemRepository defines the secondary port for rundown item persistence.
type ItemRepository interface {
	// Create persists a new item.
	Create(ctx context.Context, item *ItemRecord) error

	// GetByID retrieves an item by its ID.
	GetByID(ctx context.Context, id string) (*ItemRecord, error)

	// ListByBlock retrieves the items of a block sorted by order then insertion.
	ListByBlock(ctx context.Context, blockID string) ([]*ItemRecord, error)

	// ListByBlocks retrieves the items of several blocks sorted by block, order, insertion.
	ListByBlocks(ctx context.Context, blockIDs []string) ([]*ItemRecord, error)

	// Update updates an existing item.
	Update(ctx context.Context, item *ItemRecord) error

	// Delete removes a single item.
	Delete(ctx context.Context, id string) error

	// UpdateOrders applies each pair in the given order, one write per pair.
	UpdateOrders(ctx context.Context, updates []OrderUpdate) error

	// GetNextID returns the next available item ID.
	GetNextID(ctx context.Context) (string, error)
}

// ItemRecord represents a rundown item as stored in persistence.
type ItemRecord struct {
	ID              string
	BlockID         string
	Order           int
	Seq             int64
	Type            string
	Title           string
	Details         string
	Talent          string
	Reporter        string
	VideoEditor     string
	Source          string
	PlannedDuration int
	RealDuration    *int
	Status          string // Empty for breaks
	ReportID        string // Empty string means null
	CreatedAt       string
	UpdatedAt       string
}

// CommentRepository defines the secondary port for rundown comments.
// Comments are append-only - no Update or Delete operations.
type CommentRepository interface {
	// Create persists a new comment.
	Create(ctx context.Context, comment *CommentRecord) error

	// ListByRundown retrieves comments oldest first.
	ListByRundown(ctx context.Context, rundownID string) ([]*CommentRecord, error)

	// GetNextID returns the next available comment ID.
	GetNextID(ctx context.Context) (string, error)
}

// CommentRecord represents a comment as stored in persistence.
type CommentRecord struct {
	ID         string
	RundownID  string
	AuthorID   string
	AuthorName string // joined from users on reads
	Text       string
	CreatedAt  string
}

// UserRepository defines the secondary port for user persistence.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *UserRecord) error

	// GetByID retrieves a user by its ID.
	GetByID(ctx context.Context, id string) (*UserRecord, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*UserRecord, error)

	// List retrieves all users ordered by name.
	List(ctx context.Context) ([]*UserRecord, error)

	// GetNextID returns the next available user ID.
	GetNextID(ctx context.Context) (string, error)
}

// UserRecord represents a user as stored in persistence.
type UserRecord struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Active       bool
	CreatedAt    string
}

// AuditLogRepository defines the secondary port for the audit trail.
type AuditLogRepository interface {
	// Create persists a new audit entry.
	Create(ctx context.Context, entry *AuditLogRecord) error

	// List retrieves audit entries newest first.
	List(ctx context.Context, filters AuditLogFilters) ([]*AuditLogRecord, error)

	// GetNextID returns the next available audit entry ID.
	GetNextID(ctx context.Context) (string, error)
}

// AuditLogRecord represents an audit entry as stored in persistence.
type AuditLogRecord struct {
	ID         string
	Timestamp  string
	ActorID    string // Empty string means null
	EntityType string
	EntityID   string
	Action     string // 'create', 'update', 'delete'
	FieldName  string // For updates only
	OldValue   string
	NewValue   string
	CreatedAt  string
}

// AuditLogFilters contains filter options for querying the audit trail.
type AuditLogFilters struct {
	EntityType string
	EntityID   string
	ActorID    string
	Action     string
	Limit      int
}
