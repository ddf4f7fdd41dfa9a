// Package primary defines the primary ports (driving adapters) for the application.
// These are the service interfaces the CLI, desk and HTTP API call into.
package primary

import (
	"context"
	"time"
)

// RundownService defines the primary port for rundown operations.
// Every mutation returns the freshly hydrated rundown or a typed failure;
// no speculative state is kept on the service side.
type RundownService interface {
	// LoadRundown returns the live rundown for (air date, program), provisioning an empty one if needed.
	LoadRundown(ctx context.Context, req LoadRundownRequest) (*LoadRundownResponse, error)

	// GetRundown retrieves a fully hydrated rundown by ID.
	GetRundown(ctx context.Context, rundownID string) (*Rundown, error)

	// ListRundowns retrieves rundown headers (no blocks), newest air date first.
	ListRundowns(ctx context.Context, filters RundownFilters) ([]*Rundown, error)

	// UpdateRundownDetails changes the header fields of a rundown.
	UpdateRundownDetails(ctx context.Context, req UpdateRundownRequest) (*Rundown, error)

	// TransitionRundown moves a rundown through the status workflow.
	TransitionRundown(ctx context.Context, req TransitionRundownRequest) (*TransitionRundownResponse, error)

	// DeleteRundown soft-deletes a rundown.
	DeleteRundown(ctx context.Context, rundownID string) error

	// AddBlock inserts a block at an index (appends when Index is nil).
	AddBlock(ctx context.Context, req AddBlockRequest) (*MutationResponse, error)

	// RenameBlock changes a block title.
	RenameBlock(ctx context.Context, blockID, title string) (*MutationResponse, error)

	// MoveBlock moves a block to a new position within its rundown.
	MoveBlock(ctx context.Context, blockID string, toIndex int) (*MutationResponse, error)

	// DeleteBlock removes a block and all of its items.
	DeleteBlock(ctx context.Context, blockID string) (*MutationResponse, error)

	// AddItem inserts an item into a block at an index (appends when Index is nil).
	AddItem(ctx context.Context, req AddItemRequest) (*MutationResponse, error)

	// UpdateItem patches the fields of an item.
	UpdateItem(ctx context.Context, req UpdateItemRequest) (*MutationResponse, error)

	// SetItemStatus sets the production status of an item.
	SetItemStatus(ctx context.Context, itemID, status string) (*MutationResponse, error)

	// MoveItem moves an item to a new position within its block.
	MoveItem(ctx context.Context, itemID string, toIndex int) (*MutationResponse, error)

	// DeleteItem removes a single item.
	DeleteItem(ctx context.Context, itemID string) (*MutationResponse, error)

	// Timing evaluates the live timing view at now.
	Timing(ctx context.Context, rundownID string, now time.Time) (*Timing, error)
}

// LoadRundownRequest contains parameters for loading or provisioning a rundown.
type LoadRundownRequest struct {
	AirDate       string // YYYY-MM-DD
	ProgramID     string
	InitialBlocks []string // block titles created in order on the provisioning path only
}

// LoadRundownResponse contains the result of loading a rundown.
type LoadRundownResponse struct {
	Rundown *Rundown
	Created bool
}

// RundownFilters contains filter options for listing rundowns.
type RundownFilters struct {
	ProgramID string
	From      string
	To        string
	Limit     int
}

// UpdateRundownRequest patches rundown header fields. Nil means unchanged.
type UpdateRundownRequest struct {
	RundownID  string
	Editor     *string
	Presenters *[]string
	Mode       *string
	AirTime    *string
}

// TransitionRundownRequest contains parameters for a status change.
type TransitionRundownRequest struct {
	RundownID string
	Target    string
	Force     bool // explicit override of the workflow
}

// TransitionRundownResponse contains the result of a status change.
type TransitionRundownResponse struct {
	Rundown *Rundown
	From    string
	To      string
	Changed bool
	Forced  bool
}

// AddBlockRequest contains parameters for adding a block.
type AddBlockRequest struct {
	RundownID string
	Title     string
	Index     *int
}

// AddItemRequest contains parameters for adding an item.
type AddItemRequest struct {
	BlockID     string
	Index       *int
	Type        string
	Title       string
	Details     string
	Talent      string
	Reporter    string
	VideoEditor string
	Source      string
	Planned     int
	Real        *int
	Status      string
	ReportID    string
}

// UpdateItemRequest patches item fields. Nil means unchanged.
type UpdateItemRequest struct {
	ItemID      string
	Type        *string
	Title       *string
	Details     *string
	Talent      *string
	Reporter    *string
	VideoEditor *string
	Source      *string
	Planned     *int
	Real        *int
	ClearReal   bool
	ReportID    *string
}

// MutationResponse contains the result of a tree mutation.
type MutationResponse struct {
	EntityID string // the block or item affected
	Rundown  *Rundown
}

// Rundown represents a hydrated rundown at the port boundary.
// Blocks is always non-nil on hydrated reads and nil on list headers.
type Rundown struct {
	ID          string
	ProgramID   string
	ProgramName string
	AirDate     string
	AirTime     string
	Editor      string
	Presenters  []string
	Mode        string
	Status      string
	CreatedBy   string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
	Planned     int
	Real        *int
	Blocks      []*Block
}

// Block represents a block at the port boundary.
type Block struct {
	ID        string
	RundownID string
	Order     int
	Title     string
	Planned   int
	Real      *int
	Items     []*Item
}

// Item represents a rundown item at the port boundary.
type Item struct {
	ID          string
	BlockID     string
	Order       int
	Type        string
	Title       string
	Details     string
	Talent      string
	Reporter    string
	VideoEditor string
	Source      string
	Planned     int
	Real        *int
	Status      string
	ReportID    string
}

// Timing represents the live timing view at the port boundary.
type Timing struct {
	RundownID      string
	Status         string
	ScheduledStart time.Time
	Planned        int
	Real           *int
	Estimated      int
	Elapsed        *int
	Progress       *int
	Difference     int
	Overrun        bool
	Remaining      *int
}
