package primary

import "context"

// TrashService defines the primary port for the soft-delete trash bin.
type TrashService interface {
	// ListDeleted retrieves soft-deleted rundowns, newest deletion first.
	ListDeleted(ctx context.Context) ([]*Rundown, error)

	// Restore brings a rundown back unless its slot has been taken.
	Restore(ctx context.Context, rundownID string) (*Rundown, error)
}
