package primary

import "context"

// CommentService defines the primary port for rundown comments.
type CommentService interface {
	// AddComment appends a comment authored by the current user.
	AddComment(ctx context.Context, rundownID, text string) (*Comment, error)

	// ListComments retrieves comments oldest first.
	ListComments(ctx context.Context, rundownID string) ([]*Comment, error)
}

// Comment represents a comment at the port boundary.
type Comment struct {
	ID         string
	RundownID  string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  string
}
