package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/newsroom/internal/ports/primary"
)

// CommentAdapter translates CLI operations to CommentService calls.
type CommentAdapter struct {
	service primary.CommentService
	out     io.Writer
}

// NewCommentAdapter creates a new CommentAdapter with the given service.
func NewCommentAdapter(service primary.CommentService, out io.Writer) *CommentAdapter {
	return &CommentAdapter{
		service: service,
		out:     out,
	}
}

// Add appends a comment to a rundown.
func (a *CommentAdapter) Add(ctx context.Context, rundownID, text string) (*primary.Comment, error) {
	c, err := a.service.AddComment(ctx, rundownID, text)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Comment %s added to %s\n", c.ID, rundownID)
	return c, nil
}

// List shows the comments of a rundown, oldest first.
func (a *CommentAdapter) List(ctx context.Context, rundownID string) ([]*primary.Comment, error) {
	comments, err := a.service.ListComments(ctx, rundownID)
	if err != nil {
		return nil, err
	}

	if len(comments) == 0 {
		fmt.Fprintf(a.out, "No comments on %s.\n", rundownID)
		return comments, nil
	}
	for _, c := range comments {
		author := c.AuthorName
		if author == "" {
			author = c.AuthorID
		}
		fmt.Fprintf(a.out, "[%s] %s: %s\n", c.CreatedAt, author, c.Text)
	}
	return comments, nil
}
