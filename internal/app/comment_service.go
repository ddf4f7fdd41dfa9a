package app

import (
	"context"
	"strings"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/primary"
	"github.com/example/newsroom/internal/ports/secondary"
)

// CommentServiceImpl implements the CommentService interface.
type CommentServiceImpl struct {
	commentRepo secondary.CommentRepository
	rundownRepo secondary.RundownRepository
	identity    secondary.IdentityProvider
	logWriter   secondary.LogWriter
}

// NewCommentService creates a new CommentService with injected dependencies.
func NewCommentService(
	commentRepo secondary.CommentRepository,
	rundownRepo secondary.RundownRepository,
	identity secondary.IdentityProvider,
	logWriter secondary.LogWriter,
) *CommentServiceImpl {
	return &CommentServiceImpl{
		commentRepo: commentRepo,
		rundownRepo: rundownRepo,
		identity:    identity,
		logWriter:   logWriter,
	}
}

// AddComment appends a comment authored by the current user.
func (s *CommentServiceImpl) AddComment(ctx context.Context, rundownID, text string) (*primary.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errs.InvalidInput("comment text cannot be empty")
	}

	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.Unauthenticated("sign in to comment")
	}

	if _, err := s.rundownRepo.GetByID(ctx, rundownID, false); err != nil {
		return nil, err
	}

	nextID, err := s.commentRepo.GetNextID(ctx)
	if err != nil {
		return nil, err
	}
	record := &secondary.CommentRecord{
		ID:        nextID,
		RundownID: rundownID,
		AuthorID:  user.UserID,
		Text:      text,
	}
	if err := s.commentRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	if err := s.logWriter.LogCreate(ctx, "comment", record.ID); err != nil {
		return nil, err
	}

	comment := recordToComment(record)
	comment.AuthorName = user.Name
	return comment, nil
}

// ListComments retrieves comments oldest first.
func (s *CommentServiceImpl) ListComments(ctx context.Context, rundownID string) ([]*primary.Comment, error) {
	if _, err := s.rundownRepo.GetByID(ctx, rundownID, false); err != nil {
		return nil, err
	}

	records, err := s.commentRepo.ListByRundown(ctx, rundownID)
	if err != nil {
		return nil, err
	}

	comments := make([]*primary.Comment, len(records))
	for i, r := range records {
		comments[i] = recordToComment(r)
	}
	return comments, nil
}

func recordToComment(r *secondary.CommentRecord) *primary.Comment {
	return &primary.Comment{
		ID:         r.ID,
		RundownID:  r.RundownID,
		AuthorID:   r.AuthorID,
		AuthorName: r.AuthorName,
		Text:       r.Text,
		CreatedAt:  r.CreatedAt,
	}
}

// Ensure CommentServiceImpl implements the interface
var _ primary.CommentService = (*CommentServiceImpl)(nil)
