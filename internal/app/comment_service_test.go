package app

import (
	"context"
	"testing"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/secondary"
)

func newTestCommentService() (*CommentServiceImpl, *mockCommentRepository, *mockSessionGateway) {
	comments := newMockCommentRepository()
	rundowns := newMockRundownRepository()
	rundowns.rundowns["RD-001"] = &secondary.RundownRecord{ID: "RD-001", ProgramID: "PROG-001", AirDate: "2024-05-01"}
	rundowns.rundowns["RD-002"] = &secondary.RundownRecord{ID: "RD-002", ProgramID: "PROG-001", AirDate: "2024-04-30", DeletedAt: "2024-05-01T00:00:00Z"}

	identity := newMockSessionGateway(newMockUserRepository())
	identity.current = &secondary.Identity{UserID: "USR-001", Name: "Ana Editora"}

	return NewCommentService(comments, rundowns, identity, &mockLogWriter{}), comments, identity
}

func TestAddComment(t *testing.T) {
	service, repo, _ := newTestCommentService()

	comment, err := service.AddComment(context.Background(), "RD-001", "  VT 3 sem áudio  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if comment.ID != "CMT-001" || comment.AuthorID != "USR-001" || comment.AuthorName != "Ana Editora" {
		t.Errorf("unexpected comment: %+v", comment)
	}
	if comment.Text != "VT 3 sem áudio" {
		t.Errorf("expected trimmed text, got %q", comment.Text)
	}
	if len(repo.comments) != 1 {
		t.Errorf("expected 1 stored comment, got %d", len(repo.comments))
	}
}

func TestAddComment_Failures(t *testing.T) {
	tests := []struct {
		name      string
		rundownID string
		text      string
		anonymous bool
		wantKind  errs.Kind
	}{
		{name: "empty text", rundownID: "RD-001", text: "  ", wantKind: errs.KindInvalidInput},
		{name: "signed out", rundownID: "RD-001", text: "ok", anonymous: true, wantKind: errs.KindUnauthenticated},
		{name: "unknown rundown", rundownID: "RD-404", text: "ok", wantKind: errs.KindNotFound},
		{name: "deleted rundown", rundownID: "RD-002", text: "ok", wantKind: errs.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, identity := newTestCommentService()
			if tt.anonymous {
				identity.current = nil
			}

			_, err := service.AddComment(context.Background(), tt.rundownID, tt.text)
			if errs.KindOf(err) != tt.wantKind {
				t.Errorf("expected %v, got %v", tt.wantKind, err)
			}
			if len(repo.comments) != 0 {
				t.Error("no comment should be stored")
			}
		})
	}
}

func TestListComments_OldestFirst(t *testing.T) {
	service, _, _ := newTestCommentService()
	ctx := context.Background()

	for _, text := range []string{"primeiro", "segundo"} {
		if _, err := service.AddComment(ctx, "RD-001", text); err != nil {
			t.Fatalf("AddComment failed: %v", err)
		}
	}

	comments, err := service.ListComments(ctx, "RD-001")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(comments) != 2 || comments[0].Text != "primeiro" || comments[1].Text != "segundo" {
		t.Errorf("unexpected comments: %+v", comments)
	}

	if _, err := service.ListComments(ctx, "RD-404"); !errs.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}
