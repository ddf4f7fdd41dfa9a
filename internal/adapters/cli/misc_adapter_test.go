package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/newsroom/internal/ports/primary"
)

// ============================================================================
// Comments
// ============================================================================

type mockCommentService struct {
	comments []*primary.Comment
	addErr   error
}

func (m *mockCommentService) AddComment(ctx context.Context, rundownID, text string) (*primary.Comment, error) {
	if m.addErr != nil {
		return nil, m.addErr
	}
	return &primary.Comment{ID: "CMT-001", RundownID: rundownID, Text: text}, nil
}

func (m *mockCommentService) ListComments(ctx context.Context, rundownID string) ([]*primary.Comment, error) {
	return m.comments, nil
}

func TestCommentAdapter_Add(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewCommentAdapter(&mockCommentService{}, &buf)

	if _, err := adapter.Add(context.Background(), "RUN-001", "cortar VT 2"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "✓ Comment CMT-001 added to RUN-001") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}

func TestCommentAdapter_Add_Error(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewCommentAdapter(&mockCommentService{addErr: errors.New("not signed in")}, &buf)

	if _, err := adapter.Add(context.Background(), "RUN-001", "x"); err == nil {
		t.Fatal("expected error")
	}
}

func TestCommentAdapter_List_FallsBackToAuthorID(t *testing.T) {
	mock := &mockCommentService{comments: []*primary.Comment{
		{ID: "CMT-001", AuthorID: "USR-001", AuthorName: "Ana", Text: "ok", CreatedAt: "2024-05-01T18:00:00Z"},
		{ID: "CMT-002", AuthorID: "USR-002", Text: "atrasar", CreatedAt: "2024-05-01T18:05:00Z"},
	}}
	var buf bytes.Buffer
	adapter := NewCommentAdapter(mock, &buf)

	if _, err := adapter.List(context.Background(), "RUN-001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "Ana: ok") || !strings.Contains(output, "USR-002: atrasar") {
		t.Errorf("unexpected output '%s'", output)
	}
}

// ============================================================================
// Trash
// ============================================================================

type mockTrashService struct {
	deleted []*primary.Rundown
}

func (m *mockTrashService) ListDeleted(ctx context.Context) ([]*primary.Rundown, error) {
	return m.deleted, nil
}

func (m *mockTrashService) Restore(ctx context.Context, rundownID string) (*primary.Rundown, error) {
	return &primary.Rundown{ID: rundownID, ProgramID: "PROG-001", AirDate: "2024-05-01"}, nil
}

func TestTrashAdapter_List(t *testing.T) {
	mock := &mockTrashService{deleted: []*primary.Rundown{
		{ID: "RUN-003", ProgramID: "PROG-001", AirDate: "2024-05-03", Status: "draft", DeletedAt: "2024-05-02T09:00:00Z"},
	}}
	var buf bytes.Buffer
	adapter := NewTrashAdapter(mock, &buf)

	if _, err := adapter.List(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "RUN-003") || !strings.Contains(buf.String(), "2024-05-02T09:00:00Z") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}

func TestTrashAdapter_List_Empty(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewTrashAdapter(&mockTrashService{}, &buf)

	if _, err := adapter.List(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "Trash is empty.") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}

func TestTrashAdapter_Restore(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewTrashAdapter(&mockTrashService{}, &buf)

	if _, err := adapter.Restore(context.Background(), "RUN-003"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "✓ Rundown RUN-003 restored") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}

// ============================================================================
// Auth / Users
// ============================================================================

type mockAuthService struct {
	current *primary.User
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*primary.LoginResponse, error) {
	if password != "secret123" {
		return nil, errors.New("invalid credentials")
	}
	return &primary.LoginResponse{
		User:      &primary.User{ID: "USR-001", Email: email, Name: "Ana", Role: "editor"},
		Token:     "tok",
		ExpiresAt: "2024-05-02T08:00:00Z",
	}, nil
}

func (m *mockAuthService) Logout(ctx context.Context) error { return nil }

func (m *mockAuthService) CurrentUser(ctx context.Context) (*primary.User, error) {
	return m.current, nil
}

func (m *mockAuthService) VerifyToken(ctx context.Context, token string) (*primary.User, error) {
	return m.current, nil
}

type mockUserService struct {
	users []*primary.User
}

func (m *mockUserService) CreateUser(ctx context.Context, req primary.CreateUserRequest) (*primary.User, error) {
	return &primary.User{ID: "USR-002", Email: req.Email, Name: req.Name, Role: req.Role, Active: true}, nil
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]*primary.User, error) {
	return m.users, nil
}

func TestAuthAdapter_Login(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewAuthAdapter(&mockAuthService{}, &mockUserService{}, &buf)

	if _, err := adapter.Login(context.Background(), "ana@newsroom.local", "secret123"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "✓ Signed in as Ana <ana@newsroom.local> (editor)") {
		t.Errorf("unexpected output '%s'", output)
	}
	if !strings.Contains(output, "2024-05-02T08:00:00Z") {
		t.Errorf("expected expiry in output, got '%s'", output)
	}
	if strings.Contains(output, "tok") {
		t.Errorf("token must not be printed, got '%s'", output)
	}
}

func TestAuthAdapter_WhoAmI(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewAuthAdapter(&mockAuthService{}, &mockUserService{}, &buf)

	user, err := adapter.WhoAmI(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user != nil {
		t.Errorf("expected no user, got %+v", user)
	}
	if !strings.Contains(buf.String(), "Not signed in.") {
		t.Errorf("unexpected output '%s'", buf.String())
	}

	buf.Reset()
	adapter = NewAuthAdapter(&mockAuthService{current: &primary.User{ID: "USR-001", Name: "Ana", Email: "ana@newsroom.local", Role: "admin"}}, &mockUserService{}, &buf)
	if _, err := adapter.WhoAmI(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "Ana <ana@newsroom.local> USR-001 (admin)") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}

func TestAuthAdapter_ListUsers(t *testing.T) {
	mock := &mockUserService{users: []*primary.User{
		{ID: "USR-001", Name: "Ana", Email: "ana@newsroom.local", Role: "admin", Active: true},
	}}
	var buf bytes.Buffer
	adapter := NewAuthAdapter(&mockAuthService{}, mock, &buf)

	if _, err := adapter.ListUsers(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "ana@newsroom.local") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}

// ============================================================================
// Audit log
// ============================================================================

type mockLogService struct {
	entries     []*primary.LogEntry
	lastFilters primary.LogFilters
}

func (m *mockLogService) ListLogs(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	m.lastFilters = filters
	return m.entries, nil
}

func TestLogAdapter_List(t *testing.T) {
	mock := &mockLogService{entries: []*primary.LogEntry{
		{Timestamp: "2024-05-01T18:00:00Z", ActorID: "USR-001", Action: "update", EntityType: "rundown", EntityID: "RUN-001", FieldName: "status", OldValue: "draft", NewValue: "approved"},
		{Timestamp: "2024-05-01T17:00:00Z", Action: "create", EntityType: "rundown", EntityID: "RUN-001"},
	}}
	var buf bytes.Buffer
	adapter := NewLogAdapter(mock, &buf)

	if _, err := adapter.List(context.Background(), primary.LogFilters{EntityID: "RUN-001"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastFilters.EntityID != "RUN-001" {
		t.Errorf("expected filters to be passed through, got %+v", mock.lastFilters)
	}
	output := buf.String()
	if !strings.Contains(output, `status: "draft" → "approved"`) {
		t.Errorf("unexpected output '%s'", output)
	}
	if !strings.Contains(output, "rundown RUN-001") {
		t.Errorf("unexpected output '%s'", output)
	}
}

func TestLogAdapter_List_Empty(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewLogAdapter(&mockLogService{}, &buf)

	if _, err := adapter.List(context.Background(), primary.LogFilters{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No audit entries found.") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}
