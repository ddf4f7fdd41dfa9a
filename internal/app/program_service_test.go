package app

import (
	"context"
	"testing"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/primary"
)

func newTestProgramService() (*ProgramServiceImpl, *mockProgramRepository, *mockLogWriter) {
	repo := newMockProgramRepository()
	log := &mockLogWriter{}
	return NewProgramService(repo, log), repo, log
}

func TestCreateProgram(t *testing.T) {
	service, repo, log := newTestProgramService()

	resp, err := service.CreateProgram(context.Background(), primary.CreateProgramRequest{
		Name:            "  Jornal da Noite ",
		DefaultDuration: 2700,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.ProgramID != "PROG-001" {
		t.Errorf("expected PROG-001, got %s", resp.ProgramID)
	}
	if resp.Program.Name != "Jornal da Noite" || !resp.Program.Active || resp.Program.DefaultDuration != 2700 {
		t.Errorf("unexpected program: %+v", resp.Program)
	}
	if _, ok := repo.programs["PROG-001"]; !ok {
		t.Error("program not persisted")
	}
	if len(log.entries) != 1 {
		t.Errorf("expected one audit entry, got %v", log.entries)
	}
}

func TestCreateProgram_Validation(t *testing.T) {
	service, _, _ := newTestProgramService()

	if _, err := service.CreateProgram(context.Background(), primary.CreateProgramRequest{Name: " "}); errs.KindOf(err) != errs.KindInvalidInput {
		t.Errorf("expected invalid input for empty name, got %v", err)
	}
	if _, err := service.CreateProgram(context.Background(), primary.CreateProgramRequest{Name: "X", DefaultDuration: -1}); errs.KindOf(err) != errs.KindInvalidInput {
		t.Errorf("expected invalid input for negative duration, got %v", err)
	}
}

func TestListPrograms_ActiveOnlyByDefault(t *testing.T) {
	service, _, _ := newTestProgramService()
	ctx := context.Background()

	for _, name := range []string{"B", "A"} {
		if _, err := service.CreateProgram(ctx, primary.CreateProgramRequest{Name: name}); err != nil {
			t.Fatalf("CreateProgram failed: %v", err)
		}
	}
	if err := service.SetProgramActive(ctx, "PROG-001", false); err != nil {
		t.Fatalf("SetProgramActive failed: %v", err)
	}

	active, err := service.ListPrograms(ctx, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(active) != 1 || active[0].Name != "A" {
		t.Errorf("expected only A, got %+v", active)
	}

	all, err := service.ListPrograms(ctx, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 2 || all[0].Name != "A" || all[1].Name != "B" {
		t.Errorf("expected A, B sorted by name, got %+v", all)
	}
}

func TestSetProgramActive(t *testing.T) {
	service, _, log := newTestProgramService()
	ctx := context.Background()
	if _, err := service.CreateProgram(ctx, primary.CreateProgramRequest{Name: "A"}); err != nil {
		t.Fatalf("CreateProgram failed: %v", err)
	}
	log.entries = nil

	// Already active: nothing to do.
	if err := service.SetProgramActive(ctx, "PROG-001", true); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(log.entries) != 0 {
		t.Errorf("expected no audit entry, got %v", log.entries)
	}

	if err := service.SetProgramActive(ctx, "PROG-001", false); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(log.entries) != 1 || log.entries[0] != "update program PROG-001 active true->false" {
		t.Errorf("unexpected audit entries: %v", log.entries)
	}

	if err := service.SetProgramActive(ctx, "PROG-404", true); !errs.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}
