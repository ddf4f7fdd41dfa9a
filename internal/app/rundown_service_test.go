package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/primary"
	"github.com/example/newsroom/internal/ports/secondary"
)

type rundownFixture struct {
	service  *RundownServiceImpl
	programs *mockProgramRepository
	rundowns *mockRundownRepository
	blocks   *mockBlockRepository
	items    *mockItemRepository
	identity *mockSessionGateway
	log      *mockLogWriter
}

func newTestRundownService() *rundownFixture {
	programs := newMockProgramRepository()
	programs.programs["PROG-001"] = &secondary.ProgramRecord{ID: "PROG-001", Name: "Jornal da Noite", DefaultDuration: 2700, Active: true}
	programs.programs["PROG-002"] = &secondary.ProgramRecord{ID: "PROG-002", Name: "Arquivo", Active: false}

	items := newMockItemRepository()
	f := &rundownFixture{
		programs: programs,
		rundowns: newMockRundownRepository(),
		blocks:   newMockBlockRepository(items),
		items:    items,
		identity: newMockSessionGateway(newMockUserRepository()),
		log:      &mockLogWriter{},
	}
	f.identity.current = &secondary.Identity{UserID: "USR-001", Name: "Ana Editora"}
	f.service = NewRundownService(f.programs, f.rundowns, f.blocks, f.items, f.identity, f.log, RundownOptions{})
	return f
}

// load provisions the 2024-05-01 rundown of PROG-001.
func (f *rundownFixture) load(t *testing.T, blocks ...string) *primary.Rundown {
	t.Helper()
	resp, err := f.service.LoadRundown(context.Background(), primary.LoadRundownRequest{
		AirDate:       "2024-05-01",
		ProgramID:     "PROG-001",
		InitialBlocks: blocks,
	})
	if err != nil {
		t.Fatalf("LoadRundown failed: %v", err)
	}
	return resp.Rundown
}

func (f *rundownFixture) addItem(t *testing.T, blockID, title string, planned int) string {
	t.Helper()
	resp, err := f.service.AddItem(context.Background(), primary.AddItemRequest{
		BlockID: blockID,
		Type:    "VT",
		Title:   title,
		Planned: planned,
	})
	if err != nil {
		t.Fatalf("AddItem(%s) failed: %v", title, err)
	}
	return resp.EntityID
}

func blockIDs(r *primary.Rundown) []string {
	ids := make([]string, len(r.Blocks))
	for i, b := range r.Blocks {
		ids[i] = b.ID
	}
	return ids
}

func itemIDs(b *primary.Block) []string {
	ids := make([]string, len(b.Items))
	for i, it := range b.Items {
		ids[i] = it.ID
	}
	return ids
}

func intPtr(v int) *int { return &v }

// ============================================================================
// LoadRundown Tests
// ============================================================================

func TestLoadRundown_ProvisionsEmptyDraft(t *testing.T) {
	f := newTestRundownService()

	resp, err := f.service.LoadRundown(context.Background(), primary.LoadRundownRequest{
		AirDate:   "2024-05-01",
		ProgramID: "PROG-001",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !resp.Created {
		t.Error("expected Created to be true")
	}
	r := resp.Rundown
	if r.Status != "draft" || r.Mode != "live" {
		t.Errorf("expected draft/live, got %s/%s", r.Status, r.Mode)
	}
	if r.AirTime != DefaultAirTime {
		t.Errorf("expected air time %s, got %s", DefaultAirTime, r.AirTime)
	}
	if r.CreatedBy != "USR-001" {
		t.Errorf("expected created_by USR-001, got %q", r.CreatedBy)
	}
	if r.Blocks == nil || len(r.Blocks) != 0 {
		t.Errorf("expected empty non-nil blocks, got %v", r.Blocks)
	}
	if r.Real == nil || *r.Real != 0 {
		t.Errorf("expected zero real total for an empty rundown, got %v", r.Real)
	}
	if len(f.log.entries) != 1 || f.log.entries[0] != "create rundown RD-001" {
		t.Errorf("unexpected audit entries: %v", f.log.entries)
	}
}

func TestLoadRundown_ReturnsExistingRundown(t *testing.T) {
	f := newTestRundownService()
	first := f.load(t, "Bloco 1")

	resp, err := f.service.LoadRundown(context.Background(), primary.LoadRundownRequest{
		AirDate:       "2024-05-01",
		ProgramID:     "PROG-001",
		InitialBlocks: []string{"ignored"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Created {
		t.Error("expected Created to be false on second load")
	}
	if resp.Rundown.ID != first.ID {
		t.Errorf("expected %s, got %s", first.ID, resp.Rundown.ID)
	}
	if len(resp.Rundown.Blocks) != 1 {
		t.Errorf("initial blocks must only apply on creation, got %d blocks", len(resp.Rundown.Blocks))
	}
	if len(f.rundowns.rundowns) != 1 {
		t.Errorf("expected a single rundown, got %d", len(f.rundowns.rundowns))
	}
}

func TestLoadRundown_AnonymousCreatorIsEmpty(t *testing.T) {
	f := newTestRundownService()
	f.identity.current = nil

	r := f.load(t)
	if r.CreatedBy != "" {
		t.Errorf("expected empty created_by, got %q", r.CreatedBy)
	}
}

func TestLoadRundown_Validation(t *testing.T) {
	tests := []struct {
		name      string
		req       primary.LoadRundownRequest
		wantKind  errs.Kind
		wantInMsg string
	}{
		{
			name:     "bad date",
			req:      primary.LoadRundownRequest{AirDate: "01/05/2024", ProgramID: "PROG-001"},
			wantKind: errs.KindInvalidInput,
		},
		{
			name:     "missing program id",
			req:      primary.LoadRundownRequest{AirDate: "2024-05-01"},
			wantKind: errs.KindInvalidInput,
		},
		{
			name:     "unknown program",
			req:      primary.LoadRundownRequest{AirDate: "2024-05-01", ProgramID: "PROG-999"},
			wantKind: errs.KindNotFound,
		},
		{
			name:      "inactive program",
			req:       primary.LoadRundownRequest{AirDate: "2024-05-01", ProgramID: "PROG-002"},
			wantKind:  errs.KindNotFound,
			wantInMsg: "not active",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestRundownService()
			_, err := f.service.LoadRundown(context.Background(), tt.req)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if errs.KindOf(err) != tt.wantKind {
				t.Errorf("expected kind %v, got %v (%v)", tt.wantKind, errs.KindOf(err), err)
			}
			if tt.wantInMsg != "" && !strings.Contains(err.Error(), tt.wantInMsg) {
				t.Errorf("expected %q in %q", tt.wantInMsg, err.Error())
			}
			if len(f.rundowns.rundowns) != 0 {
				t.Error("no rundown should be created")
			}
		})
	}
}

func TestLoadRundown_InitialBlocksInOrder(t *testing.T) {
	f := newTestRundownService()

	r := f.load(t, "Abertura", "", "Encerramento")

	if len(r.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(r.Blocks))
	}
	titles := []string{r.Blocks[0].Title, r.Blocks[1].Title, r.Blocks[2].Title}
	want := []string{"Abertura", "Bloco 2", "Encerramento"}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("block %d: expected %q, got %q", i, want[i], titles[i])
		}
	}
	for _, b := range r.Blocks {
		if b.Items == nil {
			t.Errorf("block %s: items must be non-nil", b.ID)
		}
	}
}

func TestLoadRundown_InitialBlockFailureNamesOrphan(t *testing.T) {
	f := newTestRundownService()
	f.blocks.createErr = errs.Persistence("create block", errors.New("disk full"))

	_, err := f.service.LoadRundown(context.Background(), primary.LoadRundownRequest{
		AirDate:       "2024-05-01",
		ProgramID:     "PROG-001",
		InitialBlocks: []string{"Bloco 1"},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errs.KindOf(err) != errs.KindPersistence {
		t.Errorf("expected persistence failure, got %v", errs.KindOf(err))
	}
	if !strings.Contains(err.Error(), "RD-001") {
		t.Errorf("expected orphaned rundown id in %q", err.Error())
	}
	if _, ok := f.rundowns.rundowns["RD-001"]; !ok {
		t.Error("rundown stays created; there is no rollback")
	}
}

func TestLoadRundown_LostRaceReturnsWinner(t *testing.T) {
	f := newTestRundownService()
	f.rundowns.raceWinner = &secondary.RundownRecord{
		ID:        "RD-900",
		ProgramID: "PROG-001",
		AirDate:   "2024-05-01",
		AirTime:   "20:00:00",
		Mode:      "live",
		Status:    "draft",
	}

	resp, err := f.service.LoadRundown(context.Background(), primary.LoadRundownRequest{
		AirDate:   "2024-05-01",
		ProgramID: "PROG-001",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Rundown.ID != "RD-900" {
		t.Errorf("expected winner RD-900, got %s", resp.Rundown.ID)
	}
	if resp.Created {
		t.Error("expected Created to be false after losing the race")
	}
}

func TestLoadRundown_CreateFailure(t *testing.T) {
	f := newTestRundownService()
	f.rundowns.createErr = errs.Persistence("create rundown", errors.New("database is locked"))

	_, err := f.service.LoadRundown(context.Background(), primary.LoadRundownRequest{
		AirDate:   "2024-05-01",
		ProgramID: "PROG-001",
	})
	if errs.KindOf(err) != errs.KindPersistence {
		t.Fatalf("expected persistence failure, got %v", err)
	}
}

// ============================================================================
// End-to-end Scenario
// ============================================================================

func TestRundownService_EndToEndScenario(t *testing.T) {
	f := newTestRundownService()
	ctx := context.Background()

	r := f.load(t)
	if r.Status != "draft" || r.Mode != "live" {
		t.Fatalf("expected draft/live, got %s/%s", r.Status, r.Mode)
	}

	blockResp, err := f.service.AddBlock(ctx, primary.AddBlockRequest{RundownID: r.ID, Title: "Bloco 1"})
	if err != nil {
		t.Fatalf("AddBlock failed: %v", err)
	}
	blockID := blockResp.EntityID
	first := f.addItem(t, blockID, "Abertura", 300)
	second := f.addItem(t, blockID, "Reportagem", 450)

	got, err := f.service.GetRundown(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRundown failed: %v", err)
	}
	block := got.Blocks[0]
	if block.Planned != 750 || block.Real != nil {
		t.Errorf("expected planned 750 / real nil, got %d / %v", block.Planned, block.Real)
	}

	for id, secs := range map[string]int{first: 310, second: 440} {
		if _, err := f.service.UpdateItem(ctx, primary.UpdateItemRequest{ItemID: id, Real: intPtr(secs)}); err != nil {
			t.Fatalf("UpdateItem(%s) failed: %v", id, err)
		}
	}

	got, err = f.service.GetRundown(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRundown failed: %v", err)
	}
	block = got.Blocks[0]
	if block.Planned != 750 || block.Real == nil || *block.Real != 750 {
		t.Errorf("expected planned 750 / real 750, got %d / %v", block.Planned, block.Real)
	}
	if got.Planned != 750 || got.Real == nil || *got.Real != 750 {
		t.Errorf("expected rundown totals 750 / 750, got %d / %v", got.Planned, got.Real)
	}

	cached := f.blocks.blocks[blockID]
	if cached.PlannedDuration != 750 || cached.RealDuration == nil || *cached.RealDuration != 750 {
		t.Errorf("block cache not refreshed: %d / %v", cached.PlannedDuration, cached.RealDuration)
	}

	for _, target := range []string{"approved", "on_air"} {
		resp, err := f.service.TransitionRundown(ctx, primary.TransitionRundownRequest{RundownID: r.ID, Target: target})
		if err != nil {
			t.Fatalf("transition to %s failed: %v", target, err)
		}
		if resp.To != target || !resp.Changed {
			t.Errorf("expected changed transition to %s, got %+v", target, resp)
		}
	}

	now := time.Date(2024, 5, 1, 20, 6, 40, 0, time.UTC)
	timing, err := f.service.Timing(ctx, r.ID, now)
	if err != nil {
		t.Fatalf("Timing failed: %v", err)
	}
	if timing.Elapsed == nil || *timing.Elapsed != 400 {
		t.Errorf("expected elapsed 400, got %v", timing.Elapsed)
	}
	if timing.Progress == nil || *timing.Progress != 53 {
		t.Errorf("expected progress 53, got %v", timing.Progress)
	}
}

// ============================================================================
// UpdateRundownDetails / TransitionRundown / DeleteRundown Tests
// ============================================================================

func TestUpdateRundownDetails(t *testing.T) {
	f := newTestRundownService()
	r := f.load(t)

	editor := "  Carla  "
	presenters := []string{"Bruno", " ", "Dani"}
	mode := "recorded"
	airTime := "21:30:00"
	got, err := f.service.UpdateRundownDetails(context.Background(), primary.UpdateRundownRequest{
		RundownID:  r.ID,
		Editor:     &editor,
		Presenters: &presenters,
		Mode:       &mode,
		AirTime:    &airTime,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Editor != "Carla" || got.Mode != "recorded" || got.AirTime != "21:30:00" {
		t.Errorf("unexpected header: %+v", got)
	}
	if len(got.Presenters) != 2 || got.Presenters[0] != "Bruno" || got.Presenters[1] != "Dani" {
		t.Errorf("unexpected presenters: %v", got.Presenters)
	}
	// create + four field updates
	if len(f.log.entries) != 5 {
		t.Errorf("expected 5 audit entries, got %v", f.log.entries)
	}
}

func TestUpdateRundownDetails_RejectsBadValues(t *testing.T) {
	f := newTestRundownService()
	r := f.load(t)

	mode := "taped"
	if _, err := f.service.UpdateRundownDetails(context.Background(), primary.UpdateRundownRequest{RundownID: r.ID, Mode: &mode}); errs.KindOf(err) != errs.KindInvalidInput {
		t.Errorf("expected invalid input for mode, got %v", err)
	}

	airTime := "25:00:00"
	if _, err := f.service.UpdateRundownDetails(context.Background(), primary.UpdateRundownRequest{RundownID: r.ID, AirTime: &airTime}); errs.KindOf(err) != errs.KindInvalidInput {
		t.Errorf("expected invalid input for air time, got %v", err)
	}
}

func TestTransitionRundown(t *testing.T) {
	tests := []struct {
		name        string
		from        string
		target      string
		force       bool
		wantErr     bool
		wantChanged bool
		wantAudit   string
	}{
		{name: "forward step", from: "draft", target: "approved", wantChanged: true, wantAudit: "update rundown RD-001 status draft->approved"},
		{name: "same state is a no-op", from: "approved", target: "approved"},
		{name: "skip rejected", from: "draft", target: "on_air", wantErr: true},
		{name: "backward rejected", from: "closed", target: "draft", wantErr: true},
		{name: "unknown target rejected", from: "draft", target: "archived", wantErr: true},
		{name: "forced reopen", from: "closed", target: "draft", force: true, wantChanged: true, wantAudit: "update rundown RD-001 status (forced) closed->draft"},
		{name: "forced unknown rejected", from: "draft", target: "archived", force: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestRundownService()
			r := f.load(t)
			f.rundowns.rundowns[r.ID].Status = tt.from
			f.log.entries = nil

			resp, err := f.service.TransitionRundown(context.Background(), primary.TransitionRundownRequest{
				RundownID: r.ID,
				Target:    tt.target,
				Force:     tt.force,
			})

			if tt.wantErr {
				if !errs.IsInvalidTransition(err) {
					t.Fatalf("expected invalid transition, got %v", err)
				}
				if f.rundowns.rundowns[r.ID].Status != tt.from {
					t.Error("status must not change on a rejected transition")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.Changed != tt.wantChanged {
				t.Errorf("expected changed=%v, got %v", tt.wantChanged, resp.Changed)
			}
			if resp.Rundown.Status != tt.target {
				t.Errorf("expected status %s, got %s", tt.target, resp.Rundown.Status)
			}
			if tt.wantAudit != "" && (len(f.log.entries) != 1 || f.log.entries[0] != tt.wantAudit) {
				t.Errorf("expected audit %q, got %v", tt.wantAudit, f.log.entries)
			}
			if tt.wantAudit == "" && len(f.log.entries) != 0 {
				t.Errorf("expected no audit entry, got %v", f.log.entries)
			}
		})
	}
}

func TestDeleteRundown(t *testing.T) {
	f := newTestRundownService()
	ctx := context.Background()
	r := f.load(t)

	if err := f.service.DeleteRundown(ctx, r.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := f.service.GetRundown(ctx, r.ID); !errs.IsNotFound(err) {
		t.Errorf("deleted rundown must be invisible, got %v", err)
	}

	// The slot is free again: a new load provisions a new rundown.
	resp, err := f.service.LoadRundown(ctx, primary.LoadRundownRequest{AirDate: "2024-05-01", ProgramID: "PROG-001"})
	if err != nil {
		t.Fatalf("LoadRundown failed: %v", err)
	}
	if !resp.Created || resp.Rundown.ID == r.ID {
		t.Errorf("expected a fresh rundown, got %s created=%v", resp.Rundown.ID, resp.Created)
	}
}

func TestListRundowns(t *testing.T) {
	f := newTestRundownService()
	ctx := context.Background()
	for _, date := range []string{"2024-05-01", "2024-05-03", "2024-05-02"} {
		if _, err := f.service.LoadRundown(ctx, primary.LoadRundownRequest{AirDate: date, ProgramID: "PROG-001"}); err != nil {
			t.Fatalf("LoadRundown(%s) failed: %v", date, err)
		}
	}

	list, err := f.service.ListRundowns(ctx, primary.RundownFilters{From: "2024-05-02"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 2 || list[0].AirDate != "2024-05-03" || list[1].AirDate != "2024-05-02" {
		t.Errorf("unexpected list: %+v", list)
	}
	if list[0].Blocks != nil {
		t.Error("list headers carry no blocks")
	}

	if _, err := f.service.ListRundowns(ctx, primary.RundownFilters{To: "May 3"}); errs.KindOf(err) != errs.KindInvalidInput {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestTiming_NotOnAir(t *testing.T) {
	f := newTestRundownService()
	r := f.load(t, "Bloco 1")
	f.addItem(t, r.Blocks[0].ID, "VT", 120)

	timing, err := f.service.Timing(context.Background(), r.ID, time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if timing.Planned != 120 {
		t.Errorf("expected planned 120, got %d", timing.Planned)
	}
	if timing.Elapsed != nil || timing.Progress != nil || timing.Remaining != nil {
		t.Error("live fields must be nil unless on air")
	}
}
