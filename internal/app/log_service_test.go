package app

import (
	"context"
	"testing"

	"github.com/example/newsroom/internal/ports/primary"
	"github.com/example/newsroom/internal/ports/secondary"
)

func newTestLogService() (*LogServiceImpl, *mockAuditLogRepository) {
	repo := newMockAuditLogRepository()
	return NewLogService(repo), repo
}

func TestListLogs(t *testing.T) {
	service, repo := newTestLogService()
	ctx := context.Background()

	repo.entries = []*secondary.AuditLogRecord{
		{ID: "LOG-0001", EntityType: "rundown", EntityID: "RD-001", Action: "create", ActorID: "USR-001"},
		{ID: "LOG-0002", EntityType: "block", EntityID: "BLK-001", Action: "create", ActorID: "USR-001"},
		{ID: "LOG-0003", EntityType: "rundown", EntityID: "RD-001", Action: "update", FieldName: "status", OldValue: "draft", NewValue: "approved"},
	}

	all, err := service.ListLogs(ctx, primary.LogFilters{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 3 || all[0].ID != "LOG-0003" {
		t.Errorf("expected newest first, got %+v", all)
	}
	if all[0].FieldName != "status" || all[0].OldValue != "draft" || all[0].NewValue != "approved" {
		t.Errorf("unexpected entry mapping: %+v", all[0])
	}

	rundownOnly, err := service.ListLogs(ctx, primary.LogFilters{EntityType: "rundown", Limit: 1})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rundownOnly) != 1 || rundownOnly[0].ID != "LOG-0003" {
		t.Errorf("unexpected filtered entries: %+v", rundownOnly)
	}
}
