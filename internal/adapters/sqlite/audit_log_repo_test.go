package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/newsroom/internal/adapters/sqlite"
	"github.com/example/newsroom/internal/ctxutil"
	"github.com/example/newsroom/internal/ports/secondary"
)

func TestLogWriterAdapter_WritesAuditTrail(t *testing.T) {
	ctx := ctxutil.WithActor(context.Background(), ctxutil.Actor{ID: "USR-001"})
	repo := sqlite.NewAuditLogRepository(setupTestDB(t))
	writer := sqlite.NewLogWriterAdapter(repo)

	require.NoError(t, writer.LogCreate(ctx, "rundown", "RD-001"))
	require.NoError(t, writer.LogUpdate(ctx, "rundown", "RD-001", "status", "draft", "approved"))
	require.NoError(t, writer.LogDelete(context.Background(), "item", "ITEM-003"))

	entries, err := repo.List(context.Background(), secondary.AuditLogFilters{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "LOG-0003", entries[0].ID, "newest first")
	assert.Empty(t, entries[0].ActorID)

	updates, err := repo.List(context.Background(), secondary.AuditLogFilters{EntityID: "RD-001", Action: "update"})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, "status", updates[0].FieldName)
	assert.Equal(t, "draft", updates[0].OldValue)
	assert.Equal(t, "approved", updates[0].NewValue)
	assert.Equal(t, "USR-001", updates[0].ActorID)

	limited, err := repo.List(context.Background(), secondary.AuditLogFilters{EntityType: "rundown", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
