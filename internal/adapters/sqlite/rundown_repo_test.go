package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/newsroom/internal/adapters/sqlite"
	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/secondary"
)

func newRundownRecord(id, airDate string) *secondary.RundownRecord {
	return &secondary.RundownRecord{
		ID:        id,
		ProgramID: "PROG-001",
		AirDate:   airDate,
		AirTime:   "20:00:00",
		Mode:      "live",
		Status:    "draft",
		CreatedBy: "USR-001",
	}
}

func TestRundownRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedProgram(t, db, "", "")
	repo := sqlite.NewRundownRepository(db)

	record := newRundownRecord("RD-001", "2024-05-01")
	record.Presenters = []string{"Ana Souza", "Carlos Lima"}
	record.Editor = "Marta"
	require.NoError(t, repo.Create(ctx, record))

	got, err := repo.GetByID(ctx, "RD-001", false)
	require.NoError(t, err)
	assert.Equal(t, "Jornal da Noite", got.ProgramName)
	assert.Equal(t, "2024-05-01", got.AirDate)
	assert.Equal(t, "20:00:00", got.AirTime)
	assert.Equal(t, []string{"Ana Souza", "Carlos Lima"}, got.Presenters)
	assert.Equal(t, "Marta", got.Editor)
	assert.Equal(t, "draft", got.Status)
	assert.Equal(t, "USR-001", got.CreatedBy)
	assert.Empty(t, got.DeletedAt)
}

func TestRundownRepository_SlotConflict(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedProgram(t, db, "", "")
	repo := sqlite.NewRundownRepository(db)

	require.NoError(t, repo.Create(ctx, newRundownRecord("RD-001", "2024-05-01")))
	err := repo.Create(ctx, newRundownRecord("RD-002", "2024-05-01"))
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestRundownRepository_FindBySlot(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedProgram(t, db, "", "")
	seedRundown(t, db, "RD-001", "PROG-001", "2024-05-01")
	repo := sqlite.NewRundownRepository(db)

	got, err := repo.FindBySlot(ctx, "PROG-001", "2024-05-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "RD-001", got.ID)
	assert.Equal(t, []string{}, got.Presenters)

	empty, err := repo.FindBySlot(ctx, "PROG-001", "2024-05-02")
	require.NoError(t, err)
	assert.Nil(t, empty)

	require.NoError(t, repo.SoftDelete(ctx, "RD-001"))
	deleted, err := repo.FindBySlot(ctx, "PROG-001", "2024-05-01")
	require.NoError(t, err)
	assert.Nil(t, deleted, "soft-deleted rundowns are invisible to slot lookup")
}

func TestRundownRepository_SoftDeleteAndRestore(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedProgram(t, db, "", "")
	seedRundown(t, db, "RD-001", "PROG-001", "2024-05-01")
	repo := sqlite.NewRundownRepository(db)

	require.NoError(t, repo.SoftDelete(ctx, "RD-001"))

	_, err := repo.GetByID(ctx, "RD-001", false)
	assert.True(t, errs.IsNotFound(err))

	got, err := repo.GetByID(ctx, "RD-001", true)
	require.NoError(t, err)
	assert.NotEmpty(t, got.DeletedAt)

	trash, err := repo.ListDeleted(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 1)

	assert.True(t, errs.IsNotFound(repo.SoftDelete(ctx, "RD-001")), "already deleted")

	require.NoError(t, repo.Restore(ctx, "RD-001"))
	got, err = repo.GetByID(ctx, "RD-001", false)
	require.NoError(t, err)
	assert.Empty(t, got.DeletedAt)

	assert.True(t, errs.IsNotFound(repo.Restore(ctx, "RD-001")), "restore of a live rundown")
}

func TestRundownRepository_RestoreIntoOccupiedSlot(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedProgram(t, db, "", "")
	seedRundown(t, db, "RD-001", "PROG-001", "2024-05-01")
	repo := sqlite.NewRundownRepository(db)

	require.NoError(t, repo.SoftDelete(ctx, "RD-001"))
	seedRundown(t, db, "RD-002", "PROG-001", "2024-05-01")

	err := repo.Restore(ctx, "RD-001")
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestRundownRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedProgram(t, db, "PROG-001", "Jornal da Noite")
	seedProgram(t, db, "PROG-002", "Bom Dia Cidade")
	seedRundown(t, db, "RD-001", "PROG-001", "2024-05-01")
	seedRundown(t, db, "RD-002", "PROG-001", "2024-05-03")
	seedRundown(t, db, "RD-003", "PROG-002", "2024-05-02")
	repo := sqlite.NewRundownRepository(db)

	all, err := repo.List(ctx, secondary.RundownFilters{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "RD-002", all[0].ID, "newest air date first")
	assert.Equal(t, "RD-001", all[2].ID)

	byProgram, err := repo.List(ctx, secondary.RundownFilters{ProgramID: "PROG-001"})
	require.NoError(t, err)
	assert.Len(t, byProgram, 2)

	ranged, err := repo.List(ctx, secondary.RundownFilters{From: "2024-05-02", To: "2024-05-02"})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "RD-003", ranged[0].ID)

	limited, err := repo.List(ctx, secondary.RundownFilters{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRundownRepository_Update(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedProgram(t, db, "", "")
	seedRundown(t, db, "RD-001", "PROG-001", "2024-05-01")
	repo := sqlite.NewRundownRepository(db)

	record, err := repo.GetByID(ctx, "RD-001", false)
	require.NoError(t, err)

	record.Status = "approved"
	record.Mode = "recorded"
	record.AirTime = "21:30:00"
	record.Presenters = []string{"Ana"}
	require.NoError(t, repo.Update(ctx, record))

	got, err := repo.GetByID(ctx, "RD-001", false)
	require.NoError(t, err)
	assert.Equal(t, "approved", got.Status)
	assert.Equal(t, "recorded", got.Mode)
	assert.Equal(t, "21:30:00", got.AirTime)
	assert.Equal(t, []string{"Ana"}, got.Presenters)

	missing := newRundownRecord("RD-404", "2024-05-09")
	assert.True(t, errs.IsNotFound(repo.Update(ctx, missing)))
}

func TestRundownRepository_GetNextIDCountsDeleted(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedProgram(t, db, "", "")
	seedRundown(t, db, "RD-001", "PROG-001", "2024-05-01")
	repo := sqlite.NewRundownRepository(db)
	require.NoError(t, repo.SoftDelete(ctx, "RD-001"))

	id, err := repo.GetNextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "RD-002", id)
}
