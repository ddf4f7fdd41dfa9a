// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// setupTestDB runs the embedded goose migrations against an in-memory
// database, so tests always exercise the authoritative schema.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	"github.com/example/newsroom/internal/db"
)

// setupTestDB creates a migrated in-memory database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedProgram inserts a test program and returns its ID.
func seedProgram(t *testing.T, db *sql.DB, id, name string) string {
	t.Helper()
	if id == "" {
		id = "PROG-001"
	}
	if name == "" {
		name = "Jornal da Noite"
	}
	_, err := db.Exec("INSERT INTO programs (id, name, default_duration) VALUES (?, ?, 2700)", id, name)
	if err != nil {
		t.Fatalf("failed to seed program: %v", err)
	}
	return id
}

// seedRundown inserts a live draft rundown and returns its ID.
func seedRundown(t *testing.T, db *sql.DB, id, programID, airDate string) string {
	t.Helper()
	if id == "" {
		id = "RD-001"
	}
	if programID == "" {
		programID = "PROG-001"
	}
	if airDate == "" {
		airDate = "2024-05-01"
	}
	_, err := db.Exec("INSERT INTO rundowns (id, program_id, air_date) VALUES (?, ?, ?)", id, programID, airDate)
	if err != nil {
		t.Fatalf("failed to seed rundown: %v", err)
	}
	return id
}

// seedBlock inserts a block and returns its ID.
func seedBlock(t *testing.T, db *sql.DB, id, rundownID string, position int) string {
	t.Helper()
	_, err := db.Exec("INSERT INTO blocks (id, rundown_id, position, title) VALUES (?, ?, ?, ?)", id, rundownID, position, "Bloco "+id)
	if err != nil {
		t.Fatalf("failed to seed block: %v", err)
	}
	return id
}

// seedItem inserts a VT item and returns its ID.
func seedItem(t *testing.T, db *sql.DB, id, blockID string, position, planned int) string {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO items (id, block_id, position, type, title, planned_duration, status) VALUES (?, ?, ?, 'VT', ?, ?, 'awaiting')",
		id, blockID, position, "Item "+id, planned,
	)
	if err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	return id
}

// seedUser inserts a user and returns its ID.
func seedUser(t *testing.T, db *sql.DB, id, email, name string) string {
	t.Helper()
	_, err := db.Exec("INSERT INTO users (id, email, name, password_hash) VALUES (?, ?, ?, 'hash')", id, email, name)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}
