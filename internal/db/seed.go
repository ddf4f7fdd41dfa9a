package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with development fixtures: programs,
// an admin and an editor, and one drafted rundown.
// passwordHash is stored for both users.
func SeedFixtures(database *sql.DB, passwordHash string) error {
	// Programs
	programs := []struct {
		id, name string
		duration int
		active   bool
	}{
		{"PROG-001", "Jornal da Noite", 2700, true},
		{"PROG-002", "Bom Dia Cidade", 1800, true},
		{"PROG-003", "Esporte em Foco", 900, false},
	}
	for _, p := range programs {
		if _, err := database.Exec(
			"INSERT INTO programs (id, name, default_duration, active) VALUES (?, ?, ?, ?)",
			p.id, p.name, p.duration, p.active,
		); err != nil {
			return fmt.Errorf("seed programs: %w", err)
		}
	}

	// Users
	users := []struct{ id, email, name, role string }{
		{"USR-001", "admin@newsroom.local", "Administrador", "admin"},
		{"USR-002", "editor@newsroom.local", "Marta Editora", "editor"},
	}
	for _, u := range users {
		if _, err := database.Exec(
			"INSERT INTO users (id, email, name, password_hash, role) VALUES (?, ?, ?, ?, ?)",
			u.id, u.email, u.name, passwordHash, u.role,
		); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	// Rundowns
	if _, err := database.Exec(
		`INSERT INTO rundowns (id, program_id, air_date, air_time, editor, presenters, mode, status, created_by)
		 VALUES ('RD-001', 'PROG-001', '2024-05-01', '20:00:00', 'Marta Editora', '["Ana Souza","Carlos Lima"]', 'live', 'draft', 'USR-002')`,
	); err != nil {
		return fmt.Errorf("seed rundowns: %w", err)
	}

	// Blocks (planned/real are the cached aggregates of their items)
	blocks := []struct {
		id, title string
		position  int
		planned   int
	}{
		{"BLK-001", "Bloco 1", 1, 750},
		{"BLK-002", "Bloco 2", 2, 420},
	}
	for _, b := range blocks {
		if _, err := database.Exec(
			"INSERT INTO blocks (id, rundown_id, position, title, planned_duration) VALUES (?, 'RD-001', ?, ?, ?)",
			b.id, b.position, b.title, b.planned,
		); err != nil {
			return fmt.Errorf("seed blocks: %w", err)
		}
	}

	// Items (breaks carry no people and no status)
	items := []struct {
		id, blockID, itemType, title, talent, reporter string
		position, planned                              int
		status                                         sql.NullString
	}{
		{"ITEM-001", "BLK-001", "VT", "Abertura", "Ana Souza", "", 1, 300, sql.NullString{String: "approved", Valid: true}},
		{"ITEM-002", "BLK-001", "REP", "Enchentes no litoral", "", "Paulo Reis", 2, 450, sql.NullString{String: "producing", Valid: true}},
		{"ITEM-003", "BLK-002", "BREAK", "Intervalo comercial", "", "", 1, 180, sql.NullString{}},
		{"ITEM-004", "BLK-002", "LIVE", "Link ao vivo do aeroporto", "Carlos Lima", "Joana Prado", 2, 240, sql.NullString{String: "awaiting", Valid: true}},
	}
	for _, it := range items {
		var talent, reporter sql.NullString
		if it.talent != "" {
			talent = sql.NullString{String: it.talent, Valid: true}
		}
		if it.reporter != "" {
			reporter = sql.NullString{String: it.reporter, Valid: true}
		}
		if _, err := database.Exec(
			`INSERT INTO items (id, block_id, position, type, title, talent, reporter, planned_duration, status)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.id, it.blockID, it.position, it.itemType, it.title, talent, reporter, it.planned, it.status,
		); err != nil {
			return fmt.Errorf("seed items: %w", err)
		}
	}

	// Comments
	if _, err := database.Exec(
		"INSERT INTO comments (id, rundown_id, author_id, text) VALUES ('CMT-001', 'RD-001', 'USR-002', 'Confirmar link do aeroporto ate 19h')",
	); err != nil {
		return fmt.Errorf("seed comments: %w", err)
	}

	return nil
}
