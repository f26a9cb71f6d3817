package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// npcSeed describes one seeded NPC target.
type npcSeed struct {
	username string
	level    int
	bitcoins int64
	firewall int
	ids      int
}

var npcSeeds = []npcSeed{
	{username: "megacorp-mainframe", level: 8, bitcoins: 5000, firewall: 7, ids: 6},
	{username: "darknet-exchange", level: 6, bitcoins: 3000, firewall: 5, ids: 5},
	{username: "city-powergrid", level: 5, bitcoins: 1500, firewall: 6, ids: 3},
	{username: "startup-cloud", level: 3, bitcoins: 800, firewall: 3, ids: 2},
	{username: "home-router", level: 1, bitcoins: 150, firewall: 1, ids: 0},
}

// Seed inserts the NPC targets when they are not already present.
// Idempotent by username.
func Seed(conn *sql.DB) error {
	for _, npc := range npcSeeds {
		var existing string
		err := conn.QueryRow("SELECT id FROM users WHERE username = ?", npc.username).Scan(&existing)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("failed to check npc %s: %w", npc.username, err)
		}

		id := uuid.NewString()
		xp := int64(npc.level * 100)
		if _, err := conn.Exec(
			"INSERT INTO users (id, username, bitcoins, experience, level, is_npc) VALUES (?, ?, ?, ?, ?, 1)",
			id, npc.username, npc.bitcoins, xp, npc.level,
		); err != nil {
			return fmt.Errorf("failed to seed npc %s: %w", npc.username, err)
		}
		if _, err := conn.Exec(
			"INSERT INTO defenses (user_id, firewall_level, ids_level) VALUES (?, ?, ?)",
			id, npc.firewall, npc.ids,
		); err != nil {
			return fmt.Errorf("failed to seed npc defense %s: %w", npc.username, err)
		}
	}
	return nil
}
