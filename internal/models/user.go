package models

import "time"

// User is a player (or NPC) account. The bitcoins/experience/reputation/
// level fields are shared across concurrent operations and are only ever
// mutated through the ledger's atomic increments.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Bitcoins     int64     `json:"bitcoins"`
	Experience   int64     `json:"experience"`
	Reputation   int64     `json:"reputation"`
	Level        int       `json:"level"`
	IsNPC        bool      `json:"isNpc"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
