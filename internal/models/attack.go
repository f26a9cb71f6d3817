package models

import "time"

// Attack is an immutable history record of a successful breach of a
// real defender.
// Attack records are append-only: there is no update or delete path.
type Attack struct {
	ID         string        `json:"id"`
	AttackerID string        `json:"attackerId"`
	DefenderID string        `json:"defenderId"`
	Type       OperationType `json:"type"`
	Success    bool          `json:"success"`
	Damage     int           `json:"damage"`
	Loot       *Loot         `json:"loot,omitempty"`
	Detected   bool          `json:"detected"`
	Timestamp  time.Time     `json:"timestamp"`
}
