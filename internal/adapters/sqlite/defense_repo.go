package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Nolimiter/nOHACK/internal/models"
	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

// DefenseRepository implements secondary.DefenseRepository with SQLite.
type DefenseRepository struct {
	db *sql.DB
}

// NewDefenseRepository creates a new SQLite defense repository.
func NewDefenseRepository(db *sql.DB) *DefenseRepository {
	return &DefenseRepository{db: db}
}

// Get retrieves a user's defense settings.
func (r *DefenseRepository) Get(ctx context.Context, userID string) (*models.Defense, error) {
	defense := &models.Defense{}
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id, firewall_level, ids_level, honeypot_active, backup_frequency, updated_at FROM defenses WHERE user_id = ?",
		userID,
	).Scan(
		&defense.UserID, &defense.FirewallLevel, &defense.IDSLevel,
		&defense.HoneypotActive, &defense.BackupFrequency, &defense.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, secondary.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get defense: %w", err)
	}
	return defense, nil
}

// Upsert creates or replaces a user's defense settings.
func (r *DefenseRepository) Upsert(ctx context.Context, defense *models.Defense) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO defenses (user_id, firewall_level, ids_level, honeypot_active, backup_frequency, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   firewall_level = excluded.firewall_level,
		   ids_level = excluded.ids_level,
		   honeypot_active = excluded.honeypot_active,
		   backup_frequency = excluded.backup_frequency,
		   updated_at = excluded.updated_at`,
		defense.UserID, defense.FirewallLevel, defense.IDSLevel,
		defense.HoneypotActive, defense.BackupFrequency, defense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert defense: %w", err)
	}
	return nil
}

// Ensure DefenseRepository implements the interface
var _ secondary.DefenseRepository = (*DefenseRepository)(nil)
