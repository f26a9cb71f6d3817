package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Nolimiter/nOHACK/internal/models"
	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

// AttackRepository implements secondary.AttackRepository with SQLite.
// The attacks table is append-only; this type exposes no update or
// delete on purpose.
type AttackRepository struct {
	db *sql.DB
}

// NewAttackRepository creates a new SQLite attack repository.
func NewAttackRepository(db *sql.DB) *AttackRepository {
	return &AttackRepository{db: db}
}

// Create appends an attack record.
func (r *AttackRepository) Create(ctx context.Context, attack *models.Attack) error {
	var loot sql.NullString
	if attack.Loot != nil {
		data, err := json.Marshal(attack.Loot)
		if err != nil {
			return fmt.Errorf("failed to encode loot: %w", err)
		}
		loot = sql.NullString{String: string(data), Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO attacks (id, attacker_id, defender_id, type, success, damage, loot, detected, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		attack.ID, attack.AttackerID, attack.DefenderID, attack.Type,
		attack.Success, attack.Damage, loot, attack.Detected, attack.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to create attack: %w", err)
	}
	return nil
}

// ListByAttacker retrieves attacks launched by a user, newest first.
func (r *AttackRepository) ListByAttacker(ctx context.Context, userID string) ([]*models.Attack, error) {
	return r.list(ctx, "attacker_id", userID)
}

// ListByDefender retrieves attacks suffered by a user, newest first.
func (r *AttackRepository) ListByDefender(ctx context.Context, userID string) ([]*models.Attack, error) {
	return r.list(ctx, "defender_id", userID)
}

func (r *AttackRepository) list(ctx context.Context, column, userID string) ([]*models.Attack, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, attacker_id, defender_id, type, success, damage, loot, detected, timestamp FROM attacks WHERE "+column+" = ? ORDER BY timestamp DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attacks: %w", err)
	}
	defer rows.Close()

	var result []*models.Attack
	for rows.Next() {
		var (
			attack models.Attack
			loot   sql.NullString
		)
		if err := rows.Scan(
			&attack.ID, &attack.AttackerID, &attack.DefenderID, &attack.Type,
			&attack.Success, &attack.Damage, &loot, &attack.Detected, &attack.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attack: %w", err)
		}
		if loot.Valid {
			attack.Loot = &models.Loot{}
			if err := json.Unmarshal([]byte(loot.String), attack.Loot); err != nil {
				return nil, fmt.Errorf("failed to decode loot: %w", err)
			}
		}
		result = append(result, &attack)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attacks: %w", err)
	}
	return result, nil
}

// Ensure AttackRepository implements the interface
var _ secondary.AttackRepository = (*AttackRepository)(nil)
