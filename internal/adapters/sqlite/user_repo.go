// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/Nolimiter/nOHACK/internal/models"
	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with SQLite. All
// balance and stat mutations are single conditional UPDATEs, so they are
// safe under concurrent execution units without explicit locking.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, username, password_hash, bitcoins, experience, reputation, level, is_npc, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Username, user.PasswordHash, user.Bitcoins, user.Experience, user.Reputation, user.Level, user.IsNPC, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return secondary.ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, bitcoins, experience, reputation, level, is_npc, created_at, updated_at FROM users WHERE id = ?",
		id,
	))
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, bitcoins, experience, reputation, level, is_npc, created_at, updated_at FROM users WHERE username = ?",
		username,
	))
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.PasswordHash,
		&user.Bitcoins, &user.Experience, &user.Reputation, &user.Level,
		&user.IsNPC, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, secondary.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// DebitBitcoins atomically subtracts amount from the balance. The UPDATE
// only fires when the balance covers the amount, so a concurrent debit
// can never push it negative.
func (r *UserRepository) DebitBitcoins(ctx context.Context, userID string, amount int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET bitcoins = bitcoins - ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND bitcoins >= ?",
		amount, userID, amount,
	)
	if err != nil {
		return fmt.Errorf("failed to debit bitcoins: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check debit result: %w", err)
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, userID); err != nil {
			return err
		}
		return secondary.ErrInsufficientFunds
	}
	return nil
}

// CreditBitcoins atomically adds amount to the balance.
func (r *UserRepository) CreditBitcoins(ctx context.Context, userID string, amount int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET bitcoins = bitcoins + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		amount, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to credit bitcoins: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check credit result: %w", err)
	}
	if affected == 0 {
		return secondary.ErrNotFound
	}
	return nil
}

// ApplyProgress atomically applies experience and reputation deltas, then
// runs the level-up cascade. Each cascade step is a self-referencing
// conditional UPDATE (required XP = level*100), looping until no
// threshold is crossed.
func (r *UserRepository) ApplyProgress(ctx context.Context, userID string, xpDelta, repDelta int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET experience = experience + ?, reputation = reputation + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		xpDelta, repDelta, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to apply progress: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check progress result: %w", err)
	}
	if affected == 0 {
		return secondary.ErrNotFound
	}

	for {
		res, err := r.db.ExecContext(ctx,
			"UPDATE users SET level = level + 1, experience = experience - level * 100 WHERE id = ? AND experience >= level * 100",
			userID,
		)
		if err != nil {
			return fmt.Errorf("failed to apply level up: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check level up result: %w", err)
		}
		if affected == 0 {
			return nil
		}
	}
}

// Ensure UserRepository implements the interface
var _ secondary.UserRepository = (*UserRepository)(nil)
