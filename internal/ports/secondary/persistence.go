// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application
// drives external systems.
package secondary

import (
	"context"
	"errors"

	"github.com/Nolimiter/nOHACK/internal/models"
)

// Sentinel errors returned by repository implementations. Callers match
// with errors.Is.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientFunds indicates a debit would push a balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicateUsername indicates the username is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
)

// UserRepository is the ledger port: it owns all user persistence and
// every balance/stat mutation. Mutations are atomic increments; callers
// never read-modify-write user stats.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByUsername retrieves a user by username (also used for NPC lookup).
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// DebitBitcoins atomically subtracts amount from the user's balance.
	// Returns ErrInsufficientFunds when the balance would go negative.
	DebitBitcoins(ctx context.Context, userID string, amount int64) error

	// CreditBitcoins atomically adds amount to the user's balance.
	CreditBitcoins(ctx context.Context, userID string, amount int64) error

	// ApplyProgress atomically applies experience and reputation deltas,
	// then performs the level-up cascade (required XP = level*100,
	// looping across thresholds).
	ApplyProgress(ctx context.Context, userID string, xpDelta, repDelta int64) error
}

// OperationRepository persists operation records.
type OperationRepository interface {
	// Create persists a new operation.
	Create(ctx context.Context, op *models.Operation) error

	// Update replaces an existing operation record.
	Update(ctx context.Context, op *models.Operation) error

	// GetByID retrieves an operation by ID.
	GetByID(ctx context.Context, id string) (*models.Operation, error)

	// ListByUser retrieves a user's operations, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Operation, error)
}

// AttackRepository is the append-only attack history log. Records are
// immutable once written; there is deliberately no update or delete.
type AttackRepository interface {
	// Create appends an attack record.
	Create(ctx context.Context, attack *models.Attack) error

	// ListByAttacker retrieves attacks launched by a user, newest first.
	ListByAttacker(ctx context.Context, userID string) ([]*models.Attack, error)

	// ListByDefender retrieves attacks suffered by a user, newest first.
	ListByDefender(ctx context.Context, userID string) ([]*models.Attack, error)
}

// DefenseRepository persists per-user defense settings.
type DefenseRepository interface {
	// Get retrieves a user's defense settings.
	Get(ctx context.Context, userID string) (*models.Defense, error)

	// Upsert creates or replaces a user's defense settings.
	Upsert(ctx context.Context, defense *models.Defense) error
}
