package primary

import (
	"context"

	"github.com/Nolimiter/nOHACK/internal/models"
)

// UpdateDefenseRequest contains the desired defense configuration.
type UpdateDefenseRequest struct {
	UserID          string
	FirewallLevel   int
	IDSLevel        int
	HoneypotActive  bool
	BackupFrequency string
}

// DefenseService manages per-user defense settings.
type DefenseService interface {
	// GetDefense retrieves a user's defense settings, falling back to
	// baseline defaults when none have been configured.
	GetDefense(ctx context.Context, userID string) (*models.Defense, error)

	// UpdateDefense validates and applies new defense settings, debiting
	// the upgrade cost.
	UpdateDefense(ctx context.Context, req UpdateDefenseRequest) (*models.Defense, error)
}

// AttackService exposes the attack history log.
type AttackService interface {
	// ListLaunched retrieves attacks the user has launched, newest first.
	ListLaunched(ctx context.Context, userID string) ([]*models.Attack, error)

	// ListSuffered retrieves attacks against the user, newest first.
	ListSuffered(ctx context.Context, userID string) ([]*models.Attack, error)
}
