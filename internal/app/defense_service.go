package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nolimiter/nOHACK/internal/models"
	"github.com/Nolimiter/nOHACK/internal/ports/primary"
	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

// DefenseServiceImpl implements the DefenseService interface.
type DefenseServiceImpl struct {
	defenses secondary.DefenseRepository
	users    secondary.UserRepository
	clock    func() time.Time
}

// NewDefenseService creates a DefenseService with injected dependencies.
func NewDefenseService(defenses secondary.DefenseRepository, users secondary.UserRepository) *DefenseServiceImpl {
	return &DefenseServiceImpl{
		defenses: defenses,
		users:    users,
		clock:    time.Now,
	}
}

// GetDefense retrieves a user's defense settings, falling back to the
// baseline when none have been configured yet.
func (s *DefenseServiceImpl) GetDefense(ctx context.Context, userID string) (*models.Defense, error) {
	d, err := s.defenses.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return &models.Defense{
				UserID:          userID,
				FirewallLevel:   1,
				IDSLevel:        0,
				BackupFrequency: "daily",
			}, nil
		}
		return nil, fmt.Errorf("failed to load defense: %w", err)
	}
	return d, nil
}

// UpdateDefense validates and applies new defense settings. Upgrades
// above the current levels cost bitcoins, debited atomically; downgrades
// are free but refund nothing.
func (s *DefenseServiceImpl) UpdateDefense(ctx context.Context, req primary.UpdateDefenseRequest) (*models.Defense, error) {
	if req.FirewallLevel < 1 || req.FirewallLevel > 10 {
		return nil, fmt.Errorf("%w: firewall level must be between 1 and 10", ErrInvalidState)
	}
	if req.IDSLevel < 0 || req.IDSLevel > 10 {
		return nil, fmt.Errorf("%w: ids level must be between 0 and 10", ErrInvalidState)
	}
	if req.BackupFrequency == "" {
		req.BackupFrequency = "daily"
	}

	current, err := s.GetDefense(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	cost := upgradeCost(current, req)
	if cost > 0 {
		if err := s.users.DebitBitcoins(ctx, req.UserID, cost); err != nil {
			return nil, fmt.Errorf("debit upgrade cost: %w", err)
		}
	}

	d := &models.Defense{
		UserID:          req.UserID,
		FirewallLevel:   req.FirewallLevel,
		IDSLevel:        req.IDSLevel,
		HoneypotActive:  req.HoneypotActive,
		BackupFrequency: req.BackupFrequency,
		UpdatedAt:       s.clock(),
	}
	if err := s.defenses.Upsert(ctx, d); err != nil {
		if cost > 0 {
			s.users.CreditBitcoins(ctx, req.UserID, cost)
		}
		return nil, fmt.Errorf("persist defense: %w", err)
	}
	return d, nil
}

// upgradeCost prices the level increases: 50 bitcoins per firewall level
// and 75 per IDS level. Levels at or below the current setting are free.
func upgradeCost(current *models.Defense, req primary.UpdateDefenseRequest) int64 {
	var cost int64
	if req.FirewallLevel > current.FirewallLevel {
		cost += int64(req.FirewallLevel-current.FirewallLevel) * 50
	}
	if req.IDSLevel > current.IDSLevel {
		cost += int64(req.IDSLevel-current.IDSLevel) * 75
	}
	return cost
}

// Ensure DefenseServiceImpl implements the interface
var _ primary.DefenseService = (*DefenseServiceImpl)(nil)
