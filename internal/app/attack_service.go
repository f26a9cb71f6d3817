package app

import (
	"context"
	"fmt"

	"github.com/Nolimiter/nOHACK/internal/models"
	"github.com/Nolimiter/nOHACK/internal/ports/primary"
	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

// AttackServiceImpl implements the AttackService interface.
type AttackServiceImpl struct {
	attacks secondary.AttackRepository
}

// NewAttackService creates an AttackService with injected dependencies.
func NewAttackService(attacks secondary.AttackRepository) *AttackServiceImpl {
	return &AttackServiceImpl{attacks: attacks}
}

// ListLaunched retrieves attacks the user has launched, newest first.
func (s *AttackServiceImpl) ListLaunched(ctx context.Context, userID string) ([]*models.Attack, error) {
	attacks, err := s.attacks.ListByAttacker(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list launched attacks: %w", err)
	}
	return attacks, nil
}

// ListSuffered retrieves attacks against the user, newest first.
func (s *AttackServiceImpl) ListSuffered(ctx context.Context, userID string) ([]*models.Attack, error) {
	attacks, err := s.attacks.ListByDefender(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list suffered attacks: %w", err)
	}
	return attacks, nil
}

// Ensure AttackServiceImpl implements the interface
var _ primary.AttackService = (*AttackServiceImpl)(nil)
