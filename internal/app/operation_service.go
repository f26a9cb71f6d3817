package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Nolimiter/nOHACK/internal/core/operation"
	"github.com/Nolimiter/nOHACK/internal/core/outcome"
	"github.com/Nolimiter/nOHACK/internal/models"
	"github.com/Nolimiter/nOHACK/internal/ports/primary"
	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

// EngineConfig tunes the background execution units. The zero value
// yields the production defaults; tests shrink the tick interval.
type EngineConfig struct {
	Ticks        int
	TickInterval time.Duration
}

func (c EngineConfig) withDefaults() EngineConfig {
	if c.Ticks <= 0 {
		c.Ticks = 10
	}
	if c.TickInterval <= 0 {
		c.TickInterval = 2 * time.Second
	}
	return c
}

// OperationServiceImpl implements the OperationService interface. It is
// the orchestration core: admission, cost deduction, scheduling of the
// per-operation execution unit, outcome resolution, and cancellation with
// partial refund.
type OperationServiceImpl struct {
	users      secondary.UserRepository
	operations secondary.OperationRepository
	attacks    secondary.AttackRepository
	defenses   secondary.DefenseRepository
	sink       secondary.EventSink

	cfg   EngineConfig
	runs  *runRegistry
	wg    sync.WaitGroup
	clock func() time.Time
	idGen func() string
	rng   outcome.Rand
}

// NewOperationService creates an OperationService with injected
// dependencies. The randomness source is shared by all execution units
// and must be safe for concurrent use (see outcome.NewLockedRand).
func NewOperationService(
	users secondary.UserRepository,
	operations secondary.OperationRepository,
	attacks secondary.AttackRepository,
	defenses secondary.DefenseRepository,
	sink secondary.EventSink,
	cfg EngineConfig,
) *OperationServiceImpl {
	return &OperationServiceImpl{
		users:      users,
		operations: operations,
		attacks:    attacks,
		defenses:   defenses,
		sink:       sink,
		cfg:        cfg.withDefaults(),
		runs:       newRunRegistry(),
		clock:      time.Now,
		idGen:      uuid.NewString,
		rng:        outcome.NewLockedRand(time.Now().UnixNano()),
	}
}

// StartOperation validates and admits a new operation. On success the
// cost has been debited, the record is persisted as in_progress, and an
// independent execution unit has been scheduled; the caller never waits
// for completion.
func (s *OperationServiceImpl) StartOperation(ctx context.Context, req primary.StartOperationRequest) (*models.Operation, error) {
	if guard := operation.CanStart(operation.StartContext{
		Type:       req.Type,
		TargetKind: req.TargetKind,
	}); !guard.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOperationType, guard.Reason)
	}

	attacker, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	target, err := s.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	cost := outcome.Cost(req.Type)
	if cost > 0 {
		if err := s.users.DebitBitcoins(ctx, req.UserID, cost); err != nil {
			return nil, fmt.Errorf("debit operation cost: %w", err)
		}
	}

	now := s.clock()
	op := &models.Operation{
		ID:         s.idGen(),
		UserID:     req.UserID,
		Type:       req.Type,
		TargetID:   req.TargetID,
		TargetKind: req.TargetKind,
		Status:     models.OperationStatusPending,
		Progress:   0,
		StartedAt:  now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.operations.Create(ctx, op); err != nil {
		// Admission failed after the debit; hand the cost back.
		if cost > 0 {
			s.users.CreditBitcoins(ctx, req.UserID, cost)
		}
		return nil, fmt.Errorf("create operation: %w", err)
	}

	op.Status = models.OperationStatusInProgress
	op.UpdatedAt = s.clock()
	if err := s.operations.Update(ctx, op); err != nil {
		if cost > 0 {
			s.users.CreditBitcoins(ctx, req.UserID, cost)
		}
		// Close out the pending record so it never shows up as a live
		// operation that no execution unit owns.
		now := s.clock()
		op.Status = models.OperationStatusFailed
		op.Result = &models.OperationResult{Success: false, Error: "admission failed"}
		op.CompletedAt = &now
		op.UpdatedAt = now
		if uerr := s.operations.Update(ctx, op); uerr != nil {
			log.Printf("operation %s: close out pending record: %v", op.ID, uerr)
		}
		return nil, fmt.Errorf("admit operation: %w", err)
	}

	// The success rate is fixed at admission time.
	rate := outcome.SuccessRate(
		outcome.Profile{Level: attacker.Level, Experience: attacker.Experience},
		target.profile,
		req.Type,
	)

	runCtx, cancel := context.WithCancel(context.Background())
	state := s.runs.add(op.ID, cancel)
	s.wg.Add(1)
	go s.runOperation(runCtx, state, runParams{
		op:            cloneOperation(op),
		rate:          rate,
		cost:          cost,
		defenderID:    target.defenderID,
		targetProfile: target.profile,
	})

	s.sink.Publish(op.UserID, secondary.EventOperationStarted, map[string]any{
		"operationId": op.ID,
		"type":        op.Type,
		"targetId":    op.TargetID,
	})

	return op, nil
}

// resolvedTarget carries what the engine needs to know about a target:
// a stat profile for the outcome math and, when the target is a real
// user, their ID for attack records and detection alerts.
type resolvedTarget struct {
	profile    outcome.Profile
	defenderID string
}

func (s *OperationServiceImpl) resolveTarget(ctx context.Context, req primary.StartOperationRequest) (resolvedTarget, error) {
	switch req.TargetKind {
	case models.TargetKindAddress:
		// Raw addresses get fresh synthetic stats per operation and are
		// never looked up or written back.
		return resolvedTarget{profile: outcome.SyntheticProfile(s.rng)}, nil

	case models.TargetKindNPC:
		target, err := s.users.GetByUsername(ctx, req.TargetID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return resolvedTarget{}, fmt.Errorf("%w: %s", ErrTargetNotFound, req.TargetID)
			}
			return resolvedTarget{}, fmt.Errorf("resolve npc target: %w", err)
		}
		return resolvedTarget{
			profile:    outcome.Profile{Level: target.Level, Experience: target.Experience},
			defenderID: target.ID,
		}, nil

	default: // player
		target, err := s.users.GetByID(ctx, req.TargetID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return resolvedTarget{}, fmt.Errorf("%w: %s", ErrTargetNotFound, req.TargetID)
			}
			return resolvedTarget{}, fmt.Errorf("resolve target: %w", err)
		}
		return resolvedTarget{
			profile:    outcome.Profile{Level: target.Level, Experience: target.Experience},
			defenderID: target.ID,
		}, nil
	}
}

// CancelOperation stops a running operation and credits a pro-rated
// refund. Only the owner may cancel, and only while in_progress; a second
// cancel reports ErrInvalidState and issues no second refund.
func (s *OperationServiceImpl) CancelOperation(ctx context.Context, operationID, userID string) (*models.Operation, error) {
	op, err := s.operations.GetByID(ctx, operationID)
	if err != nil {
		return nil, fmt.Errorf("get operation: %w", err)
	}

	guard := operation.CanCancel(operation.CancelContext{
		OperationID: op.ID,
		OwnerID:     op.UserID,
		CallerID:    userID,
		Status:      op.Status,
	})
	if !guard.Allowed {
		if op.UserID != userID {
			return nil, fmt.Errorf("%w: %s", ErrForbidden, guard.Reason)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidState, guard.Reason)
	}

	state, ok := s.runs.get(op.ID)
	if !ok {
		// The execution unit finished between the read above and now.
		return nil, fmt.Errorf("%w: operation already finished", ErrInvalidState)
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	if state.done {
		return nil, fmt.Errorf("%w: operation already finished", ErrInvalidState)
	}

	// Stop the execution unit. It observes the signal at its next tick
	// boundary and exits without drawing an outcome.
	state.cancel()

	// Re-read under the run lock so the refund uses the exact progress
	// the unit last persisted.
	op, err = s.operations.GetByID(ctx, operationID)
	if err != nil {
		return nil, fmt.Errorf("get operation: %w", err)
	}

	refund := prorateRefund(outcome.Cost(op.Type), op.Progress)
	if refund > 0 {
		if err := s.users.CreditBitcoins(ctx, op.UserID, refund); err != nil {
			return nil, fmt.Errorf("credit refund: %w", err)
		}
	}

	now := s.clock()
	op.Status = models.OperationStatusCancelled
	op.CompletedAt = &now
	op.UpdatedAt = now
	op.Result = &models.OperationResult{
		Success:   false,
		Cancelled: true,
		Refund:    refund,
	}
	if err := s.operations.Update(ctx, op); err != nil {
		return nil, fmt.Errorf("persist cancellation: %w", err)
	}
	state.done = true

	s.sink.Publish(op.UserID, secondary.EventOperationComplete, map[string]any{
		"operationId": op.ID,
		"success":     false,
		"result":      op.Result,
	})

	return op, nil
}

// GetOperation retrieves an operation by ID.
func (s *OperationServiceImpl) GetOperation(ctx context.Context, operationID string) (*models.Operation, error) {
	return s.operations.GetByID(ctx, operationID)
}

// ListOperations retrieves a user's operations, newest first.
func (s *OperationServiceImpl) ListOperations(ctx context.Context, userID string) ([]*models.Operation, error) {
	ops, err := s.operations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	return ops, nil
}

// Wait blocks until every in-flight execution unit has exited. Used for
// graceful shutdown and by tests.
func (s *OperationServiceImpl) Wait() {
	s.wg.Wait()
}

// prorateRefund returns the unspent share of an operation's cost,
// rounded to the nearest bitcoin.
func prorateRefund(cost int64, progress float64) int64 {
	if progress >= 100 {
		return 0
	}
	return int64(float64(cost)*(100-progress)/100 + 0.5)
}

func cloneOperation(op *models.Operation) *models.Operation {
	clone := *op
	return &clone
}

// Ensure OperationServiceImpl implements the interface
var _ primary.OperationService = (*OperationServiceImpl)(nil)
