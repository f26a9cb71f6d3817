package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Nolimiter/nOHACK/internal/core/outcome"
	"github.com/Nolimiter/nOHACK/internal/models"
	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

// runParams is the immutable snapshot handed to an execution unit at
// admission time.
type runParams struct {
	op            *models.Operation
	rate          float64
	cost          int64
	defenderID    string
	targetProfile outcome.Profile
}

// runOperation is the per-operation execution unit. It advances progress
// in fixed ticks, then resolves the outcome. All persistence here uses a
// background context: once admitted, an operation outlives the request
// that started it, and only an explicit cancel stops it. A panic
// anywhere in the unit drives the operation to a failed terminal record
// rather than leaving it stuck in_progress.
func (s *OperationServiceImpl) runOperation(ctx context.Context, state *runState, p runParams) {
	defer s.wg.Done()
	defer s.runs.remove(p.op.ID)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("operation %s: execution panic: %v", p.op.ID, r)
			s.failOperation(state, p.op, fmt.Sprintf("internal error: %v", r))
		}
	}()

	step := 100.0 / float64(s.cfg.Ticks)
	progress := 0.0

	for i := 0; i < s.cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.cfg.TickInterval):
		}

		progress += step
		if progress > 100 {
			progress = 100
		}
		if !s.tickProgress(state, p, progress) {
			return
		}
	}

	s.resolveOutcome(state, p)
}

// tickProgress persists and publishes one progress step. Returns false
// when the operation already reached a terminal state, which stops the
// execution unit.
func (s *OperationServiceImpl) tickProgress(state *runState, p runParams, progress float64) bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.done {
		return false
	}

	p.op.Progress = progress
	p.op.UpdatedAt = s.clock()
	if err := s.operations.Update(context.Background(), p.op); err != nil {
		log.Printf("operation %s: persist progress: %v", p.op.ID, err)
	}
	s.sink.Publish(p.op.UserID, secondary.EventOperationProgress, map[string]any{
		"operationId": p.op.ID,
		"progress":    progress,
	})
	return true
}

// resolveOutcome draws the result, claims the terminal transition, then
// settles rewards or penalties. The claim happens before any settlement:
// once this unit wins the terminal write a concurrent cancel can no
// longer refund, and if cancel won first nothing is credited here.
func (s *OperationServiceImpl) resolveOutcome(state *runState, p runParams) {
	ctx := context.Background()
	success := s.rng.Float64()*100 <= p.rate

	result := &models.OperationResult{Success: success}
	if success {
		result.Loot = outcome.Loot(p.op.Type, s.rng)
	}

	if !s.claimTerminal(state, p.op, result) {
		return
	}

	if success {
		if result.Loot.Bitcoins > 0 {
			if err := s.users.CreditBitcoins(ctx, p.op.UserID, result.Loot.Bitcoins); err != nil {
				log.Printf("operation %s: credit loot: %v", p.op.ID, err)
			}
		}
		xp := outcome.ExperienceGain(p.op.Type)
		rep := outcome.ReputationGain(p.op.Type)
		if err := s.users.ApplyProgress(ctx, p.op.UserID, xp, rep); err != nil {
			log.Printf("operation %s: apply progression: %v", p.op.ID, err)
		}
		// History records and detection rolls exist only for successful
		// breaches of a real defender.
		if p.defenderID != "" {
			s.recordAttack(ctx, p, result)
		}
	} else {
		// Failed attempts cost a point of reputation.
		if err := s.users.ApplyProgress(ctx, p.op.UserID, 0, -1); err != nil {
			log.Printf("operation %s: apply penalty: %v", p.op.ID, err)
		}
	}
}

// claimTerminal writes the completed or failed terminal record and
// publishes the completion event, exactly once. Returns false when a
// cancel already claimed the terminal state.
func (s *OperationServiceImpl) claimTerminal(state *runState, op *models.Operation, result *models.OperationResult) bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.done {
		return false
	}

	now := s.clock()
	op.Status = models.OperationStatusCompleted
	if !result.Success {
		op.Status = models.OperationStatusFailed
	}
	op.Progress = 100
	op.Result = result
	op.CompletedAt = &now
	op.UpdatedAt = now
	if err := s.operations.Update(context.Background(), op); err != nil {
		log.Printf("operation %s: persist outcome: %v", op.ID, err)
	}
	state.done = true

	s.sink.Publish(op.UserID, secondary.EventOperationComplete, map[string]any{
		"operationId": op.ID,
		"success":     result.Success,
		"result":      result,
	})
	return true
}

// recordAttack writes the append-only attack record and rolls detection
// against the defender's real defenses. Detected attacks alert the
// defender; the attacker is never told.
func (s *OperationServiceImpl) recordAttack(ctx context.Context, p runParams, result *models.OperationResult) {
	attacker, err := s.users.GetByID(ctx, p.op.UserID)
	if err != nil {
		log.Printf("operation %s: load attacker for record: %v", p.op.ID, err)
		return
	}

	defense := outcome.DefenseProfile{FirewallLevel: 1}
	if d, err := s.defenses.Get(ctx, p.defenderID); err == nil {
		defense = outcome.DefenseProfile{
			FirewallLevel: d.FirewallLevel,
			IDSLevel:      d.IDSLevel,
		}
	}

	prob := outcome.DetectionProbability(defense,
		outcome.Profile{Level: p.targetProfile.Level},
		outcome.Profile{Level: attacker.Level},
		p.op.Type,
	)
	detected := s.rng.Float64()*100 <= prob

	attack := &models.Attack{
		ID:         s.idGen(),
		AttackerID: p.op.UserID,
		DefenderID: p.defenderID,
		Type:       p.op.Type,
		Success:    result.Success,
		Damage:     outcome.Damage(p.op.Type),
		Loot:       result.Loot,
		Detected:   detected,
		Timestamp:  s.clock(),
	}
	if err := s.attacks.Create(ctx, attack); err != nil {
		log.Printf("operation %s: record attack: %v", p.op.ID, err)
	}

	if detected {
		s.sink.Publish(p.defenderID, secondary.EventDefenseAlert, map[string]any{
			"attackType": p.op.Type,
			"attackerId": p.op.UserID,
			"timestamp":  attack.Timestamp,
		})
	}
}

// failOperation drives an operation to the failed terminal state with an
// error message. Used by the panic recovery path.
func (s *OperationServiceImpl) failOperation(state *runState, op *models.Operation, msg string) {
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.done {
		return
	}

	now := s.clock()
	op.Status = models.OperationStatusFailed
	op.Result = &models.OperationResult{Success: false, Error: msg}
	op.CompletedAt = &now
	op.UpdatedAt = now
	if err := s.operations.Update(context.Background(), op); err != nil {
		log.Printf("operation %s: persist failure: %v", op.ID, err)
	}
	state.done = true

	s.sink.Publish(op.UserID, secondary.EventOperationComplete, map[string]any{
		"operationId": op.ID,
		"success":     false,
		"result":      op.Result,
	})
}
