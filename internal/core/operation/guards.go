// Package operation contains the pure lifecycle rules for hacking
// operations. Guards evaluate transition preconditions without side
// effects; the engine consults them before every state change.
package operation

import (
	"fmt"

	"github.com/Nolimiter/nOHACK/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// StartContext provides context for admission guards.
type StartContext struct {
	Type       models.OperationType
	TargetKind models.TargetKind
}

// CancelContext provides context for cancellation guards.
type CancelContext struct {
	OperationID string
	OwnerID     string
	CallerID    string
	Status      models.OperationStatus
}

// CanStart evaluates whether an operation may be admitted.
// Rules:
// - Operation type must be a recognized enumeration value
// - Target kind must be player, npc, or address
func CanStart(ctx StartContext) GuardResult {
	if !models.ValidOperationType(ctx.Type) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("unknown operation type %q", ctx.Type),
		}
	}

	switch ctx.TargetKind {
	case models.TargetKindPlayer, models.TargetKindNPC, models.TargetKindAddress:
		return GuardResult{Allowed: true}
	default:
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("unknown target kind %q", ctx.TargetKind),
		}
	}
}

// CanCancel evaluates whether an operation may be cancelled.
// Rules:
// - Caller must be the operation's owner
// - Operation must still be in_progress (terminal states are permanent)
func CanCancel(ctx CancelContext) GuardResult {
	if ctx.CallerID != ctx.OwnerID {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("operation %s belongs to another user", ctx.OperationID),
		}
	}

	if ctx.Status != models.OperationStatusInProgress {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("can only cancel in-progress operations (current status: %s)", ctx.Status),
		}
	}

	return GuardResult{Allowed: true}
}

// CanTransition evaluates whether a status change is legal.
// Rules:
// - pending may only move to in_progress
// - in_progress may move to any terminal state
// - terminal states never transition
func CanTransition(from, to models.OperationStatus) GuardResult {
	switch from {
	case models.OperationStatusPending:
		if to == models.OperationStatusInProgress {
			return GuardResult{Allowed: true}
		}
	case models.OperationStatusInProgress:
		if to.Terminal() {
			return GuardResult{Allowed: true}
		}
	}

	return GuardResult{
		Allowed: false,
		Reason:  fmt.Sprintf("illegal status transition %s -> %s", from, to),
	}
}
