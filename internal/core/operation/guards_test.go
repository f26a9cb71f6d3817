package operation

import (
	"testing"

	"github.com/Nolimiter/nOHACK/internal/models"
)

func TestCanStart_ValidTypeAndKind(t *testing.T) {
	result := CanStart(StartContext{
		Type:       models.OperationTypeDDOS,
		TargetKind: models.TargetKindAddress,
	})
	if !result.Allowed {
		t.Errorf("expected start to be allowed, got reason: %s", result.Reason)
	}
}

func TestCanStart_UnknownType(t *testing.T) {
	result := CanStart(StartContext{
		Type:       models.OperationType("COFFEE_SPILL"),
		TargetKind: models.TargetKindPlayer,
	})
	if result.Allowed {
		t.Error("expected unknown operation type to be rejected")
	}
	if result.Error() == nil {
		t.Error("expected guard error for disallowed result")
	}
}

func TestCanStart_UnknownTargetKind(t *testing.T) {
	result := CanStart(StartContext{
		Type:       models.OperationTypeDDOS,
		TargetKind: models.TargetKind("satellite"),
	})
	if result.Allowed {
		t.Error("expected unknown target kind to be rejected")
	}
}

func TestCanCancel_OwnerInProgress(t *testing.T) {
	result := CanCancel(CancelContext{
		OperationID: "op-1",
		OwnerID:     "user-1",
		CallerID:    "user-1",
		Status:      models.OperationStatusInProgress,
	})
	if !result.Allowed {
		t.Errorf("expected cancel to be allowed, got reason: %s", result.Reason)
	}
}

func TestCanCancel_NotOwner(t *testing.T) {
	result := CanCancel(CancelContext{
		OperationID: "op-1",
		OwnerID:     "user-1",
		CallerID:    "user-2",
		Status:      models.OperationStatusInProgress,
	})
	if result.Allowed {
		t.Error("expected non-owner cancel to be rejected")
	}
}

func TestCanCancel_TerminalStatus(t *testing.T) {
	for _, status := range []models.OperationStatus{
		models.OperationStatusCompleted,
		models.OperationStatusFailed,
		models.OperationStatusCancelled,
		models.OperationStatusPending,
	} {
		result := CanCancel(CancelContext{
			OperationID: "op-1",
			OwnerID:     "user-1",
			CallerID:    "user-1",
			Status:      status,
		})
		if result.Allowed {
			t.Errorf("expected cancel of %s operation to be rejected", status)
		}
	}
}

func TestCanTransition_LegalPaths(t *testing.T) {
	legal := []struct{ from, to models.OperationStatus }{
		{models.OperationStatusPending, models.OperationStatusInProgress},
		{models.OperationStatusInProgress, models.OperationStatusCompleted},
		{models.OperationStatusInProgress, models.OperationStatusFailed},
		{models.OperationStatusInProgress, models.OperationStatusCancelled},
	}
	for _, c := range legal {
		if result := CanTransition(c.from, c.to); !result.Allowed {
			t.Errorf("expected %s -> %s to be allowed: %s", c.from, c.to, result.Reason)
		}
	}
}

func TestCanTransition_TerminalStatesAreFinal(t *testing.T) {
	terminal := []models.OperationStatus{
		models.OperationStatusCompleted,
		models.OperationStatusFailed,
		models.OperationStatusCancelled,
	}
	for _, from := range terminal {
		for _, to := range []models.OperationStatus{
			models.OperationStatusPending,
			models.OperationStatusInProgress,
			models.OperationStatusCompleted,
		} {
			if result := CanTransition(from, to); result.Allowed {
				t.Errorf("expected %s -> %s to be rejected", from, to)
			}
		}
	}
}

func TestCanTransition_PendingCannotSkipToTerminal(t *testing.T) {
	if result := CanTransition(models.OperationStatusPending, models.OperationStatusCompleted); result.Allowed {
		t.Error("expected pending -> completed to be rejected")
	}
}
