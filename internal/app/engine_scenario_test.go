package app

import (
	"context"
	"testing"
	"time"

	"github.com/Nolimiter/nOHACK/internal/adapters/memory"
	"github.com/Nolimiter/nOHACK/internal/models"
	"github.com/Nolimiter/nOHACK/internal/ports/primary"
	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

// End-to-end lifecycle over the in-memory adapters: a funded player runs
// a DDOS against a raw address and a subscriber watches the whole event
// stream.
func TestEngine_AddressScenario(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	ops := memory.NewOperationStore()
	attacks := memory.NewAttackLog()
	defenses := memory.NewDefenseStore()
	hub := memory.NewEventHub()

	svc := NewOperationService(users, ops, attacks, defenses, hub, EngineConfig{
		Ticks:        4,
		TickInterval: 5 * time.Millisecond,
	})
	svc.rng = stubRand{f: 0, n: 3} // forces success and fixed loot

	player := &models.User{ID: "p1", Username: "trinity", Bitcoins: 1000, Level: 1}
	if err := users.Create(ctx, player); err != nil {
		t.Fatalf("Create user: %v", err)
	}

	events, cancel := hub.Subscribe("p1")
	defer cancel()

	op, err := svc.StartOperation(ctx, primary.StartOperationRequest{
		UserID:     "p1",
		Type:       models.OperationTypeDDOS,
		TargetID:   "203.0.113.7",
		TargetKind: models.TargetKindAddress,
	})
	if err != nil {
		t.Fatalf("StartOperation: %v", err)
	}
	svc.Wait()

	final, err := svc.GetOperation(ctx, op.ID)
	if err != nil {
		t.Fatalf("GetOperation: %v", err)
	}
	if final.Status != models.OperationStatusCompleted {
		t.Fatalf("expected completed, got %s", final.Status)
	}
	if final.Result == nil || !final.Result.Success {
		t.Fatalf("expected success result, got %+v", final.Result)
	}

	// Cost 50, DDOS loot 8 with the stubbed draw.
	u, _ := users.GetByID(ctx, "p1")
	if u.Bitcoins != 1000-50+8 {
		t.Errorf("expected balance 958, got %d", u.Bitcoins)
	}
	if u.Experience != 10 || u.Reputation != 2 {
		t.Errorf("expected 10 xp / 2 rep, got %d / %d", u.Experience, u.Reputation)
	}

	// Address targets leave no attack record.
	launched, _ := attacks.ListByAttacker(ctx, "p1")
	if len(launched) != 0 {
		t.Errorf("expected no attack records, got %d", len(launched))
	}

	// The subscriber saw the full stream: started, every progress tick,
	// then exactly one completion, in that order.
	var names []string
drain:
	for {
		select {
		case e := <-events:
			names = append(names, e.Name)
		default:
			break drain
		}
	}
	if len(names) != 6 {
		t.Fatalf("expected 6 events, got %d: %v", len(names), names)
	}
	if names[0] != secondary.EventOperationStarted {
		t.Errorf("expected started first, got %s", names[0])
	}
	for _, n := range names[1:5] {
		if n != secondary.EventOperationProgress {
			t.Errorf("expected progress in the middle, got %v", names)
			break
		}
	}
	if names[5] != secondary.EventOperationComplete {
		t.Errorf("expected complete last, got %s", names[5])
	}
}
