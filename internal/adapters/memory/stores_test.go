package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Nolimiter/nOHACK/internal/models"
	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

func newTestUser(id, username string) *models.User {
	return &models.User{
		ID:        id,
		Username:  username,
		Bitcoins:  100,
		Level:     1,
		CreatedAt: time.Now(),
	}
}

func TestUserStore_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	if err := store.Create(ctx, newTestUser("u1", "neo")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byID, err := store.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Username != "neo" {
		t.Errorf("expected username neo, got %s", byID.Username)
	}

	byName, err := store.GetByUsername(ctx, "neo")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if byName.ID != "u1" {
		t.Errorf("expected id u1, got %s", byName.ID)
	}
}

func TestUserStore_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	if err := store.Create(ctx, newTestUser("u1", "neo")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := store.Create(ctx, newTestUser("u2", "neo"))
	if !errors.Is(err, secondary.ErrDuplicateUsername) {
		t.Errorf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestUserStore_DebitInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()
	if err := store.Create(ctx, newTestUser("u1", "neo")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := store.DebitBitcoins(ctx, "u1", 101)
	if !errors.Is(err, secondary.ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}

	// A failed debit leaves the balance untouched.
	u, _ := store.GetByID(ctx, "u1")
	if u.Bitcoins != 100 {
		t.Errorf("expected balance 100, got %d", u.Bitcoins)
	}

	if err := store.DebitBitcoins(ctx, "u1", 40); err != nil {
		t.Fatalf("DebitBitcoins: %v", err)
	}
	if err := store.CreditBitcoins(ctx, "u1", 15); err != nil {
		t.Fatalf("CreditBitcoins: %v", err)
	}
	u, _ = store.GetByID(ctx, "u1")
	if u.Bitcoins != 75 {
		t.Errorf("expected balance 75, got %d", u.Bitcoins)
	}
}

func TestUserStore_ApplyProgressCascade(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()
	if err := store.Create(ctx, newTestUser("u1", "neo")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// 1000 XP at level 1 cascades through levels 1-4
	// (100 + 200 + 300 + 400 = 1000 consumed).
	if err := store.ApplyProgress(ctx, "u1", 1000, 3); err != nil {
		t.Fatalf("ApplyProgress: %v", err)
	}

	u, _ := store.GetByID(ctx, "u1")
	if u.Level != 5 {
		t.Errorf("expected level 5, got %d", u.Level)
	}
	if u.Experience != 0 {
		t.Errorf("expected 0 residual experience, got %d", u.Experience)
	}
	if u.Reputation != 3 {
		t.Errorf("expected reputation 3, got %d", u.Reputation)
	}
}

func TestUserStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()
	if err := store.Create(ctx, newTestUser("u1", "neo")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	u, _ := store.GetByID(ctx, "u1")
	u.Bitcoins = 9999

	again, _ := store.GetByID(ctx, "u1")
	if again.Bitcoins != 100 {
		t.Errorf("mutation through returned copy leaked into store: %d", again.Bitcoins)
	}
}

func TestUserStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	if _, err := store.GetByID(ctx, "nope"); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("GetByID: expected ErrNotFound, got %v", err)
	}
	if err := store.DebitBitcoins(ctx, "nope", 1); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("DebitBitcoins: expected ErrNotFound, got %v", err)
	}
	if err := store.ApplyProgress(ctx, "nope", 1, 0); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("ApplyProgress: expected ErrNotFound, got %v", err)
	}
}

func newTestOperation(id, userID string, createdAt time.Time) *models.Operation {
	return &models.Operation{
		ID:         id,
		UserID:     userID,
		Type:       models.OperationTypeDDOS,
		Status:     models.OperationStatusPending,
		TargetKind: models.TargetKindNPC,
		TargetID:   "npc1",
		CreatedAt:  createdAt,
	}
}

func TestOperationStore_TerminalRecordsImmutable(t *testing.T) {
	ctx := context.Background()
	store := NewOperationStore()

	op := newTestOperation("op1", "u1", time.Now())
	if err := store.Create(ctx, op); err != nil {
		t.Fatalf("Create: %v", err)
	}

	op.Status = models.OperationStatusCancelled
	if err := store.Update(ctx, op); err != nil {
		t.Fatalf("Update to cancelled: %v", err)
	}

	// A late runner write against the cancelled record is a silent no-op.
	op.Status = models.OperationStatusCompleted
	if err := store.Update(ctx, op); err != nil {
		t.Fatalf("Update after terminal: %v", err)
	}

	got, err := store.GetByID(ctx, "op1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.OperationStatusCancelled {
		t.Errorf("expected cancelled to survive, got %s", got.Status)
	}
}

func TestOperationStore_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	store := NewOperationStore()

	err := store.Update(ctx, newTestOperation("ghost", "u1", time.Now()))
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOperationStore_ListByUserNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewOperationStore()

	base := time.Now()
	for i, id := range []string{"op1", "op2", "op3"} {
		op := newTestOperation(id, "u1", base.Add(time.Duration(i)*time.Second))
		if err := store.Create(ctx, op); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}
	if err := store.Create(ctx, newTestOperation("other", "u2", base)); err != nil {
		t.Fatalf("Create other: %v", err)
	}

	ops, err := store.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(ops) != 3 {
		t.Fatalf("expected 3 operations, got %d", len(ops))
	}
	if ops[0].ID != "op3" || ops[2].ID != "op1" {
		t.Errorf("expected newest first, got %s..%s", ops[0].ID, ops[2].ID)
	}
}

func TestAttackLog_ScopedNewestFirst(t *testing.T) {
	ctx := context.Background()
	log := NewAttackLog()

	records := []*models.Attack{
		{ID: "a1", AttackerID: "u1", DefenderID: "u2"},
		{ID: "a2", AttackerID: "u1", DefenderID: "u3"},
		{ID: "a3", AttackerID: "u3", DefenderID: "u1"},
	}
	for _, a := range records {
		if err := log.Create(ctx, a); err != nil {
			t.Fatalf("Create %s: %v", a.ID, err)
		}
	}

	launched, err := log.ListByAttacker(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByAttacker: %v", err)
	}
	if len(launched) != 2 || launched[0].ID != "a2" || launched[1].ID != "a1" {
		t.Errorf("unexpected launched list: %+v", launched)
	}

	suffered, err := log.ListByDefender(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByDefender: %v", err)
	}
	if len(suffered) != 1 || suffered[0].ID != "a3" {
		t.Errorf("unexpected suffered list: %+v", suffered)
	}
}

func TestDefenseStore_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewDefenseStore()

	if _, err := store.Get(ctx, "u1"); !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Upsert(ctx, &models.Defense{UserID: "u1", FirewallLevel: 2, IDSLevel: 1, BackupFrequency: "daily"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := store.Upsert(ctx, &models.Defense{UserID: "u1", FirewallLevel: 5, IDSLevel: 3, BackupFrequency: "hourly"}); err != nil {
		t.Fatalf("Upsert replace: %v", err)
	}

	d, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.FirewallLevel != 5 || d.IDSLevel != 3 || d.BackupFrequency != "hourly" {
		t.Errorf("unexpected defense after replace: %+v", d)
	}
}
