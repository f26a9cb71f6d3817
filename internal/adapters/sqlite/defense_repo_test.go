package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Nolimiter/nOHACK/internal/adapters/sqlite"
	"github.com/Nolimiter/nOHACK/internal/models"
	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

func TestDefenseRepository_UpsertAndGet(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewDefenseRepository(conn)
	ctx := context.Background()

	seedUser(t, conn, "u1", "neo", 100)

	defense := &models.Defense{
		UserID:          "u1",
		FirewallLevel:   3,
		IDSLevel:        2,
		HoneypotActive:  true,
		BackupFrequency: "hourly",
		UpdatedAt:       time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.Upsert(ctx, defense); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.FirewallLevel != 3 || got.IDSLevel != 2 || !got.HoneypotActive || got.BackupFrequency != "hourly" {
		t.Errorf("unexpected defense: %+v", got)
	}
}

func TestDefenseRepository_UpsertReplaces(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewDefenseRepository(conn)
	ctx := context.Background()

	seedUser(t, conn, "u1", "neo", 100)

	first := &models.Defense{UserID: "u1", FirewallLevel: 2, IDSLevel: 1, BackupFrequency: "daily", UpdatedAt: time.Now().UTC()}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	second := &models.Defense{UserID: "u1", FirewallLevel: 5, IDSLevel: 4, BackupFrequency: "daily", UpdatedAt: time.Now().UTC()}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, _ := repo.Get(ctx, "u1")
	if got.FirewallLevel != 5 || got.IDSLevel != 4 {
		t.Errorf("expected replaced levels 5/4, got %d/%d", got.FirewallLevel, got.IDSLevel)
	}
}

func TestDefenseRepository_GetMissing(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewDefenseRepository(conn)

	_, err := repo.Get(context.Background(), "ghost")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
