package sqlite_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Nolimiter/nOHACK/internal/adapters/sqlite"
	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewUserRepository(conn)
	ctx := context.Background()

	seedUser(t, conn, "u1", "neo", 100)

	user, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Username != "neo" || user.Bitcoins != 100 || user.Level != 1 {
		t.Errorf("unexpected user: %+v", user)
	}

	byName, err := repo.GetByUsername(ctx, "neo")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if byName.ID != "u1" {
		t.Errorf("expected u1, got %s", byName.ID)
	}
}

func TestUserRepository_GetMissing(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewUserRepository(conn)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewUserRepository(conn)

	first := seedUser(t, conn, "u1", "neo", 100)
	dup := *first
	dup.ID = "u2"
	err := repo.Create(context.Background(), &dup)
	if !errors.Is(err, secondary.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestUserRepository_DebitAndCredit(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewUserRepository(conn)
	ctx := context.Background()
	seedUser(t, conn, "u1", "neo", 100)

	if err := repo.DebitBitcoins(ctx, "u1", 60); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := repo.CreditBitcoins(ctx, "u1", 25); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	user, _ := repo.GetByID(ctx, "u1")
	if user.Bitcoins != 65 {
		t.Errorf("expected balance 65, got %d", user.Bitcoins)
	}
}

func TestUserRepository_ConcurrentCredits(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewUserRepository(conn)
	ctx := context.Background()
	seedUser(t, conn, "u1", "neo", 0)

	// Credits are atomic increments; none may be lost under contention.
	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := repo.CreditBitcoins(ctx, "u1", 1); err != nil {
				t.Errorf("CreditBitcoins: %v", err)
			}
		}()
	}
	wg.Wait()

	user, _ := repo.GetByID(ctx, "u1")
	if user.Bitcoins != n {
		t.Errorf("expected balance %d, got %d", n, user.Bitcoins)
	}
}

func TestUserRepository_DebitInsufficientFunds(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewUserRepository(conn)
	ctx := context.Background()
	seedUser(t, conn, "u1", "neo", 30)

	err := repo.DebitBitcoins(ctx, "u1", 50)
	if !errors.Is(err, secondary.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// Balance untouched by the refused debit.
	user, _ := repo.GetByID(ctx, "u1")
	if user.Bitcoins != 30 {
		t.Errorf("expected balance 30, got %d", user.Bitcoins)
	}
}

func TestUserRepository_DebitMissingUser(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewUserRepository(conn)

	err := repo.DebitBitcoins(context.Background(), "ghost", 10)
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_ApplyProgress(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewUserRepository(conn)
	ctx := context.Background()
	seedUser(t, conn, "u1", "neo", 100)

	if err := repo.ApplyProgress(ctx, "u1", 40, 2); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	user, _ := repo.GetByID(ctx, "u1")
	if user.Experience != 40 || user.Reputation != 2 || user.Level != 1 {
		t.Errorf("unexpected stats: xp=%d rep=%d level=%d", user.Experience, user.Reputation, user.Level)
	}
}

func TestUserRepository_ApplyProgressLevelUp(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewUserRepository(conn)
	ctx := context.Background()
	seedUser(t, conn, "u1", "neo", 100)

	// Level 1 threshold is 100 XP.
	if err := repo.ApplyProgress(ctx, "u1", 120, 0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	user, _ := repo.GetByID(ctx, "u1")
	if user.Level != 2 || user.Experience != 20 {
		t.Errorf("expected level 2 with 20 xp, got level %d with %d xp", user.Level, user.Experience)
	}
}

func TestUserRepository_ApplyProgressCascade(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewUserRepository(conn)
	ctx := context.Background()
	seedUser(t, conn, "u1", "neo", 100)

	// 1000 XP at level 1 crosses four thresholds:
	// 1000-100=900 (lv2), 900-200=700 (lv3), 700-300=400 (lv4),
	// 400-400=0 (lv5).
	if err := repo.ApplyProgress(ctx, "u1", 1000, 0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	user, _ := repo.GetByID(ctx, "u1")
	if user.Level != 5 || user.Experience != 0 {
		t.Errorf("expected level 5 with 0 xp, got level %d with %d xp", user.Level, user.Experience)
	}
}

func TestUserRepository_ApplyProgressNegativeReputation(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewUserRepository(conn)
	ctx := context.Background()
	seedUser(t, conn, "u1", "neo", 100)

	if err := repo.ApplyProgress(ctx, "u1", 0, -1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	user, _ := repo.GetByID(ctx, "u1")
	if user.Reputation != -1 {
		t.Errorf("expected reputation -1, got %d", user.Reputation)
	}
}
