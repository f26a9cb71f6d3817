// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema; do not hardcode CREATE TABLE statements here.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Nolimiter/nOHACK/internal/adapters/sqlite"
	"github.com/Nolimiter/nOHACK/internal/db"
	"github.com/Nolimiter/nOHACK/internal/models"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Each :memory: connection is a separate database; keep the pool at one.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedUser inserts a test user and returns them.
func seedUser(t *testing.T, conn *sql.DB, id, username string, bitcoins int64) *models.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	user := &models.User{
		ID:        id,
		Username:  username,
		Bitcoins:  bitcoins,
		Level:     1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	repo := sqlite.NewUserRepository(conn)
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// seedOperation inserts a test operation owned by userID and returns it.
func seedOperation(t *testing.T, conn *sql.DB, id, userID string, status models.OperationStatus) *models.Operation {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	op := &models.Operation{
		ID:         id,
		UserID:     userID,
		Type:       models.OperationTypeDDOS,
		TargetID:   "10.0.0.1",
		TargetKind: models.TargetKindAddress,
		Status:     status,
		StartedAt:  now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	repo := sqlite.NewOperationRepository(conn)
	if err := repo.Create(context.Background(), op); err != nil {
		t.Fatalf("failed to seed operation: %v", err)
	}
	return op
}
