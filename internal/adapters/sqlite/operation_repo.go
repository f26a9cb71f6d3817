package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Nolimiter/nOHACK/internal/models"
	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

// OperationRepository implements secondary.OperationRepository with SQLite.
type OperationRepository struct {
	db *sql.DB
}

// NewOperationRepository creates a new SQLite operation repository.
func NewOperationRepository(db *sql.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

const operationColumns = "id, user_id, type, target_id, target_kind, status, progress, result, started_at, completed_at, created_at, updated_at"

// Create persists a new operation.
func (r *OperationRepository) Create(ctx context.Context, op *models.Operation) error {
	result, err := marshalResult(op.Result)
	if err != nil {
		return err
	}

	var completedAt sql.NullTime
	if op.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *op.CompletedAt, Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO operations ("+operationColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		op.ID, op.UserID, op.Type, op.TargetID, op.TargetKind, op.Status,
		op.Progress, result, op.StartedAt, completedAt, op.CreatedAt, op.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create operation: %w", err)
	}
	return nil
}

// Update replaces an in-flight operation's mutable fields. Terminal
// records never change: an update against one is silently a no-op, which
// keeps a late-running execution unit from overwriting a cancellation.
func (r *OperationRepository) Update(ctx context.Context, op *models.Operation) error {
	result, err := marshalResult(op.Result)
	if err != nil {
		return err
	}

	var completedAt sql.NullTime
	if op.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *op.CompletedAt, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE operations SET status = ?, progress = ?, result = ?, completed_at = ?, updated_at = ?
		 WHERE id = ? AND status NOT IN ('completed', 'failed', 'cancelled')`,
		op.Status, op.Progress, result, completedAt, op.UpdatedAt, op.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update operation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		// Either missing or already terminal; distinguish the two.
		if _, err := r.GetByID(ctx, op.ID); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves an operation by ID.
func (r *OperationRepository) GetByID(ctx context.Context, id string) (*models.Operation, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+operationColumns+" FROM operations WHERE id = ?", id)
	op, err := scanOperation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, secondary.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operation: %w", err)
	}
	return op, nil
}

// ListByUser retrieves a user's operations, newest first.
func (r *OperationRepository) ListByUser(ctx context.Context, userID string) ([]*models.Operation, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+operationColumns+" FROM operations WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	defer rows.Close()

	var result []*models.Operation
	for rows.Next() {
		op, err := scanOperation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		result = append(result, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate operations: %w", err)
	}
	return result, nil
}

func scanOperation(scan func(dest ...any) error) (*models.Operation, error) {
	var (
		op          models.Operation
		result      sql.NullString
		completedAt sql.NullTime
	)
	err := scan(
		&op.ID, &op.UserID, &op.Type, &op.TargetID, &op.TargetKind, &op.Status,
		&op.Progress, &result, &op.StartedAt, &completedAt, &op.CreatedAt, &op.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if result.Valid {
		op.Result = &models.OperationResult{}
		if err := json.Unmarshal([]byte(result.String), op.Result); err != nil {
			return nil, fmt.Errorf("failed to decode operation result: %w", err)
		}
	}
	if completedAt.Valid {
		t := completedAt.Time
		op.CompletedAt = &t
	}
	return &op, nil
}

func marshalResult(result *models.OperationResult) (sql.NullString, error) {
	if result == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode operation result: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// Ensure OperationRepository implements the interface
var _ secondary.OperationRepository = (*OperationRepository)(nil)
