// Package primary defines the primary ports (driving interfaces) for the
// application. Transport adapters (HTTP handlers, CLI commands) call these.
package primary

import (
	"context"

	"github.com/Nolimiter/nOHACK/internal/models"
)

// StartOperationRequest contains the data needed to admit an operation.
type StartOperationRequest struct {
	UserID     string
	Type       models.OperationType
	TargetID   string
	TargetKind models.TargetKind
}

// OperationService drives the hacking-operation lifecycle: admission,
// background execution, cancellation, and reads.
type OperationService interface {
	// StartOperation validates and admits a new operation, debits its
	// cost, and schedules the background execution unit. It returns the
	// in-progress operation without waiting for completion.
	StartOperation(ctx context.Context, req StartOperationRequest) (*models.Operation, error)

	// CancelOperation stops a running operation owned by userID, credits
	// a pro-rated refund, and returns the cancelled operation.
	CancelOperation(ctx context.Context, operationID, userID string) (*models.Operation, error)

	// GetOperation retrieves an operation by ID.
	GetOperation(ctx context.Context, operationID string) (*models.Operation, error)

	// ListOperations retrieves a user's operations, newest first.
	ListOperations(ctx context.Context, userID string) ([]*models.Operation, error)
}
