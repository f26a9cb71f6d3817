package primary

import (
	"context"

	"github.com/Nolimiter/nOHACK/internal/models"
)

// RegisterRequest contains the data needed to create an account.
type RegisterRequest struct {
	Username string
	Password string
}

// LoginRequest contains login credentials.
type LoginRequest struct {
	Username string
	Password string
}

// AuthResponse carries a signed session token and the authenticated user.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthService handles account creation and session issuance.
type AuthService interface {
	// Register creates a new account with a starting balance.
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)

	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)

	// GetUser retrieves a user's profile by ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)
}
