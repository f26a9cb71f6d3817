package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Nolimiter/nOHACK/internal/auth"
	"github.com/Nolimiter/nOHACK/internal/models"
	"github.com/Nolimiter/nOHACK/internal/ports/primary"
	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

// Starting balance for fresh accounts.
const initialBitcoins = 100

// AuthServiceImpl implements the AuthService interface.
type AuthServiceImpl struct {
	users  secondary.UserRepository
	tokens *auth.TokenIssuer
	clock  func() time.Time
	idGen  func() string
}

// NewAuthService creates an AuthService with injected dependencies.
func NewAuthService(users secondary.UserRepository, tokens *auth.TokenIssuer) *AuthServiceImpl {
	return &AuthServiceImpl{
		users:  users,
		tokens: tokens,
		clock:  time.Now,
		idGen:  uuid.NewString,
	}
}

// Register creates a new account and returns a session token.
func (s *AuthServiceImpl) Register(ctx context.Context, req primary.RegisterRequest) (*primary.AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidCredentials)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock()
	user := &models.User{
		ID:           s.idGen(),
		Username:     req.Username,
		PasswordHash: hash,
		Bitcoins:     initialBitcoins,
		Level:        1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &primary.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and returns a session token.
func (s *AuthServiceImpl) Login(ctx context.Context, req primary.LoginRequest) (*primary.AuthResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &primary.AuthResponse{Token: token, User: user}, nil
}

// GetUser retrieves a user's public profile.
func (s *AuthServiceImpl) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// Ensure AuthServiceImpl implements the interface
var _ primary.AuthService = (*AuthServiceImpl)(nil)
