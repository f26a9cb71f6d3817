// Package server exposes the game engine over HTTP and WebSocket.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Nolimiter/nOHACK/internal/adapters/ws"
	"github.com/Nolimiter/nOHACK/internal/auth"
	"github.com/Nolimiter/nOHACK/internal/ports/primary"
)

// Server wires the primary ports onto HTTP routes.
type Server struct {
	operations primary.OperationService
	auth       primary.AuthService
	defense    primary.DefenseService
	attacks    primary.AttackService
	tokens     *auth.TokenIssuer
	hub        *ws.Hub

	httpServer *http.Server
}

// New creates a Server. hub may be nil when websocket push is disabled.
func New(
	operations primary.OperationService,
	authService primary.AuthService,
	defense primary.DefenseService,
	attacks primary.AttackService,
	tokens *auth.TokenIssuer,
	hub *ws.Hub,
) *Server {
	return &Server{
		operations: operations,
		auth:       authService,
		defense:    defense,
		attacks:    attacks,
		tokens:     tokens,
		hub:        hub,
	}
}

// Routes builds the HTTP mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/v1/me", s.requireAuth(s.handleMe))

	mux.HandleFunc("POST /api/v1/operations", s.requireAuth(s.handleStartOperation))
	mux.HandleFunc("GET /api/v1/operations", s.requireAuth(s.handleListOperations))
	mux.HandleFunc("GET /api/v1/operations/{id}", s.requireAuth(s.handleGetOperation))
	mux.HandleFunc("POST /api/v1/operations/{id}/cancel", s.requireAuth(s.handleCancelOperation))

	mux.HandleFunc("GET /api/v1/defense", s.requireAuth(s.handleGetDefense))
	mux.HandleFunc("PUT /api/v1/defense", s.requireAuth(s.handleUpdateDefense))

	mux.HandleFunc("GET /api/v1/attacks", s.requireAuth(s.handleListAttacks))

	if s.hub != nil {
		mux.HandleFunc("GET /ws", s.requireAuth(s.handleWebSocket))
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
