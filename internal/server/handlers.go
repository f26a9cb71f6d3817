package server

import (
	"net/http"

	"github.com/Nolimiter/nOHACK/internal/models"
	"github.com/Nolimiter/nOHACK/internal/ports/primary"
)

type registerBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.auth.Register(r.Context(), primary.RegisterRequest{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.auth.Login(r.Context(), primary.LoginRequest{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.auth.GetUser(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type startOperationBody struct {
	Type       string `json:"type"`
	TargetID   string `json:"targetId"`
	TargetKind string `json:"targetKind"`
}

func (s *Server) handleStartOperation(w http.ResponseWriter, r *http.Request) {
	var body startOperationBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.TargetKind == "" {
		body.TargetKind = string(models.TargetKindPlayer)
	}

	op, err := s.operations.StartOperation(r.Context(), primary.StartOperationRequest{
		UserID:     userID(r),
		Type:       models.OperationType(body.Type),
		TargetID:   body.TargetID,
		TargetKind: models.TargetKind(body.TargetKind),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, op)
}

func (s *Server) handleListOperations(w http.ResponseWriter, r *http.Request) {
	ops, err := s.operations.ListOperations(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if ops == nil {
		ops = []*models.Operation{}
	}
	writeJSON(w, http.StatusOK, ops)
}

func (s *Server) handleGetOperation(w http.ResponseWriter, r *http.Request) {
	op, err := s.operations.GetOperation(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	// Operations are visible to their owner only.
	if op.UserID != userID(r) {
		writeError(w, http.StatusNotFound, "operation not found")
		return
	}
	writeJSON(w, http.StatusOK, op)
}

func (s *Server) handleCancelOperation(w http.ResponseWriter, r *http.Request) {
	op, err := s.operations.CancelOperation(r.Context(), r.PathValue("id"), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, op)
}

func (s *Server) handleGetDefense(w http.ResponseWriter, r *http.Request) {
	defense, err := s.defense.GetDefense(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, defense)
}

type updateDefenseBody struct {
	FirewallLevel   int    `json:"firewallLevel"`
	IDSLevel        int    `json:"idsLevel"`
	HoneypotActive  bool   `json:"honeypotActive"`
	BackupFrequency string `json:"backupFrequency"`
}

func (s *Server) handleUpdateDefense(w http.ResponseWriter, r *http.Request) {
	var body updateDefenseBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	defense, err := s.defense.UpdateDefense(r.Context(), primary.UpdateDefenseRequest{
		UserID:          userID(r),
		FirewallLevel:   body.FirewallLevel,
		IDSLevel:        body.IDSLevel,
		HoneypotActive:  body.HoneypotActive,
		BackupFrequency: body.BackupFrequency,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, defense)
}

func (s *Server) handleListAttacks(w http.ResponseWriter, r *http.Request) {
	var (
		attacks []*models.Attack
		err     error
	)
	if r.URL.Query().Get("direction") == "suffered" {
		attacks, err = s.attacks.ListSuffered(r.Context(), userID(r))
	} else {
		attacks, err = s.attacks.ListLaunched(r.Context(), userID(r))
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if attacks == nil {
		attacks = []*models.Attack{}
	}
	writeJSON(w, http.StatusOK, attacks)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.hub.HandleConnection(w, r, userID(r))
}
