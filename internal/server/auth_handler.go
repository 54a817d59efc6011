package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jonathan/renovation-quoter/internal/types"
)

// handleIssueToken exchanges operator credentials for an API token
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	if s.jwtService == nil || s.operator == nil {
		s.errorResponse(w, &ErrUnavailable{Feature: "token issuance", Reason: "JWT_SECRET or operator credentials not configured"})
		return
	}

	var req types.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, validationError(err))
		return
	}

	if !s.operator.Verify(req.Username, req.Password) {
		s.logger.Warn("operator login failed", "username", req.Username, "client", clientID(r))
		s.errorResponse(w, &ErrInvalidCredentials{})
		return
	}

	token, expiresAt, err := s.jwtService.GenerateToken(EstimatorID(req.Username), req.Username)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}
