package httpapi

import (
	"net/http"
	"strings"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type sessionResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		s.fail(w, r, http.StatusBadRequest, "Email and password are required")
		return
	}

	pair, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleError(w, r, err, "")
		return
	}
	s.ok(w, r, pair)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		s.fail(w, r, http.StatusBadRequest, "Refresh token is required")
		return
	}

	pair, err := s.auth.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		s.handleError(w, r, err, "")
		return
	}
	s.ok(w, r, pair)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context(), userID(r.Context())); err != nil {
		s.handleError(w, r, err, "")
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, Envelope{Success: true, Message: "Signed out"}, s.log)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	u, err := s.auth.Session(r.Context(), userID(r.Context()))
	if err != nil {
		s.handleError(w, r, err, "")
		return
	}
	s.ok(w, r, sessionResponse{UserID: u.ID, Email: u.Email, FullName: u.FullName})
}
