package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/worldcovers/internal/server/models"
)

func (s *Server) handleCreateLoginRequest(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ID = ""

	created, err := s.loginRequests.Create(r.Context(), req)
	if err != nil {
		s.handleError(w, r, err, "")
		return
	}
	s.created(w, r, created, "Your request has been received. We will contact you by email.")
}
