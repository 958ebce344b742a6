package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/worldcovers/internal/common"
	"github.com/dmitrijs2005/worldcovers/internal/logging"
	"github.com/dmitrijs2005/worldcovers/internal/validation"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, env Envelope, log logging.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error(ctx, "failed to encode response", "error", err)
	}
}

func (s *Server) ok(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(r.Context(), w, http.StatusOK, Envelope{Success: true, Data: data}, s.log)
}

func (s *Server) created(w http.ResponseWriter, r *http.Request, data any, message string) {
	writeJSON(r.Context(), w, http.StatusCreated, Envelope{Success: true, Data: data, Message: message}, s.log)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(r.Context(), w, status, Envelope{Error: message}, s.log)
}

// handleError maps service errors to status codes. notFound is the message
// used for common.ErrorNotFound.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(r.Context(), w, http.StatusBadRequest, Envelope{Error: "validation failed", Data: verr.Fields}, s.log)
	case errors.Is(err, common.ErrorNotFound):
		s.fail(w, r, http.StatusNotFound, notFound)
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		s.fail(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrorConflict):
		s.fail(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrImageTooLarge):
		s.fail(w, r, http.StatusRequestEntityTooLarge, "Image must be 10 MB or smaller")
	case errors.Is(err, common.ErrImageTypeNotAllowed):
		s.fail(w, r, http.StatusUnsupportedMediaType, "Image must be PNG, JPEG, WebP or TIFF")
	case errors.Is(err, context.Canceled):
		// client went away
	default:
		s.log.Error(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
		s.fail(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
