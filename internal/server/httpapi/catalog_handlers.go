package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/worldcovers/internal/fallback"
	"github.com/dmitrijs2005/worldcovers/internal/filter"
	"github.com/dmitrijs2005/worldcovers/internal/refdata"
)

// referenceResponse reports which provider served a reference collection.
type referenceResponse[T any] struct {
	State  string `json:"state"`
	Source string `json:"source,omitempty"`
	Items  []T    `json:"items"`
}

func (s *Server) handleListCatalog(w http.ResponseWriter, r *http.Request) {
	recs, err := s.catalog.List(r.Context())
	if err != nil {
		s.handleError(w, r, err, "")
		return
	}
	s.ok(w, r, recs)
}

func (s *Server) handleSearchCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	res, err := s.catalog.Search(r.Context(), filter.ParseQuery(q), page)
	if err != nil {
		s.handleError(w, r, err, "")
		return
	}
	s.ok(w, r, res)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err, "Catalog record not found")
		return
	}
	s.ok(w, r, rec)
}

func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.catalog.FilterOptions(r.Context())
	if err != nil {
		s.handleError(w, r, err, "")
		return
	}
	s.ok(w, r, opts)
}

func (s *Server) handleColors(w http.ResponseWriter, r *http.Request) {
	writeReference(s, w, r, s.catalog.Colors(r.Context()))
}

func (s *Server) handleReference(w http.ResponseWriter, r *http.Request) {
	res, ok := refdata.ParseResource(chi.URLParam(r, "resource"))
	if !ok {
		s.fail(w, r, http.StatusNotFound, "Unknown reference resource")
		return
	}
	if res.IsOption() {
		writeReference(s, w, r, s.catalog.ReferenceOptions(r.Context(), res))
		return
	}
	writeReference(s, w, r, s.catalog.ReferenceRaw(r.Context(), res))
}

// writeReference answers 502 when every provider failed.
func writeReference[T any](s *Server, w http.ResponseWriter, r *http.Request, res fallback.Result[T]) {
	if res.State == fallback.Failed {
		s.log.Warn(r.Context(), "reference data unavailable", "path", r.URL.Path, "error", res.Err)
		writeJSON(r.Context(), w, http.StatusBadGateway, Envelope{
			Error: "reference data unavailable",
			Data:  referenceResponse[T]{State: res.State.String(), Items: res.Items},
		}, s.log)
		return
	}
	s.ok(w, r, referenceResponse[T]{State: res.State.String(), Source: res.Source, Items: res.Items})
}
