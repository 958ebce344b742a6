package httpapi

import (
	"errors"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/common"
	"github.com/dmitrijs2005/worldcovers/internal/filter"
	"github.com/dmitrijs2005/worldcovers/internal/server/services"
)

// multipartOverhead is the allowance for form fields on top of the image.
const multipartOverhead = 1 << 20

const submissionNotFound = "Submission not found or you don't have access to it"

var formFields = map[string]func(*catalog.SubmissionForm) *string{
	"state":               func(f *catalog.SubmissionForm) *string { return &f.State },
	"town":                func(f *catalog.SubmissionForm) *string { return &f.Town },
	"first_seen":          func(f *catalog.SubmissionForm) *string { return &f.FirstSeen },
	"last_seen":           func(f *catalog.SubmissionForm) *string { return &f.LastSeen },
	"type":                func(f *catalog.SubmissionForm) *string { return &f.Type },
	"color":               func(f *catalog.SubmissionForm) *string { return &f.Color },
	"dimensions":          func(f *catalog.SubmissionForm) *string { return &f.Dimensions },
	"manuscript":          func(f *catalog.SubmissionForm) *string { return &f.Manuscript },
	"rarity":              func(f *catalog.SubmissionForm) *string { return &f.Rarity },
	"description":         func(f *catalog.SubmissionForm) *string { return &f.Description },
	"citation_references": func(f *catalog.SubmissionForm) *string { return &f.CitationReferences },
}

// handleCreateSubmission accepts multipart/form-data with an optional
// "image" file, or a JSON form without image.
func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	var form catalog.SubmissionForm
	var img *services.Image

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		if err := decodeJSON(r, &form); err != nil {
			s.fail(w, r, http.StatusBadRequest, "Invalid request body")
			return
		}

	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxImageSize+multipartOverhead)
		if err := r.ParseMultipartForm(multipartOverhead); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				s.handleError(w, r, common.ErrImageTooLarge, "")
				return
			}
			s.fail(w, r, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		defer r.MultipartForm.RemoveAll()

		for name, field := range formFields {
			*field(&form) = r.FormValue(name)
		}

		file, header, err := r.FormFile("image")
		switch {
		case err == nil:
			defer file.Close()
			img = &services.Image{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Body:        file,
			}
		case errors.Is(err, http.ErrMissingFile):
		default:
			s.fail(w, r, http.StatusBadRequest, "Invalid image upload")
			return
		}

	default:
		s.fail(w, r, http.StatusUnsupportedMediaType, "Expected multipart/form-data or application/json")
		return
	}

	res, err := s.submissions.Create(r.Context(), userID(r.Context()), form, img)
	if err != nil {
		s.handleError(w, r, err, "")
		return
	}
	s.created(w, r, res, res.Warning)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	q, err := filter.ParseSubmissionQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err.Error())
		return
	}

	subs, err := s.submissions.List(r.Context(), userID(r.Context()), q)
	if err != nil {
		s.handleError(w, r, err, "")
		return
	}
	s.ok(w, r, subs)
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := s.submissions.Get(r.Context(), userID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err, submissionNotFound)
		return
	}
	s.ok(w, r, sub)
}

func (s *Server) handlePublishSubmission(w http.ResponseWriter, r *http.Request) {
	res, err := s.submissions.Publish(r.Context(), userID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err, submissionNotFound)
		return
	}
	s.ok(w, r, res)
}
