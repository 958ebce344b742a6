package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/client/client"
	"github.com/dmitrijs2005/worldcovers/internal/common"
	"github.com/dmitrijs2005/worldcovers/internal/logging"
	"github.com/dmitrijs2005/worldcovers/internal/validation"
)

// ImageFile is an image chosen on the contribute form.
type ImageFile struct {
	Name string
	Size int64
	Body io.Reader
}

// ContentType guesses the media type from the file extension.
func (f ImageFile) ContentType() string {
	ext := strings.ToLower(filepath.Ext(f.Name))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".webp":
		return "image/webp"
	}
	return mime.TypeByExtension(ext)
}

// SubmissionService handles the contribute form and the contributor's own
// submissions.
type SubmissionService interface {
	Submit(ctx context.Context, form catalog.SubmissionForm, img *ImageFile) (*client.Created, error)
	List(ctx context.Context) ([]catalog.Submission, error)
	Get(ctx context.Context, id string) (*catalog.Submission, error)
	Publish(ctx context.Context, id string) (*client.Published, error)
}

type submissionService struct {
	api          client.Client
	validator    *validation.Validator
	maxImageSize int64
	log          logging.Logger
}

func NewSubmissionService(api client.Client, log logging.Logger) SubmissionService {
	if log == nil {
		log = logging.Discard()
	}
	return &submissionService{
		api:          api,
		validator:    validation.New(),
		maxImageSize: common.MaxImageSize,
		log:          log,
	}
}

// Submit validates the form and image locally with the server's rules
// before uploading.
func (s *submissionService) Submit(ctx context.Context, form catalog.SubmissionForm, img *ImageFile) (*client.Created, error) {
	form.Normalize()
	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}

	var upload *client.Image
	if img != nil {
		if img.Size > s.maxImageSize {
			return nil, common.ErrImageTooLarge
		}
		ct := img.ContentType()
		if !common.IsAllowedImageType(ct) {
			return nil, common.ErrImageTypeNotAllowed
		}
		upload = &client.Image{Filename: filepath.Base(img.Name), ContentType: ct, Body: img.Body}
	}

	res, err := s.api.CreateSubmission(ctx, form, upload)
	if err != nil {
		return nil, fmt.Errorf("submit error: %w", err)
	}
	if res.Warning != "" {
		s.log.Warn(ctx, "submission saved with warning", "id", res.Submission.ID, "warning", res.Warning)
	}
	return res, nil
}

func (s *submissionService) List(ctx context.Context) ([]catalog.Submission, error) {
	return s.api.Submissions(ctx)
}

func (s *submissionService) Get(ctx context.Context, id string) (*catalog.Submission, error) {
	return s.api.Submission(ctx, id)
}

func (s *submissionService) Publish(ctx context.Context, id string) (*client.Published, error) {
	return s.api.Publish(ctx, id)
}
