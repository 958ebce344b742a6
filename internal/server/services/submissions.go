package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/common"
	"github.com/dmitrijs2005/worldcovers/internal/dbx"
	"github.com/dmitrijs2005/worldcovers/internal/filter"
	"github.com/dmitrijs2005/worldcovers/internal/logging"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/worldcovers/internal/server/storage"
	"github.com/dmitrijs2005/worldcovers/internal/validation"
)

// WarningImageNotSaved is returned with a submission stored without its image.
const WarningImageNotSaved = "Image upload failed; the submission was saved without an image."

// Image is an uploaded file attached to a new submission.
type Image struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// CreateResult is a stored submission plus a non-fatal warning.
type CreateResult struct {
	Submission *catalog.Submission `json:"submission"`
	Warning    string              `json:"warning,omitempty"`
}

// PublishResult reports the catalog record of a published submission.
// Created is false when a matching record already existed.
type PublishResult struct {
	Record  *catalog.Record `json:"record"`
	Created bool            `json:"created"`
}

// SubmissionService handles the contribute form, the contributor dashboard
// and publishing approved submissions to the catalog.
type SubmissionService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	images       storage.ImageStore
	validator    *validation.Validator
	log          logging.Logger
	maxImageSize int64
}

func NewSubmissionService(db *sql.DB, m repomanager.RepositoryManager, images storage.ImageStore, maxImageSize int64, log logging.Logger) *SubmissionService {
	if log == nil {
		log = logging.Discard()
	}
	if maxImageSize <= 0 {
		maxImageSize = common.MaxImageSize
	}
	return &SubmissionService{
		db:           db,
		repomanager:  m,
		images:       images,
		validator:    validation.New(),
		log:          log,
		maxImageSize: maxImageSize,
	}
}

// CheckImage rejects images over the size limit or of a disallowed type.
func (s *SubmissionService) CheckImage(img *Image) error {
	if img == nil {
		return nil
	}
	if img.Size > s.maxImageSize {
		return common.ErrImageTooLarge
	}
	if !common.IsAllowedImageType(img.ContentType) {
		return common.ErrImageTypeNotAllowed
	}
	return nil
}

// Create validates form and stores a pending submission owned by userID.
// The image is optional; when its upload fails the submission is still
// stored, without image, and the result carries a warning.
func (s *SubmissionService) Create(ctx context.Context, userID string, form catalog.SubmissionForm, img *Image) (*CreateResult, error) {
	form.Normalize()
	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}
	if err := s.CheckImage(img); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	res := &CreateResult{}
	var imageURL string
	if img != nil {
		imageURL, err = s.upload(ctx, userID, img)
		if err != nil {
			s.log.Warn(ctx, "image upload failed, saving submission without image", "user_id", userID, "error", err)
			res.Warning = WarningImageNotSaved
			imageURL = ""
		}
	}

	sub := form.Submission(userID, user.DisplayName(), imageURL)
	created, err := s.repomanager.Submissions(s.db).Create(ctx, &sub)
	if err != nil {
		return nil, fmt.Errorf("error creating submission: %w", err)
	}
	s.log.Info(ctx, "submission created", "id", created.ID, "user_id", userID)

	res.Submission = created
	return res, nil
}

func (s *SubmissionService) upload(ctx context.Context, userID string, img *Image) (string, error) {
	if s.images == nil {
		return "", errors.New("image store not configured")
	}
	key := storage.ObjectKey(userID, img.Filename)
	if err := s.images.Upload(ctx, key, img.ContentType, img.Body, img.Size); err != nil {
		return "", err
	}
	return s.images.URL(ctx, key)
}

// List returns the submissions of userID matching q, newest first.
func (s *SubmissionService) List(ctx context.Context, userID string, q filter.SubmissionQuery) ([]catalog.Submission, error) {
	subs, err := s.repomanager.Submissions(s.db).SelectByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading submissions: %w", err)
	}
	return q.Filter(subs), nil
}

// Get returns a submission owned by userID. Submissions of other users are
// reported as not found.
func (s *SubmissionService) Get(ctx context.Context, userID, id string) (*catalog.Submission, error) {
	sub, err := s.repomanager.Submissions(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return sub, nil
}

// Publish adds an approved submission to the catalog with the default
// valuation, unless a record with the same name, state, town, date range
// and type already exists. Submissions that are not approved yield
// common.ErrorConflict.
func (s *SubmissionService) Publish(ctx context.Context, userID, id string) (*PublishResult, error) {
	sub, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != catalog.StatusApproved {
		return nil, fmt.Errorf("%w: submission is %s", common.ErrorConflict, sub.Status)
	}

	res := &PublishResult{}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		rec := sub.ToRecord(common.DefaultValuation)
		stored, created, err := s.repomanager.CatalogRecords(tx).CreateIfAbsent(ctx, &rec)
		if err != nil {
			return err
		}
		res.Record = stored
		res.Created = created
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error publishing submission: %w", err)
	}

	if res.Created {
		s.log.Info(ctx, "submission published", "submission_id", id, "record_id", res.Record.ID)
	}
	return res, nil
}
