package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/worldcovers/internal/logging"
	"github.com/dmitrijs2005/worldcovers/internal/server/models"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/worldcovers/internal/validation"
)

// LoginRequestService records requests for contributor accounts. Accounts
// are granted out of band.
type LoginRequestService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validator   *validation.Validator
	log         logging.Logger
}

func NewLoginRequestService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *LoginRequestService {
	if log == nil {
		log = logging.Discard()
	}
	return &LoginRequestService{db: db, repomanager: m, validator: validation.New(), log: log}
}

func (s *LoginRequestService) Create(ctx context.Context, req models.LoginRequest) (*models.LoginRequest, error) {
	for _, p := range []*string{
		&req.FirstName, &req.LastName, &req.Salutation, &req.Country, &req.Email,
		&req.PhoneNumber, &req.Organization, &req.Comments,
	} {
		*p = strings.TrimSpace(*p)
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	created, err := s.repomanager.LoginRequests(s.db).Create(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("error saving login request: %w", err)
	}
	s.log.Info(ctx, "login request received", "id", created.ID)
	return created, nil
}
