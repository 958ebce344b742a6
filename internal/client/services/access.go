package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/worldcovers/internal/client/client"
	"github.com/dmitrijs2005/worldcovers/internal/validation"
)

// AccessService sends the request-access form.
type AccessService interface {
	RequestAccess(ctx context.Context, req client.AccessRequest) error
}

type accessService struct {
	api       client.Client
	validator *validation.Validator
}

func NewAccessService(api client.Client) AccessService {
	return &accessService{api: api, validator: validation.New()}
}

func (s *accessService) RequestAccess(ctx context.Context, req client.AccessRequest) error {
	for _, p := range []*string{
		&req.FirstName, &req.LastName, &req.Salutation, &req.Country,
		&req.Email, &req.PhoneNumber, &req.Organization, &req.Comments,
	} {
		*p = strings.TrimSpace(*p)
	}
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	return s.api.RequestAccess(ctx, req)
}
