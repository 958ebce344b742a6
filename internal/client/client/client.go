package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/options"
)

// Tokens is the pair returned by login and refresh.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Account is the signed-in contributor as reported by the server.
type Account struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// FilterOptions are the choices of the catalog search form.
type FilterOptions struct {
	Colors       []options.Option `json:"colors"`
	ColorsSource string           `json:"colors_source"`
	States       []options.Option `json:"states"`
	Types        []options.Option `json:"types"`
	Valuations   []options.Option `json:"valuations"`
}

// ReferenceOptions is a reference resource served by the catalog server
// and the provider that produced it.
type ReferenceOptions struct {
	State  string           `json:"state"`
	Source string           `json:"source"`
	Items  []options.Option `json:"items"`
}

// AccessRequest is the request-access form.
type AccessRequest struct {
	FirstName    string `json:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" validate:"required,max=100"`
	Salutation   string `json:"salutation,omitempty" validate:"max=20"`
	Country      string `json:"country" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email,max=255"`
	PhoneNumber  string `json:"phone_number,omitempty" validate:"max=50"`
	Organization string `json:"organization,omitempty" validate:"max=200"`
	Comments     string `json:"comments,omitempty" validate:"max=2000"`
}

// Image is an optional file attached to a submission.
type Image struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Created is the result of a submission upload. Warning is set when the
// submission was saved without its image.
type Created struct {
	Submission catalog.Submission
	Warning    string
}

// Published is the result of publishing an approved submission.
type Published struct {
	Record  catalog.Record `json:"record"`
	Created bool           `json:"created"`
}

type Client interface {
	Login(ctx context.Context, email, password string) (*Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (*Tokens, error)
	Logout(ctx context.Context) error
	Account(ctx context.Context) (*Account, error)

	Catalog(ctx context.Context) ([]catalog.Record, error)
	Record(ctx context.Context, id string) (*catalog.Record, error)
	FilterOptions(ctx context.Context) (*FilterOptions, error)
	Reference(ctx context.Context, resource string) (*ReferenceOptions, error)

	CreateSubmission(ctx context.Context, form catalog.SubmissionForm, img *Image) (*Created, error)
	Submissions(ctx context.Context) ([]catalog.Submission, error)
	Submission(ctx context.Context, id string) (*catalog.Submission, error)
	Publish(ctx context.Context, id string) (*Published, error)

	RequestAccess(ctx context.Context, req AccessRequest) error
}
