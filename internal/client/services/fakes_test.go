package services

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/client/client"
	"github.com/dmitrijs2005/worldcovers/internal/client/session"
)

var errBoom = errors.New("boom")

// fakeAPI is an in-memory client.Client. Authenticated calls consult the
// session store the way HTTPClient does.
type fakeAPI struct {
	mu       sync.Mutex
	sessions *session.Store

	loginErr   error
	accountErr error
	logoutErr  error
	logouts    int

	records    []catalog.Record
	catalogErr error

	reference    map[string]*client.ReferenceOptions
	referenceErr error

	subs         []catalog.Submission
	created      *client.Created
	lastForm     catalog.SubmissionForm
	lastImage    *client.Image
	lastImageRaw string

	accessReqs []client.AccessRequest
}

var _ client.Client = (*fakeAPI)(nil)

func newFakeAPI(store *session.Store) *fakeAPI {
	return &fakeAPI{sessions: store, reference: map[string]*client.ReferenceOptions{}}
}

func (f *fakeAPI) authed() error {
	if f.sessions == nil || !f.sessions.SignedIn() {
		return client.ErrUnauthorized
	}
	return nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*client.Tokens, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &client.Tokens{AccessToken: "a-" + email, RefreshToken: "r-" + email}, nil
}

func (f *fakeAPI) Refresh(ctx context.Context, refreshToken string) (*client.Tokens, error) {
	return &client.Tokens{AccessToken: "a2", RefreshToken: "r2"}, nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.logouts++
	return f.logoutErr
}

func (f *fakeAPI) Account(ctx context.Context) (*client.Account, error) {
	if err := f.authed(); err != nil {
		return nil, err
	}
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	s := f.sessions.Get()
	return &client.Account{UserID: "u1", Email: s.Email, FullName: "Ann Smith"}, nil
}

func (f *fakeAPI) Catalog(ctx context.Context) ([]catalog.Record, error) {
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	return f.records, nil
}

func (f *fakeAPI) Record(ctx context.Context, id string) (*catalog.Record, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeAPI) FilterOptions(ctx context.Context) (*client.FilterOptions, error) {
	return &client.FilterOptions{}, nil
}

func (f *fakeAPI) Reference(ctx context.Context, resource string) (*client.ReferenceOptions, error) {
	if f.referenceErr != nil {
		return nil, f.referenceErr
	}
	if r, ok := f.reference[resource]; ok {
		return r, nil
	}
	return &client.ReferenceOptions{State: "success"}, nil
}

func (f *fakeAPI) CreateSubmission(ctx context.Context, form catalog.SubmissionForm, img *client.Image) (*client.Created, error) {
	if err := f.authed(); err != nil {
		return nil, err
	}
	f.lastForm = form
	f.lastImage = img
	if img != nil {
		b, _ := io.ReadAll(img.Body)
		f.lastImageRaw = string(b)
	}
	if f.created != nil {
		return f.created, nil
	}
	return &client.Created{Submission: catalog.Submission{ID: "s-new", Status: catalog.StatusPending}}, nil
}

func (f *fakeAPI) Submissions(ctx context.Context) ([]catalog.Submission, error) {
	if err := f.authed(); err != nil {
		return nil, err
	}
	return f.subs, nil
}

func (f *fakeAPI) Submission(ctx context.Context, id string) (*catalog.Submission, error) {
	if err := f.authed(); err != nil {
		return nil, err
	}
	for i := range f.subs {
		if f.subs[i].ID == id {
			return &f.subs[i], nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeAPI) Publish(ctx context.Context, id string) (*client.Published, error) {
	s, err := f.Submission(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Status != catalog.StatusApproved {
		return nil, client.ErrConflict
	}
	return &client.Published{Record: s.ToRecord("Common"), Created: true}, nil
}

func (f *fakeAPI) RequestAccess(ctx context.Context, req client.AccessRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accessReqs = append(f.accessReqs, req)
	return nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }
