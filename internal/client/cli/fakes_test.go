package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/client/client"
	"github.com/dmitrijs2005/worldcovers/internal/client/config"
	"github.com/dmitrijs2005/worldcovers/internal/client/services"
	"github.com/dmitrijs2005/worldcovers/internal/client/session"
	"github.com/dmitrijs2005/worldcovers/internal/client/views"
	"github.com/dmitrijs2005/worldcovers/internal/fallback"
	"github.com/dmitrijs2005/worldcovers/internal/options"
	"github.com/dmitrijs2005/worldcovers/internal/refdata"
)

type fakeAuth struct {
	sessions *session.Store
	pingErr  error
	loginErr error
	gotPass  string
}

func (f *fakeAuth) Login(ctx context.Context, email string, password []byte) (*session.Session, error) {
	f.gotPass = string(password)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.sessions.Set(session.Session{Email: email, UserID: "u1", FullName: "Ann Smith", AccessToken: "t"})
	return f.sessions.Get(), nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.sessions.Clear()
	return nil
}

func (f *fakeAuth) Current() *session.Session { return f.sessions.Get() }

func (f *fakeAuth) Ping(ctx context.Context) error { return f.pingErr }

type fakeCatalog struct {
	records    []catalog.Record
	loadErr    error
	filterOpts *client.FilterOptions
	options    map[refdata.Resource]fallback.Result[options.Option]
}

func (f *fakeCatalog) Entries(ctx context.Context) ([]catalog.Entry, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return catalog.FromRecords(f.records), nil
}

func (f *fakeCatalog) Record(ctx context.Context, id string) (*catalog.Record, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeCatalog) FilterOptions(ctx context.Context) (*client.FilterOptions, error) {
	if f.filterOpts == nil {
		return &client.FilterOptions{}, nil
	}
	return f.filterOpts, nil
}

func (f *fakeCatalog) Options(ctx context.Context, r refdata.Resource) fallback.Result[options.Option] {
	if res, ok := f.options[r]; ok {
		return res
	}
	return fallback.Result[options.Option]{State: fallback.Success, Items: []options.Option{}}
}

type fakeSubmissions struct {
	subs       []catalog.Submission
	submitted  *catalog.SubmissionForm
	image      *services.ImageFile
	imageBytes []byte
	submitErr  error
	warning    string
	publishErr error
}

func (f *fakeSubmissions) Submit(ctx context.Context, form catalog.SubmissionForm, img *services.ImageFile) (*client.Created, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = &form
	f.image = img
	if img != nil {
		f.imageBytes, _ = io.ReadAll(img.Body)
	}
	s := form.Submission("u1", "Ann Smith", "")
	s.ID = "s-new"
	return &client.Created{Submission: s, Warning: f.warning}, nil
}

func (f *fakeSubmissions) List(ctx context.Context) ([]catalog.Submission, error) {
	return f.subs, nil
}

func (f *fakeSubmissions) Get(ctx context.Context, id string) (*catalog.Submission, error) {
	for i := range f.subs {
		if f.subs[i].ID == id {
			return &f.subs[i], nil
		}
	}
	return nil, &client.APIError{Status: 404, Message: "Submission not found or you don't have access to it"}
}

func (f *fakeSubmissions) Publish(ctx context.Context, id string) (*client.Published, error) {
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	s, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := s.ToRecord("Common")
	rec.ID = "r-" + id
	return &client.Published{Record: rec, Created: true}, nil
}

type fakeAccess struct {
	got *client.AccessRequest
	err error
}

func (f *fakeAccess) RequestAccess(ctx context.Context, req client.AccessRequest) error {
	if f.err != nil {
		return f.err
	}
	f.got = &req
	return nil
}

type testApp struct {
	*App
	out      *bytes.Buffer
	sessions *session.Store
	auth     *fakeAuth
	catalog  *fakeCatalog
	subs     *fakeSubmissions
	access   *fakeAccess
}

func newTestApp(t *testing.T, input ...string) *testApp {
	t.Helper()
	sessions := session.NewStore()
	ta := &testApp{
		out:      &bytes.Buffer{},
		sessions: sessions,
		auth:     &fakeAuth{sessions: sessions},
		catalog:  &fakeCatalog{},
		subs:     &fakeSubmissions{},
		access:   &fakeAccess{},
	}
	ta.App = &App{
		config:            &config.Config{},
		sessions:          sessions,
		authService:       ta.auth,
		catalogService:    ta.catalog,
		submissionService: ta.subs,
		accessService:     ta.access,
		reader:            readerFromLines(input...),
		out:               ta.out,
	}
	ta.search = views.NewSearchView(ta.catalog.Entries, 2, nil)
	ta.dashboard = views.NewDashboardView(sessions, ta.subs.List, nil)
	t.Cleanup(ta.dashboard.Unmount)
	return ta
}

func (ta *testApp) signIn() {
	ta.sessions.Set(session.Session{Email: "ann@example.com", UserID: "u1", AccessToken: "t"})
}

func (ta *testApp) output() string {
	s := ta.out.String()
	ta.out.Reset()
	return s
}
