package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/common"
	"github.com/dmitrijs2005/worldcovers/internal/fallback"
	"github.com/dmitrijs2005/worldcovers/internal/filter"
	"github.com/dmitrijs2005/worldcovers/internal/options"
	"github.com/dmitrijs2005/worldcovers/internal/refdata"
	"github.com/dmitrijs2005/worldcovers/internal/server/models"
	"github.com/dmitrijs2005/worldcovers/internal/server/services"
	"github.com/dmitrijs2005/worldcovers/internal/validation"
)

const goodToken = "good-token"

type fakeAuth struct {
	loginErr  error
	loggedOut string
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &services.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil
}

func (f *fakeAuth) RefreshToken(ctx context.Context, token string) (*services.TokenPair, error) {
	if token == "expired" {
		return nil, common.ErrRefreshTokenExpired
	}
	return &services.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil
}

func (f *fakeAuth) Logout(ctx context.Context, userID string) error {
	f.loggedOut = userID
	return nil
}

func (f *fakeAuth) Session(ctx context.Context, userID string) (*models.User, error) {
	return &models.User{ID: userID, Email: "ann@example.com", FullName: "Ann"}, nil
}

func (f *fakeAuth) Authenticate(token string) (string, error) {
	if token == goodToken {
		return "u1", nil
	}
	return "", common.ErrInvalidToken
}

type fakeCatalog struct {
	recs      []catalog.Record
	lastState filter.State
	lastPage  int
	colors    fallback.Result[options.Option]
}

func (f *fakeCatalog) List(ctx context.Context) ([]catalog.Record, error) { return f.recs, nil }

func (f *fakeCatalog) Get(ctx context.Context, id string) (*catalog.Record, error) {
	for i := range f.recs {
		if f.recs[i].ID == id {
			return &f.recs[i], nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCatalog) Search(ctx context.Context, st filter.State, page int) (filter.Page[catalog.Entry], error) {
	f.lastState, f.lastPage = st, page
	return filter.Paginate(st.Filter(catalog.FromRecords(f.recs)), filter.DefaultPageSize, page), nil
}

func (f *fakeCatalog) FilterOptions(ctx context.Context) (*services.FilterOptions, error) {
	return &services.FilterOptions{Colors: f.colors.Items}, nil
}

func (f *fakeCatalog) Colors(ctx context.Context) fallback.Result[options.Option] { return f.colors }

func (f *fakeCatalog) ReferenceOptions(ctx context.Context, r refdata.Resource) fallback.Result[options.Option] {
	return fallback.Result[options.Option]{State: fallback.Success, Items: []options.Option{{Label: string(r)}}, Source: "store:" + string(r)}
}

func (f *fakeCatalog) ReferenceRaw(ctx context.Context, r refdata.Resource) fallback.Result[json.RawMessage] {
	return fallback.Result[json.RawMessage]{State: fallback.Success, Items: []json.RawMessage{}}
}

type fakeSubmissions struct {
	form catalog.SubmissionForm
	img  []byte
	subs map[string]catalog.Submission
}

func (f *fakeSubmissions) Create(ctx context.Context, userID string, form catalog.SubmissionForm, img *services.Image) (*services.CreateResult, error) {
	if strings.TrimSpace(form.Town) == "" {
		return nil, &validation.Error{Fields: map[string]string{"town": "is required"}}
	}
	f.form = form
	res := &services.CreateResult{Submission: &catalog.Submission{ID: "s1", UserID: userID}}
	if img != nil {
		f.img, _ = io.ReadAll(img.Body)
		if img.ContentType == "image/gif" {
			return nil, common.ErrImageTypeNotAllowed
		}
		res.Warning = services.WarningImageNotSaved
	}
	return res, nil
}

func (f *fakeSubmissions) List(ctx context.Context, userID string, q filter.SubmissionQuery) ([]catalog.Submission, error) {
	out := []catalog.Submission{}
	for _, s := range f.subs {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return q.Filter(out), nil
}

func (f *fakeSubmissions) Get(ctx context.Context, userID, id string) (*catalog.Submission, error) {
	s, ok := f.subs[id]
	if !ok || s.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (f *fakeSubmissions) Publish(ctx context.Context, userID, id string) (*services.PublishResult, error) {
	s, err := f.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if s.Status != catalog.StatusApproved {
		return nil, common.ErrorConflict
	}
	return &services.PublishResult{Record: &catalog.Record{ID: "r1"}, Created: true}, nil
}

type fakeLoginRequests struct{ got models.LoginRequest }

func (f *fakeLoginRequests) Create(ctx context.Context, req models.LoginRequest) (*models.LoginRequest, error) {
	if req.Email == "" {
		return nil, &validation.Error{Fields: map[string]string{"email": "is required"}}
	}
	f.got = req
	req.ID = "lr1"
	return &req, nil
}

type fixture struct {
	srv  *Server
	auth *fakeAuth
	cat  *fakeCatalog
	subs *fakeSubmissions
	lr   *fakeLoginRequests
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	f := &fixture{
		auth: &fakeAuth{},
		cat: &fakeCatalog{
			recs: []catalog.Record{
				{ID: "r1", Marking: catalog.Marking{Name: "Boston", Town: "Boston", State: "Massachusetts", DateRange: "1825-1845", Type: "CDS", Color: "Black"}},
				{ID: "r2", Marking: catalog.Marking{Name: "Salem", Town: "Salem", State: "Massachusetts", DateRange: "1810", Type: "Manuscript", Color: "Black"}},
			},
			colors: fallback.Result[options.Option]{State: fallback.Success, Source: "store:colors", Items: []options.Option{{Value: "black", Label: "Black"}}},
		},
		subs: &fakeSubmissions{subs: map[string]catalog.Submission{
			"s1": {ID: "s1", UserID: "u1", Status: catalog.StatusApproved, CreatedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)},
			"s2": {ID: "s2", UserID: "u1", Status: catalog.StatusPending, CreatedAt: time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)},
			"s3": {ID: "s3", UserID: "u2", Status: catalog.StatusApproved},
		}},
		lr: &fakeLoginRequests{},
	}
	f.srv = NewServer(f.auth, f.cat, f.subs, f.lr, nil, opts)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body io.Reader, headers map[string]string) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, req)

	var env Envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func authJSON() map[string]string {
	return map[string]string{"Authorization": "Bearer " + goodToken, "Content-Type": "application/json"}
}

func TestHealth(t *testing.T) {
	f := newFixture(t, Options{})
	rec, env := f.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	f = newFixture(t, Options{Ping: func(context.Context) error { return errors.New("down") }})
	rec, env = f.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, env.Success)
}

func TestCatalogSearch_ParsesFiltersAndPage(t *testing.T) {
	f := newFixture(t, Options{})

	rec, env := f.do(t, http.MethodGet, "/api/v1/catalog/search?exclude_manuscripts=true&page=1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, f.cat.lastState.ExcludeManuscripts)
	assert.Equal(t, 1, f.cat.lastPage)

	data := env.Data.(map[string]any)
	assert.EqualValues(t, 1, data["total"])

	f.do(t, http.MethodGet, "/api/v1/catalog/search?page=abc", nil, nil)
	assert.Equal(t, 1, f.cat.lastPage)
}

func TestCatalogGet(t *testing.T) {
	f := newFixture(t, Options{})

	rec, _ := f.do(t, http.MethodGet, "/api/v1/catalog/r2", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := f.do(t, http.MethodGet, "/api/v1/catalog/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Catalog record not found", env.Error)
}

func TestColors_FailedIsBadGateway(t *testing.T) {
	f := newFixture(t, Options{})

	rec, env := f.do(t, http.MethodGet, "/api/v1/filters/colors", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "store:colors", env.Data.(map[string]any)["source"])

	f.cat.colors = fallback.Result[options.Option]{State: fallback.Failed, Items: []options.Option{}, Err: errors.New("x")}
	rec, env = f.do(t, http.MethodGet, "/api/v1/filters/colors", nil, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "failed", env.Data.(map[string]any)["state"])
}

func TestReference(t *testing.T) {
	f := newFixture(t, Options{})

	rec, env := f.do(t, http.MethodGet, "/api/v1/reference/postal-facilities", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "store:postal-facilities", env.Data.(map[string]any)["source"])

	rec, _ = f.do(t, http.MethodGet, "/api/v1/reference/publications", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/reference/stamps", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogin(t *testing.T) {
	f := newFixture(t, Options{})

	rec, env := f.do(t, http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"a@b.c","password":"pw"}`), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a", env.Data.(map[string]any)["access_token"])

	f.auth.loginErr = common.ErrorUnauthorized
	rec, _ = f.do(t, http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"a@b.c","password":"bad"}`), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":""}`), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	f := newFixture(t, Options{LoginRequestsPerMinute: 2})
	f.auth.loginErr = common.ErrorUnauthorized

	body := `{"email":"a@b.c","password":"bad"}`
	for i := 0; i < 2; i++ {
		rec, _ := f.do(t, http.MethodPost, "/api/v1/auth/login", strings.NewReader(body), nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec, _ := f.do(t, http.MethodPost, "/api/v1/auth/login", strings.NewReader(body), nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRefresh(t *testing.T) {
	f := newFixture(t, Options{})

	rec, _ := f.do(t, http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refresh_token":"r"}`), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refresh_token":"expired"}`), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAndLogout_RequireAuth(t *testing.T) {
	f := newFixture(t, Options{})

	rec, env := f.do(t, http.MethodGet, "/api/v1/auth/session", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing authorization header", env.Error)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/auth/session", nil, map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = f.do(t, http.MethodGet, "/api/v1/auth/session", nil, authJSON())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", env.Data.(map[string]any)["user_id"])

	rec, _ = f.do(t, http.MethodPost, "/api/v1/auth/logout", nil, authJSON())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", f.auth.loggedOut)
}

func TestLoginRequest(t *testing.T) {
	f := newFixture(t, Options{})

	rec, env := f.do(t, http.MethodPost, "/api/v1/login-requests",
		strings.NewReader(`{"first_name":"Ann","last_name":"Smith","country":"USA","email":"ann@example.com"}`), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, env.Message)
	assert.Equal(t, "Ann", f.lr.got.FirstName)

	rec, env = f.do(t, http.MethodPost, "/api/v1/login-requests", strings.NewReader(`{"first_name":"Ann"}`), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation failed", env.Error)
	assert.Equal(t, "is required", env.Data.(map[string]any)["email"])
}

func TestCreateSubmission_JSON(t *testing.T) {
	f := newFixture(t, Options{})

	rec, _ := f.do(t, http.MethodPost, "/api/v1/submissions",
		strings.NewReader(`{"state":"Maine","town":"Bath","first_seen":"1840","type":"CDS","color":"Black"}`), authJSON())
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Bath", f.subs.form.Town)

	rec, _ = f.do(t, http.MethodPost, "/api/v1/submissions", strings.NewReader(`{"town":""}`), authJSON())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/v1/submissions", strings.NewReader(`{}`), map[string]string{"Content-Type": "application/json"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func multipartBody(t *testing.T, fields map[string]string, imageType string, image []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="stamp.png"`)
		h.Set("Content-Type", imageType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestCreateSubmission_Multipart(t *testing.T) {
	f := newFixture(t, Options{})

	body, ct := multipartBody(t, map[string]string{"state": "Maine", "town": "Bath", "first_seen": "1840", "type": "CDS", "color": "Red"}, "image/png", []byte("png-bytes"))
	rec, env := f.do(t, http.MethodPost, "/api/v1/submissions", body, map[string]string{
		"Authorization": "Bearer " + goodToken, "Content-Type": ct,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Red", f.subs.form.Color)
	assert.Equal(t, "png-bytes", string(f.subs.img))
	assert.Equal(t, services.WarningImageNotSaved, env.Message)
}

func TestCreateSubmission_DisallowedImage(t *testing.T) {
	f := newFixture(t, Options{})

	body, ct := multipartBody(t, map[string]string{"town": "Bath"}, "image/gif", []byte("gif"))
	rec, _ := f.do(t, http.MethodPost, "/api/v1/submissions", body, map[string]string{
		"Authorization": "Bearer " + goodToken, "Content-Type": ct,
	})
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestListSubmissions(t *testing.T) {
	f := newFixture(t, Options{})

	rec, env := f.do(t, http.MethodGet, "/api/v1/submissions?status=pending", nil, authJSON())
	require.Equal(t, http.StatusOK, rec.Code)
	items := env.Data.([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "s2", items[0].(map[string]any)["id"])

	rec, env = f.do(t, http.MethodGet, "/api/v1/submissions?to=2024-03-05", nil, authJSON())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, env.Data.([]any), 1)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/submissions?from=March", nil, authJSON())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSubmission_Ownership(t *testing.T) {
	f := newFixture(t, Options{})

	rec, _ := f.do(t, http.MethodGet, "/api/v1/submissions/s1", nil, authJSON())
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := f.do(t, http.MethodGet, "/api/v1/submissions/s3", nil, authJSON())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, submissionNotFound, env.Error)
}

func TestPublishSubmission(t *testing.T) {
	f := newFixture(t, Options{})

	rec, _ := f.do(t, http.MethodPost, "/api/v1/submissions/s1/publish", nil, authJSON())
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/v1/submissions/s2/publish", nil, authJSON())
	assert.Equal(t, http.StatusConflict, rec.Code)
}
