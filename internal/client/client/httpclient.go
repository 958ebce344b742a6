package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/client/session"
	"github.com/dmitrijs2005/worldcovers/internal/common"
)

// DefaultTimeout bounds every request to the catalog server.
const DefaultTimeout = 10 * time.Second

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// HTTPClient talks to the catalog server's JSON API. Tokens are read from
// and written back to the session store.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	sessions *session.Store
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration, sessions *session.Store) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if sessions == nil {
		sessions = session.NewStore()
	}
	return &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
	}
}

type requestFunc func(ctx context.Context) (*http.Request, error)

func (c *HTTPClient) jsonRequest(method, path string, body any) requestFunc {
	return func(ctx context.Context) (*http.Request, error) {
		var r io.Reader
		if body != nil {
			b, err := json.Marshal(body)
			if err != nil {
				return nil, err
			}
			r = bytes.NewReader(b)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return req, nil
	}
}

// call sends the request and decodes the envelope's data into out (when
// out is non-nil). Authenticated calls retry once after refreshing tokens
// on 401.
func (c *HTTPClient) call(ctx context.Context, build requestFunc, authed bool, out any) (*envelope, error) {
	env, err := c.send(ctx, build, authed)
	if authed && errors.Is(err, ErrUnauthorized) {
		if rerr := c.refresh(ctx); rerr != nil {
			return nil, err
		}
		env, err = c.send(ctx, build, authed)
	}
	if err != nil {
		return nil, err
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return env, nil
}

func (c *HTTPClient) send(ctx context.Context, build requestFunc, authed bool) (*envelope, error) {
	req, err := build(ctx)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if authed {
		sess := c.sessions.Get()
		if sess == nil {
			return nil, ErrUnauthorized
		}
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+sess.AccessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		if resp.StatusCode >= 500 {
			return nil, &APIError{Status: resp.StatusCode}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Error}
		if resp.StatusCode == http.StatusBadRequest && len(env.Data) > 0 {
			_ = json.Unmarshal(env.Data, &apiErr.Fields)
		}
		return nil, apiErr
	}
	return &env, nil
}

// refresh rotates the session's tokens. A rejected refresh token signs the
// session out.
func (c *HTTPClient) refresh(ctx context.Context) error {
	sess := c.sessions.Get()
	if sess == nil || sess.RefreshToken == "" {
		return ErrUnauthorized
	}
	t, err := c.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			c.sessions.Clear()
		}
		return err
	}
	c.sessions.UpdateTokens(t.AccessToken, t.RefreshToken)
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*Tokens, error) {
	var t Tokens
	body := map[string]string{"email": email, "password": password}
	if _, err := c.call(ctx, c.jsonRequest(http.MethodPost, "/api/v1/auth/login", body), false, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	var t Tokens
	body := map[string]string{"refresh_token": refreshToken}
	if _, err := c.call(ctx, c.jsonRequest(http.MethodPost, "/api/v1/auth/refresh", body), false, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.call(ctx, c.jsonRequest(http.MethodPost, "/api/v1/auth/logout", nil), true, nil)
	return err
}

func (c *HTTPClient) Account(ctx context.Context) (*Account, error) {
	var a Account
	if _, err := c.call(ctx, c.jsonRequest(http.MethodGet, "/api/v1/auth/session", nil), true, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) Catalog(ctx context.Context) ([]catalog.Record, error) {
	recs := []catalog.Record{}
	if _, err := c.call(ctx, c.jsonRequest(http.MethodGet, "/api/v1/catalog/", nil), false, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *HTTPClient) Record(ctx context.Context, id string) (*catalog.Record, error) {
	var r catalog.Record
	path := "/api/v1/catalog/" + url.PathEscape(id)
	if _, err := c.call(ctx, c.jsonRequest(http.MethodGet, path, nil), false, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	var o FilterOptions
	if _, err := c.call(ctx, c.jsonRequest(http.MethodGet, "/api/v1/filters", nil), false, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *HTTPClient) Reference(ctx context.Context, resource string) (*ReferenceOptions, error) {
	var o ReferenceOptions
	path := "/api/v1/reference/" + url.PathEscape(resource)
	if _, err := c.call(ctx, c.jsonRequest(http.MethodGet, path, nil), false, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateSubmission posts the form as multipart/form-data with the image in
// the "image" part. The image is buffered so the request can be rebuilt
// after a token refresh.
func (c *HTTPClient) CreateSubmission(ctx context.Context, form catalog.SubmissionForm, img *Image) (*Created, error) {
	var data []byte
	if img != nil {
		var err error
		if data, err = io.ReadAll(img.Body); err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
	}

	build := func(ctx context.Context) (*http.Request, error) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for name, v := range formValues(form) {
			if err := mw.WriteField(name, v); err != nil {
				return nil, err
			}
		}
		if img != nil {
			if err := writeImage(mw, img.Filename, img.ContentType, data); err != nil {
				return nil, err
			}
		}
		if err := mw.Close(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/submissions/", &buf)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return req, nil
	}

	var out struct {
		Submission catalog.Submission `json:"submission"`
		Warning    string             `json:"warning"`
	}
	env, err := c.call(ctx, build, true, &out)
	if err != nil {
		return nil, err
	}
	warning := out.Warning
	if warning == "" {
		warning = env.Message
	}
	return &Created{Submission: out.Submission, Warning: warning}, nil
}

func writeImage(mw *multipart.Writer, filename, contentType string, data []byte) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(data)
	return err
}

func formValues(f catalog.SubmissionForm) map[string]string {
	return map[string]string{
		"state":               f.State,
		"town":                f.Town,
		"first_seen":          f.FirstSeen,
		"last_seen":           f.LastSeen,
		"type":                f.Type,
		"color":               f.Color,
		"dimensions":          f.Dimensions,
		"manuscript":          f.Manuscript,
		"rarity":              f.Rarity,
		"description":         f.Description,
		"citation_references": f.CitationReferences,
	}
}

func (c *HTTPClient) Submissions(ctx context.Context) ([]catalog.Submission, error) {
	subs := []catalog.Submission{}
	if _, err := c.call(ctx, c.jsonRequest(http.MethodGet, "/api/v1/submissions/", nil), true, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (c *HTTPClient) Submission(ctx context.Context, id string) (*catalog.Submission, error) {
	var s catalog.Submission
	path := "/api/v1/submissions/" + url.PathEscape(id)
	if _, err := c.call(ctx, c.jsonRequest(http.MethodGet, path, nil), true, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Publish(ctx context.Context, id string) (*Published, error) {
	var p Published
	path := "/api/v1/submissions/" + url.PathEscape(id) + "/publish"
	if _, err := c.call(ctx, c.jsonRequest(http.MethodPost, path, nil), true, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) RequestAccess(ctx context.Context, req AccessRequest) error {
	_, err := c.call(ctx, c.jsonRequest(http.MethodPost, "/api/v1/login-requests", req), false, nil)
	return err
}
