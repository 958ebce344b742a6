package refdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/worldcovers/internal/fallback"
	"github.com/dmitrijs2005/worldcovers/internal/logging"
)

// DefaultTimeout bounds each HTTP request to a reference service.
const DefaultTimeout = 10 * time.Second

// MaxPages bounds how many "next" links are followed for one resource.
const MaxPages = 50

// ErrMalformed is returned when a payload has no "results" array.
var ErrMalformed = errors.New("malformed reference payload")

// StatusError is returned for a non-2xx response.
type StatusError struct {
	Resource Resource
	Code     int
	Status   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error: %s", e.Resource, e.Status)
}

type page struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  json.RawMessage `json:"results"`
}

// Client reads reference resources from their configured base URLs.
type Client struct {
	http *http.Client
	urls map[Resource]string
	log  logging.Logger
}

// NewClient builds a client. urls maps each resource to its base URL;
// resources without one are not configured. A zero timeout means
// DefaultTimeout.
func NewClient(urls map[Resource]string, timeout time.Duration, log logging.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
		urls: urls,
		log:  log.With("component", "refdata"),
	}
}

// URL returns the resolved request URL of r.
func (c *Client) URL(r Resource) (string, bool) {
	return ResolveURL(c.urls[r], r)
}

// Fetch reads every page of r and decodes the results as T. It returns an
// error wrapping fallback.ErrNotConfigured when r has no URL.
func Fetch[T any](ctx context.Context, c *Client, r Resource) ([]T, error) {
	raw, err := c.Raw(ctx, r)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(raw))
	for _, item := range raw {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", r, ErrMalformed, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Raw reads every page of r and returns the undecoded result items.
func (c *Client) Raw(ctx context.Context, r Resource) ([]json.RawMessage, error) {
	target, ok := c.URL(r)
	if !ok {
		return nil, fmt.Errorf("%s: %w", r, fallback.ErrNotConfigured)
	}

	out := make([]json.RawMessage, 0)
	seen := make(map[string]struct{})

	for n := 0; target != "" && n < MaxPages; n++ {
		if _, dup := seen[target]; dup {
			break
		}
		seen[target] = struct{}{}

		p, err := c.get(ctx, r, target)
		if err != nil {
			return nil, err
		}

		var items []json.RawMessage
		if err := json.Unmarshal(p.Results, &items); err != nil {
			return nil, fmt.Errorf("%s: %w", r, ErrMalformed)
		}
		out = append(out, items...)

		target, err = nextURL(target, p.Next)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r, err)
		}
	}

	c.log.Debug(ctx, "reference resource loaded", "resource", string(r), "items", len(out))
	return out, nil
}

func (c *Client) get(ctx context.Context, r Resource, target string) (*page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Resource: r, Code: resp.StatusCode, Status: resp.Status}
	}

	var p page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", r, ErrMalformed, err)
	}

	results := bytes.TrimSpace(p.Results)
	if len(results) == 0 || results[0] != '[' {
		return nil, fmt.Errorf("%s: %w (missing results array)", r, ErrMalformed)
	}
	return &p, nil
}

func nextURL(current string, next *string) (string, error) {
	if next == nil || *next == "" {
		return "", nil
	}
	base, err := url.Parse(current)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(*next)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
