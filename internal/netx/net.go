// Package netx holds small HTTP helpers for fetching files by URL.
package netx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrTooLarge is returned when a download exceeds its size limit.
var ErrTooLarge = errors.New("download exceeds size limit")

// Download GETs url and copies the body to w. A positive limit caps the
// number of bytes accepted. It returns the content type reported by the
// server and the number of bytes written.
func Download(ctx context.Context, client *http.Client, url string, w io.Writer, limit int64) (string, int64, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", 0, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	body := io.Reader(resp.Body)
	if limit > 0 {
		body = io.LimitReader(resp.Body, limit+1)
	}
	n, err := io.Copy(w, body)
	if err != nil {
		return "", n, err
	}
	if limit > 0 && n > limit {
		return "", n, ErrTooLarge
	}
	return resp.Header.Get("Content-Type"), n, nil
}
