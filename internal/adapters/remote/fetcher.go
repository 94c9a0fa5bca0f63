// Package remote implements the Fetcher port for the catalog service over HTTP.
package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fetcher = (*Fetcher)(nil)

var (
	errUnexpectedStatus = zerr.New("unexpected status")
	errEmptyBody        = zerr.New("empty response body")
	errBodyTooLarge     = zerr.New("response body exceeds limit")
)

// Fetcher implements ports.Fetcher with a single GET per call.
type Fetcher struct {
	client  *http.Client
	maxBody int64
}

// NewFetcher creates a Fetcher. A nil client uses http.DefaultClient and a non-positive
// maxBody uses domain.DefaultMaxBodyBytes.
func NewFetcher(client *http.Client, maxBody int64) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBody <= 0 {
		maxBody = domain.DefaultMaxBodyBytes
	}
	return &Fetcher{client: client, maxBody: maxBody}
}

// Fetch issues a GET for rawURL and returns the body.
// The request is bounded by timeout in addition to ctx.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	safeURL := Redact(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrFetchFailed, err), "url", safeURL)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrFetchFailed, scrub(err)), "url", safeURL)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, f.maxBody))
		statusErr := zerr.With(errUnexpectedStatus, "status_code", resp.StatusCode)
		return nil, zerr.With(errors.Join(domain.ErrFetchFailed, statusErr), "url", safeURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrFetchFailed, scrub(err)), "url", safeURL)
	}
	if int64(len(body)) > f.maxBody {
		return nil, zerr.With(errors.Join(domain.ErrFetchFailed, zerr.With(errBodyTooLarge, "limit", f.maxBody)), "url", safeURL)
	}
	if len(body) == 0 {
		return nil, zerr.With(errors.Join(domain.ErrFetchFailed, zerr.With(errEmptyBody, "status_code", resp.StatusCode)), "url", safeURL)
	}

	return body, nil
}

// Redact replaces the token query parameter of rawURL so the URL can be logged.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if !q.Has("token") {
		return rawURL
	}
	q.Set("token", "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}

// scrub drops the *url.Error wrapper, whose message repeats the unredacted URL.
func scrub(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
