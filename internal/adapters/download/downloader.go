// Package download implements the AssetDownloader port. Transfers run on their own
// goroutines and land in the template directory through a temp file and rename.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-git/go-billy/v5"
	"go.trai.ch/tmplsync/internal/adapters/catalogfs"
	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.AssetDownloader = (*Downloader)(nil)

var (
	errUnexpectedStatus = zerr.New("unexpected status")
	errBodyTooLarge     = zerr.New("response body exceeds limit")
)

// Downloader implements ports.AssetDownloader.
type Downloader struct {
	client  *http.Client
	fs      billy.Filesystem
	logger  ports.Logger
	timeout time.Duration
	maxBody int64

	wg sync.WaitGroup
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithTimeout bounds each transfer.
func WithTimeout(d time.Duration) Option {
	return func(dl *Downloader) { dl.timeout = d }
}

// WithMaxBodyBytes caps the size of a single asset.
func WithMaxBodyBytes(n int64) Option {
	return func(dl *Downloader) { dl.maxBody = n }
}

// New creates a Downloader writing into fs.
func New(client *http.Client, fs billy.Filesystem, logger ports.Logger, opts ...Option) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	d := &Downloader{
		client:  client,
		fs:      fs,
		logger:  logger,
		timeout: domain.DefaultDownloadTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start dispatches a transfer of url to dest and returns immediately.
// Failures are logged as warnings and reported on the returned Transfer.
func (d *Downloader) Start(ctx context.Context, url, dest string) ports.Transfer {
	t := newTransfer(url, dest)
	detached := context.WithoutCancel(ctx)

	d.wg.Go(func() {
		err := d.transfer(detached, url, dest)
		t.finish(err)
		if err != nil {
			d.logger.Warn(fmt.Sprintf("download failed: %s: %v", dest, err))
		}
	})

	return t
}

// Fetch downloads url to dest and blocks until the transfer ends.
func (d *Downloader) Fetch(ctx context.Context, url, dest string) error {
	return d.transfer(ctx, url, dest)
}

// Wait blocks until every transfer dispatched by Start has ended.
func (d *Downloader) Wait() {
	d.wg.Wait()
}

func (d *Downloader) transfer(ctx context.Context, url, dest string) error {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	fail := func(cause error) error {
		err := zerr.With(errors.Join(domain.ErrDownloadFailed, cause), "url", url)
		return zerr.With(err, "dest", dest)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fail(err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fail(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(zerr.With(errUnexpectedStatus, "status_code", resp.StatusCode))
	}

	var body io.Reader = resp.Body
	if d.maxBody > 0 {
		body = &capReader{r: resp.Body, remaining: d.maxBody}
	}

	if _, err := catalogfs.Replace(d.fs, dest, body, domain.FilePerm); err != nil {
		return fail(err)
	}
	return nil
}

// capReader fails once more than remaining bytes have been read, so an oversized body
// never replaces the destination.
type capReader struct {
	r         io.Reader
	remaining int64
}

func (c *capReader) Read(p []byte) (int, error) {
	if c.remaining < 0 {
		return 0, errBodyTooLarge
	}
	if int64(len(p)) > c.remaining+1 {
		p = p[:c.remaining+1]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return n, errBodyTooLarge
	}
	return n, err
}
