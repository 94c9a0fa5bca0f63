package ports

import (
	"context"
	"time"
)

// Fetcher retrieves small manifest payloads from the catalog service.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch issues a GET for url and blocks until the body arrives or timeout elapses.
	// Every failure mode returns an error wrapping domain.ErrFetchFailed.
	Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}
