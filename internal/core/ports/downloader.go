package ports

import "context"

//go:generate mockgen -source=downloader.go -destination=mocks/mock_downloader.go -package=mocks

// Transfer is a handle on a dispatched asset download.
// Production callers may drop it.
type Transfer interface {
	// URL is the source of the transfer.
	URL() string
	// Dest is the destination file, relative to the template directory.
	Dest() string
	// Done is closed when the transfer ends.
	Done() <-chan struct{}
	// Err returns the transfer error once Done is closed, nil before.
	Err() error
	// Wait blocks until the transfer ends or ctx is done.
	Wait(ctx context.Context) error
}

// AssetDownloader transfers template packages and the script bundle into the template directory.
type AssetDownloader interface {
	// Start dispatches a transfer and returns without waiting for it.
	// The transfer is not bound to ctx cancellation.
	Start(ctx context.Context, url, dest string) Transfer

	// Fetch downloads url to dest and blocks until it finishes.
	Fetch(ctx context.Context, url, dest string) error

	// Wait blocks until every transfer started so far has ended.
	Wait()
}
