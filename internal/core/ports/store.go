// Package ports defines the core interfaces for the application.
package ports

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// CatalogStore owns the template directory: the local manifest, the purchase record,
// the script bundle and the template assets.
//
// File arguments are paths relative to the template directory.
type CatalogStore interface {
	// EnsureLayout creates the template directory if it does not exist.
	EnsureLayout() error

	// SeedScript writes bundled as the script bundle when none is present.
	// It reports whether a file was written.
	SeedScript(bundled []byte) (bool, error)

	// LoadManifest returns the raw local manifest.
	// Returns nil, nil if no manifest has been persisted yet.
	LoadManifest() ([]byte, error)

	// SaveManifest replaces the local manifest with data.
	SaveManifest(data []byte) error

	// SavePurchaseRecord replaces the cached purchase record with data.
	SavePurchaseRecord(data []byte) error

	// Exists reports whether the asset file is present.
	Exists(file string) bool

	// Remove deletes the asset file. A missing file is not an error.
	Remove(file string) error

	// Path returns the absolute location of file.
	Path(file string) string
}
