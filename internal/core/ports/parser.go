package ports

import "go.trai.ch/tmplsync/internal/core/domain"

// ManifestParser decodes manifest payloads.
//
//go:generate mockgen -source=parser.go -destination=mocks/mock_parser.go -package=mocks
type ManifestParser interface {
	// Parse decodes data into a catalog.
	// Malformed payloads return an error wrapping domain.ErrManifestMalformed;
	// individual bad entries are skipped and counted in Catalog.Skipped.
	Parse(data []byte) (*domain.Catalog, error)
}
