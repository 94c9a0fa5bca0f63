// Package assets embeds files shipped with the binary.
package assets

import (
	_ "embed"
	"errors"
	"os"

	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/zerr"
)

//go:embed template.js
var bundledScript []byte

// Script returns the script bundle used to seed an empty template directory. A non-empty
// override names a file that replaces the embedded copy.
func Script(override string) ([]byte, error) {
	if override == "" {
		return bundledScript, nil
	}
	// #nosec G304 -- the override path is user configuration
	data, err := os.ReadFile(override)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "bundled_script", override)
	}
	return data, nil
}
