// Package detector provides environment detection for log format selection.
package detector

import (
	"os"

	"go.trai.ch/tmplsync/internal/core/domain"
	"golang.org/x/term"
)

// IsInteractive reports whether f is a terminal outside of CI.
func IsInteractive(f *os.File) bool {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return false
	}
	return !IsCI()
}

// IsCI reports whether a CI environment variable is set.
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// ResolveFormat applies the configured format to the detected environment.
// The auto format resolves to pretty output on an interactive terminal and JSON otherwise.
func ResolveFormat(configured domain.LogFormat, interactive bool) domain.LogFormat {
	switch configured {
	case domain.LogFormatPretty, domain.LogFormatJSON:
		return configured
	default:
		if interactive {
			return domain.LogFormatPretty
		}
		return domain.LogFormatJSON
	}
}
