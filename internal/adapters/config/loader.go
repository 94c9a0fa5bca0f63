// Package config provides the configuration loader for tmplsync.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables read by the loader.
const (
	EnvConfig    = "TMPLSYNC_CONFIG"
	EnvToken     = "TMPLSYNC_TOKEN"
	EnvServerURL = "TMPLSYNC_SERVER_URL"
	EnvDataDir   = "TMPLSYNC_DATA_DIR"
)

var _ ports.ConfigLoader = (*Loader)(nil)

var errInvalidSetting = zerr.New("invalid setting")

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	fs     FileSystem
	getenv func(string) string
	home   func() (string, error)
}

// NewLoader creates a Loader reading from the host filesystem and environment.
func NewLoader() *Loader {
	return NewLoaderWithFS(NewOSFS(), os.Getenv)
}

// NewLoaderWithFS creates a Loader over a custom filesystem and environment lookup.
func NewLoaderWithFS(fsys FileSystem, getenv func(string) string) *Loader {
	return &Loader{fs: fsys, getenv: getenv, home: os.UserHomeDir}
}

// Load reads settings from path, or from the first discovered config file when path is empty.
func (l *Loader) Load(path string) (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	explicit := path != ""
	if !explicit {
		path = l.getenv(EnvConfig)
		explicit = path != ""
	}
	if !explicit {
		path = l.discover()
	}

	if path != "" {
		data, err := l.fs.ReadFile(path)
		switch {
		case err == nil:
			if err := l.apply(settings, data); err != nil {
				return nil, zerr.With(err, "path", path)
			}
			settings.Source = path
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
		}
	}

	l.applyEnv(settings)

	if err := validate(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// discover returns the first existing candidate config file, or "".
func (l *Loader) discover() string {
	candidates := []string{domain.ConfigFileName, domain.DefaultConfigPath()}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if info, err := l.fs.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func (l *Loader) apply(s *domain.Settings, data []byte) error {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(domain.ErrConfigParseFailed, err)
	}

	setString(&s.ServerURL, file.Server.URL)
	setString(&s.Token, file.Server.Token)
	setString(&s.Platform, file.Server.Platform)

	setString(&s.Locale, file.Sync.Locale)
	durations := []struct {
		key   string
		value string
		dst   *time.Duration
	}{
		{"sync.fetch_timeout", file.Sync.FetchTimeout, &s.FetchTimeout},
		{"sync.download_timeout", file.Sync.DownloadTimeout, &s.DownloadTimeout},
		{"sync.interval", file.Sync.Interval, &s.Interval},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "field", d.key)
		}
		*d.dst = v
	}
	if file.Sync.DownloadNewTemplates != nil {
		s.DownloadNewTemplates = *file.Sync.DownloadNewTemplates
	}
	if file.Sync.Concurrency != nil {
		s.Concurrency = *file.Sync.Concurrency
	}

	if file.Templates.DataDir != "" {
		s.DataDir = l.expandHome(file.Templates.DataDir)
	}
	if file.Templates.BundledScript != "" {
		s.BundledScript = l.expandHome(file.Templates.BundledScript)
	}

	if file.Remote.MaxBodyBytes != nil {
		s.MaxBodyBytes = *file.Remote.MaxBodyBytes
	}

	setString(&s.Log.Level, file.Log.Level)
	if file.Log.Format != "" {
		s.Log.Format = domain.LogFormat(file.Log.Format)
	}
	if file.Log.File != "" {
		s.Log.File = l.expandHome(file.Log.File)
	}
	if file.Log.Trace != nil {
		s.Log.Trace = *file.Log.Trace
	}

	return nil
}

func (l *Loader) applyEnv(s *domain.Settings) {
	setString(&s.Token, l.getenv(EnvToken))
	setString(&s.ServerURL, l.getenv(EnvServerURL))
	if dir := l.getenv(EnvDataDir); dir != "" {
		s.DataDir = l.expandHome(dir)
	}
}

func (l *Loader) expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := l.home()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func validate(s *domain.Settings) error {
	invalid := func(field string, value any) error {
		err := zerr.With(errInvalidSetting, "field", field)
		return errors.Join(domain.ErrConfigParseFailed, zerr.With(err, "value", value))
	}

	if s.ServerURL != "" && !strings.HasPrefix(s.ServerURL, "http://") && !strings.HasPrefix(s.ServerURL, "https://") {
		return invalid("server.url", s.ServerURL)
	}
	if s.FetchTimeout <= 0 {
		return invalid("sync.fetch_timeout", s.FetchTimeout)
	}
	if s.DownloadTimeout <= 0 {
		return invalid("sync.download_timeout", s.DownloadTimeout)
	}
	if s.Interval <= 0 {
		return invalid("sync.interval", s.Interval)
	}
	if s.Concurrency < 1 {
		return invalid("sync.concurrency", s.Concurrency)
	}
	if s.MaxBodyBytes <= 0 {
		return invalid("remote.max_body_bytes", s.MaxBodyBytes)
	}
	switch s.Log.Format {
	case domain.LogFormatAuto, domain.LogFormatPretty, domain.LogFormatJSON:
	default:
		return invalid("log.format", s.Log.Format)
	}
	switch strings.ToLower(s.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return invalid("log.level", s.Log.Level)
	}
	return nil
}
