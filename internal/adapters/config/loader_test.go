package config_test

import (
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tmplsync/internal/adapters/config"
	"go.trai.ch/tmplsync/internal/core/domain"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", "/nonexistent-xdg-config")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
}

func TestLoader_Load_DefaultsWhenNoFile(t *testing.T) {
	isolate(t)
	loader := config.NewLoaderWithFS(config.NewMapFSAdapter(fstest.MapFS{}), env(nil))

	s, err := loader.Load("")
	require.NoError(t, err)

	assert.Empty(t, s.Source)
	assert.Empty(t, s.ServerURL)
	assert.Equal(t, domain.DefaultLocale, s.Locale)
	assert.Equal(t, domain.DefaultFetchTimeout, s.FetchTimeout)
	assert.Equal(t, filepath.Join("/xdg/data", "tmplsync"), s.DataDir)
	assert.False(t, s.DownloadNewTemplates)
}

func TestLoader_Load_WorkingDirectoryFile(t *testing.T) {
	isolate(t)
	fsys := fstest.MapFS{
		"tmplsync.yaml": {Data: []byte(`
server:
  url: https://api.example.com
  token: secret
  platform: macosx
sync:
  locale: zh_CN
  fetch_timeout: 10s
  download_timeout: 2m
  interval: 30m
  download_new_templates: true
  concurrency: 2
templates:
  data_dir: /srv/tmplsync
  bundled_script: /opt/template.js
remote:
  max_body_bytes: 1024
log:
  level: debug
  format: json
  file: /var/log/tmplsync.log
  trace: true
`)},
	}
	loader := config.NewLoaderWithFS(config.NewMapFSAdapter(fsys), env(nil))

	s, err := loader.Load("")
	require.NoError(t, err)

	assert.Equal(t, "tmplsync.yaml", s.Source)
	assert.Equal(t, "https://api.example.com", s.ServerURL)
	assert.Equal(t, "secret", s.Token)
	assert.Equal(t, "macosx", s.Platform)
	assert.Equal(t, "zh_CN", s.Locale)
	assert.Equal(t, 10*time.Second, s.FetchTimeout)
	assert.Equal(t, 2*time.Minute, s.DownloadTimeout)
	assert.Equal(t, 30*time.Minute, s.Interval)
	assert.True(t, s.DownloadNewTemplates)
	assert.Equal(t, 2, s.Concurrency)
	assert.Equal(t, "/srv/tmplsync", s.DataDir)
	assert.Equal(t, "/opt/template.js", s.BundledScript)
	assert.Equal(t, int64(1024), s.MaxBodyBytes)
	assert.Equal(t, domain.LogSettings{
		Level:  "debug",
		Format: domain.LogFormatJSON,
		File:   "/var/log/tmplsync.log",
		Trace:  true,
	}, s.Log)
}

func TestLoader_Load_EnvOverrides(t *testing.T) {
	isolate(t)
	fsys := fstest.MapFS{
		"etc/custom.yaml": {Data: []byte("server:\n  url: https://file.example.com\n  token: from-file\n")},
	}
	loader := config.NewLoaderWithFS(config.NewMapFSAdapter(fsys), env(map[string]string{
		config.EnvConfig:  "/etc/custom.yaml",
		config.EnvToken:   "from-env",
		config.EnvDataDir: "/tmp/data",
	}))

	s, err := loader.Load("")
	require.NoError(t, err)

	assert.Equal(t, "/etc/custom.yaml", s.Source)
	assert.Equal(t, "https://file.example.com", s.ServerURL)
	assert.Equal(t, "from-env", s.Token)
	assert.Equal(t, "/tmp/data", s.DataDir)
}

func TestLoader_Load_ExplicitMissingFile(t *testing.T) {
	isolate(t)
	loader := config.NewLoaderWithFS(config.NewMapFSAdapter(fstest.MapFS{}), env(nil))

	_, err := loader.Load("/missing.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestLoader_Load_Invalid(t *testing.T) {
	isolate(t)
	tests := []struct {
		name    string
		content string
	}{
		{name: "not yaml", content: "server: [unclosed"},
		{name: "unknown key", content: "sync:\n  retries: 3\n"},
		{name: "bad duration", content: "sync:\n  fetch_timeout: soon\n"},
		{name: "zero timeout", content: "sync:\n  fetch_timeout: 0s\n"},
		{name: "bad url", content: "server:\n  url: ftp://example.com\n"},
		{name: "bad concurrency", content: "sync:\n  concurrency: 0\n"},
		{name: "bad format", content: "log:\n  format: xml\n"},
		{name: "bad level", content: "log:\n  level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"tmplsync.yaml": {Data: []byte(tt.content)}}
			loader := config.NewLoaderWithFS(config.NewMapFSAdapter(fsys), env(nil))

			_, err := loader.Load("")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
		})
	}
}

func TestLoader_Load_EmptyFile(t *testing.T) {
	isolate(t)
	fsys := fstest.MapFS{"tmplsync.yaml": {Data: []byte("")}}
	loader := config.NewLoaderWithFS(config.NewMapFSAdapter(fsys), env(nil))

	s, err := loader.Load("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLocale, s.Locale)
}

func TestLoader_Load_UserConfigFallback(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	fsys := fstest.MapFS{
		"xdg/tmplsync/config.yaml": {Data: []byte("sync:\n  locale: de_DE\n")},
	}
	loader := config.NewLoaderWithFS(config.NewMapFSAdapter(fsys), env(nil))

	s, err := loader.Load("")
	require.NoError(t, err)
	assert.Equal(t, "de_DE", s.Locale)
	assert.Equal(t, filepath.Join("/xdg", "tmplsync", "config.yaml"), s.Source)
}
