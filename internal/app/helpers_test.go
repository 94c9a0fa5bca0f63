package app_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.trai.ch/tmplsync/internal/adapters/catalogfs"
	"go.trai.ch/tmplsync/internal/adapters/journal"
	"go.trai.ch/tmplsync/internal/adapters/manifest"
	"go.trai.ch/tmplsync/internal/adapters/telemetry"
	"go.trai.ch/tmplsync/internal/app"
	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
	"go.trai.ch/tmplsync/internal/core/ports/mocks"
	"go.trai.ch/tmplsync/internal/engine/reconciler"
	"go.trai.ch/tmplsync/internal/engine/runner"
	"go.uber.org/mock/gomock"
)

const (
	testServer = "https://api.example.com"
	testToken  = "tok-123"
)

var (
	endpoints = domain.NewEndpoints(testServer, domain.PlatformLinux)
	fixedNow  = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
)

type entry struct {
	ID      int    `json:"id"`
	Version string `json:"version"`
	File    string `json:"file"`
}

type manifestDoc struct {
	Templates []entry `json:"templates"`
}

func encode(t *testing.T, doc manifestDoc) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

// doneTransfer is a Transfer that has already finished.
type doneTransfer struct {
	url, dest string
}

func (d doneTransfer) URL() string  { return d.url }
func (d doneTransfer) Dest() string { return d.dest }
func (d doneTransfer) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (d doneTransfer) Err() error                   { return nil }
func (d doneTransfer) Wait(_ context.Context) error { return nil }

type harness struct {
	settings   *domain.Settings
	fs         billy.Filesystem
	store      *catalogfs.Store
	fetcher    *mocks.MockFetcher
	downloader *mocks.MockAssetDownloader
	journal    *journal.Journal
	log        *mocks.MockLogger
	watcher    *mocks.MockWatcher
	app        *app.App
}

type harnessOption func(*harnessConfig)

type harnessConfig struct {
	journal ports.Journal
	runner  ports.Runner
}

func withJournal(j ports.Journal) harnessOption {
	return func(c *harnessConfig) { c.journal = j }
}

func withRunner(r ports.Runner) harnessOption {
	return func(c *harnessConfig) { c.runner = r }
}

// newHarness wires an App over a temporary template directory and a real journal.
// Network access is mocked; Start writes the URL into the destination file.
func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	settings := domain.DefaultSettings()
	settings.ServerURL = testServer
	settings.Platform = domain.PlatformLinux
	settings.Token = testToken
	settings.DataDir = t.TempDir()

	jrnl, err := journal.New(filepath.Join(settings.DataDir, "journal.db"), journal.DefaultRetention)
	require.NoError(t, err)

	h := &harness{
		settings:   settings,
		fs:         catalogfs.NewFilesystem(settings.TemplatesDir()),
		fetcher:    mocks.NewMockFetcher(ctrl),
		downloader: mocks.NewMockAssetDownloader(ctrl),
		journal:    jrnl,
		log:        mocks.NewMockLogger(ctrl),
		watcher:    mocks.NewMockWatcher(ctrl),
	}
	h.store = catalogfs.New(h.fs, settings.TemplatesDir())

	h.downloader.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, url, dest string) ports.Transfer {
			require.NoError(t, util.WriteFile(h.fs, dest, []byte(url), domain.FilePerm))
			return doneTransfer{url: url, dest: dest}
		}).AnyTimes()
	h.downloader.EXPECT().Wait().AnyTimes()

	cfg := harnessConfig{journal: jrnl, runner: runner.NewInline(context.Background())}
	for _, opt := range opts {
		opt(&cfg)
	}

	tracer := telemetry.NewTracer(noop.NewTracerProvider())
	parser := manifest.NewParser()
	rec := reconciler.New(h.store, parser, h.downloader, h.log, tracer, endpoints)

	h.app = app.New(settings, h.store, parser, h.fetcher, rec, h.downloader, cfg.journal,
		cfg.runner, h.watcher, h.log, tracer, []byte("bundled script")).
		WithClock(func() time.Time { return fixedNow })
	return h
}

// quiet accepts every log call.
func (h *harness) quiet() *harness {
	h.log.EXPECT().Info(gomock.Any()).AnyTimes()
	h.log.EXPECT().Warn(gomock.Any()).AnyTimes()
	h.log.EXPECT().Error(gomock.Any()).AnyTimes()
	return h
}

func (h *harness) serveCatalog(body []byte) *gomock.Call {
	return h.fetcher.EXPECT().
		Fetch(gomock.Any(), endpoints.CatalogURL(domain.DefaultLocale), domain.DefaultFetchTimeout).
		Return(body, nil)
}

func (h *harness) read(t *testing.T, name string) []byte {
	t.Helper()
	data, err := util.ReadFile(h.fs, name)
	require.NoError(t, err)
	return data
}

func (h *harness) history(t *testing.T, kind domain.PassKind) []domain.PassRecord {
	t.Helper()
	recs, err := h.app.History(kind, 10)
	require.NoError(t, err)
	return recs
}
