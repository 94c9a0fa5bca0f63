package reconciler_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.trai.ch/tmplsync/internal/adapters/catalogfs"
	"go.trai.ch/tmplsync/internal/adapters/manifest"
	"go.trai.ch/tmplsync/internal/adapters/telemetry"
	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
	"go.trai.ch/tmplsync/internal/core/ports/mocks"
	"go.trai.ch/tmplsync/internal/engine/reconciler"
	"go.uber.org/mock/gomock"
)

const (
	testServer = "https://api.example.com"
	testRoot   = "/data/templates"
)

type entry struct {
	ID      int    `json:"id"`
	Version string `json:"version"`
	File    string `json:"file"`
}

type manifestDoc struct {
	ScriptVersion *string `json:"template_js_version,omitempty"`
	ScriptLink    string  `json:"template_js_link,omitempty"`
	Templates     []entry `json:"templates"`
}

func ptr(s string) *string { return &s }

func encode(t *testing.T, doc manifestDoc) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

// started is one Start call observed by the fake downloader.
type started struct {
	URL  string
	Dest string
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
	fs      billy.Filesystem
	store   *catalogfs.Store
	log     *mocks.MockLogger
	rec     *reconciler.Reconciler
	started []started
}

// newHarness wires a reconciler over an in-memory template directory. Its downloader
// completes every transfer synchronously by writing the URL into the destination file.
func newHarness(t *testing.T, opts ...reconciler.Option) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		fs:  memfs.New(),
		log: mocks.NewMockLogger(ctrl),
	}
	h.store = catalogfs.New(h.fs, testRoot)
	require.NoError(t, h.store.EnsureLayout())

	dl := mocks.NewMockAssetDownloader(ctrl)
	dl.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, url, dest string) ports.Transfer {
			h.started = append(h.started, started{URL: url, Dest: dest})
			require.NoError(t, util.WriteFile(h.fs, dest, []byte(url), domain.FilePerm))
			return doneTransfer{url: url, dest: dest}
		}).AnyTimes()

	tracer := telemetry.NewTracer(noop.NewTracerProvider())
	h.rec = reconciler.New(h.store, manifest.NewParser(), dl, h.log, tracer,
		domain.NewEndpoints(testServer, domain.PlatformLinux), opts...)
	return h
}

func (h *harness) seedManifest(t *testing.T, data []byte) {
	t.Helper()
	require.NoError(t, h.store.SaveManifest(data))
}

func (h *harness) seedFiles(t *testing.T, files ...string) {
	t.Helper()
	for _, f := range files {
		require.NoError(t, util.WriteFile(h.fs, f, []byte("cached"), domain.FilePerm))
	}
}

func (h *harness) manifest(t *testing.T) []byte {
	t.Helper()
	data, err := h.store.LoadManifest()
	require.NoError(t, err)
	return data
}

func (h *harness) reset() {
	h.started = nil
}
