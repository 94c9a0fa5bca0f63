package app_test

import (
	"context"
	"errors"
	"iter"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tmplsync/internal/app"
	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
	"go.trai.ch/tmplsync/internal/core/ports/mocks"
	"go.trai.ch/tmplsync/internal/engine/runner"
	"go.uber.org/mock/gomock"
)

var errNetwork = errors.Join(domain.ErrFetchFailed, errors.New("connection refused"))

func TestSyncTemplateCatalog_Passes(t *testing.T) {
	h := newHarness(t).quiet()
	remote := encode(t, manifestDoc{Templates: []entry{{ID: 1, Version: "v1", File: "one.ziw"}}})
	h.serveCatalog(remote).Times(3)
	ctx := context.Background()

	// First pass: the template is new and only the manifest is stored.
	require.NoError(t, h.app.SyncTemplateCatalog(ctx, ""))
	assert.Equal(t, remote, h.read(t, domain.ManifestFileName))
	assert.Equal(t, []byte("bundled script"), h.read(t, domain.ScriptFileName))
	assert.False(t, h.store.Exists("one.ziw"))

	// Second pass: the template is now in both catalogs with no file on disk.
	require.NoError(t, h.app.SyncTemplateCatalog(ctx, ""))
	assert.Equal(t, []byte(endpoints.TemplateURL(1)), h.read(t, "one.ziw"))

	// Third pass: nothing left to do.
	require.NoError(t, h.app.SyncTemplateCatalog(ctx, ""))

	recs := h.history(t, domain.PassCatalog)
	require.Len(t, recs, 3)
	assert.Equal(t, domain.OutcomeUnchanged, recs[0].Outcome)
	assert.Equal(t, domain.OutcomeOK, recs[1].Outcome)
	assert.Equal(t, 1, recs[1].Downloads)
	assert.Equal(t, domain.OutcomeOK, recs[2].Outcome)
	assert.Equal(t, 0, recs[2].Downloads)
	for _, rec := range recs {
		assert.Equal(t, domain.ManifestDigest(remote), rec.ManifestDigest)
		assert.Equal(t, fixedNow, rec.StartedAt)
		assert.NotEmpty(t, rec.ID)
		assert.Empty(t, rec.Error)
	}
}

func TestSyncTemplateCatalog_Locale(t *testing.T) {
	h := newHarness(t).quiet()
	h.fetcher.EXPECT().
		Fetch(gomock.Any(), endpoints.CatalogURL("zh_CN"), domain.DefaultFetchTimeout).
		Return(encode(t, manifestDoc{}), nil)

	require.NoError(t, h.app.SyncTemplateCatalog(context.Background(), "zh_CN"))
}

func TestSyncTemplateCatalog_DeletesOrphans(t *testing.T) {
	h := newHarness(t).quiet()
	require.NoError(t, h.store.EnsureLayout())
	require.NoError(t, h.store.SaveManifest(encode(t, manifestDoc{Templates: []entry{
		{ID: 1, Version: "v1", File: "one.ziw"},
		{ID: 2, Version: "v1", File: "two.ziw"},
	}})))
	require.NoError(t, util.WriteFile(h.fs, "one.ziw", []byte("cached"), domain.FilePerm))
	require.NoError(t, util.WriteFile(h.fs, "two.ziw", []byte("cached"), domain.FilePerm))

	h.serveCatalog(encode(t, manifestDoc{Templates: []entry{{ID: 1, Version: "v1", File: "one.ziw"}}}))

	require.NoError(t, h.app.SyncTemplateCatalog(context.Background(), ""))
	assert.True(t, h.store.Exists("one.ziw"))
	assert.False(t, h.store.Exists("two.ziw"))

	recs := h.history(t, domain.PassCatalog)
	require.Len(t, recs, 1)
	assert.Equal(t, 1, recs[0].Deletions)
}

func TestSyncTemplateCatalog_FailuresLeaveStateUntouched(t *testing.T) {
	stored := []byte(`{"templates":[{"id":1,"version":"v1","file":"one.ziw"}]}`)

	tests := []struct {
		name    string
		body    []byte
		err     error
		want    error
		outcome domain.PassOutcome
	}{
		{
			name:    "fetch failure",
			err:     errNetwork,
			want:    domain.ErrFetchFailed,
			outcome: domain.OutcomeFetchFailed,
		},
		{
			name:    "malformed manifest",
			body:    []byte(`{"templates": 42}`),
			want:    domain.ErrManifestMalformed,
			outcome: domain.OutcomeParseFailed,
		},
		{
			name:    "truncated manifest",
			body:    []byte(`{"templates": [`),
			want:    domain.ErrManifestMalformed,
			outcome: domain.OutcomeParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.log.EXPECT().Error(gomock.Any()).Do(func(err error) {
				assert.ErrorIs(t, err, tt.want)
			})
			require.NoError(t, h.store.EnsureLayout())
			require.NoError(t, h.store.SaveManifest(stored))
			require.NoError(t, util.WriteFile(h.fs, "one.ziw", []byte("cached"), domain.FilePerm))
			require.NoError(t, util.WriteFile(h.fs, domain.ScriptFileName, []byte("installed"), domain.FilePerm))

			h.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.body, tt.err)

			err := h.app.SyncTemplateCatalog(context.Background(), "")
			require.ErrorIs(t, err, tt.want)

			assert.Equal(t, stored, h.read(t, domain.ManifestFileName))
			assert.Equal(t, []byte("cached"), h.read(t, "one.ziw"))
			assert.Equal(t, []byte("installed"), h.read(t, domain.ScriptFileName))

			recs := h.history(t, domain.PassCatalog)
			require.Len(t, recs, 1)
			assert.Equal(t, tt.outcome, recs[0].Outcome)
			assert.Equal(t, err.Error(), recs[0].Error)
			assert.Equal(t, fixedNow, recs[0].FinishedAt)
		})
	}
}

func TestSyncTemplateCatalog_MissingServerURL(t *testing.T) {
	h := newHarness(t)
	h.settings.ServerURL = ""
	h.log.EXPECT().Error(domain.ErrMissingServerURL)

	err := h.app.SyncTemplateCatalog(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrMissingServerURL)

	recs := h.history(t, domain.PassCatalog)
	require.Len(t, recs, 1)
	assert.Equal(t, domain.OutcomeSkipped, recs[0].Outcome)
}

func TestSyncTemplateCatalog_JournalFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	jrnl := mocks.NewMockJournal(ctrl)
	journalErr := errors.Join(domain.ErrJournalWriteFailed, errors.New("disk full"))
	jrnl.EXPECT().Record(gomock.Any()).Return(journalErr)

	h := newHarness(t, withJournal(jrnl))
	h.log.EXPECT().Info(gomock.Any()).AnyTimes()
	h.log.EXPECT().Error(journalErr)
	h.serveCatalog(encode(t, manifestDoc{}))

	require.NoError(t, h.app.SyncTemplateCatalog(context.Background(), ""))
}

func TestSyncPurchaseRecord(t *testing.T) {
	t.Run("stores the record verbatim", func(t *testing.T) {
		h := newHarness(t).quiet()
		record := []byte(`{"purchased":[1,2]}`)
		h.fetcher.EXPECT().
			Fetch(gomock.Any(), endpoints.PurchaseRecordURL(testToken), domain.DefaultFetchTimeout).
			Return(record, nil)

		require.NoError(t, h.app.SyncPurchaseRecord(context.Background()))
		assert.Equal(t, record, h.read(t, domain.PurchaseRecordFileName))

		recs := h.history(t, domain.PassPurchase)
		require.Len(t, recs, 1)
		assert.Equal(t, domain.OutcomeOK, recs[0].Outcome)
	})

	t.Run("missing token skips the fetch", func(t *testing.T) {
		h := newHarness(t).quiet()
		h.settings.Token = ""

		err := h.app.SyncPurchaseRecord(context.Background())
		require.ErrorIs(t, err, domain.ErrMissingToken)

		recs := h.history(t, domain.PassPurchase)
		require.Len(t, recs, 1)
		assert.Equal(t, domain.OutcomeSkipped, recs[0].Outcome)
	})

	t.Run("fetch failure keeps the cached record", func(t *testing.T) {
		h := newHarness(t).quiet()
		require.NoError(t, h.store.EnsureLayout())
		require.NoError(t, h.store.SavePurchaseRecord([]byte("old")))
		h.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errNetwork)

		err := h.app.SyncPurchaseRecord(context.Background())
		require.ErrorIs(t, err, domain.ErrFetchFailed)
		assert.Equal(t, []byte("old"), h.read(t, domain.PurchaseRecordFileName))

		recs := h.history(t, domain.PassPurchase)
		require.Len(t, recs, 1)
		assert.Equal(t, domain.OutcomeFetchFailed, recs[0].Outcome)
	})
}

func TestSyncAll(t *testing.T) {
	t.Run("missing token is not a failure", func(t *testing.T) {
		h := newHarness(t).quiet()
		h.settings.Token = ""
		h.serveCatalog(encode(t, manifestDoc{}))

		require.NoError(t, h.app.SyncAll(context.Background(), ""))
	})

	t.Run("joins pass failures", func(t *testing.T) {
		h := newHarness(t).quiet()
		h.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errNetwork).Times(2)

		err := h.app.SyncAll(context.Background(), "")
		require.ErrorIs(t, err, domain.ErrSyncFailed)
		require.ErrorIs(t, err, domain.ErrFetchFailed)

		recs, err := h.app.History("", 10)
		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})
}

func TestScheduleTemplateCatalog(t *testing.T) {
	h := newHarness(t).quiet()
	h.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errNetwork)
	h.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte("{}"), nil)

	h.app.ScheduleTemplateCatalog("")
	h.app.SchedulePurchaseRecord()

	err := h.app.Wait()
	require.ErrorIs(t, err, domain.ErrFetchFailed)
	require.NoError(t, h.app.Wait())
}

func TestScheduleTemplateCatalog_MissingServerURL(t *testing.T) {
	h := newHarness(t).quiet()
	h.settings.ServerURL = ""

	h.app.ScheduleTemplateCatalog("")

	require.ErrorIs(t, h.app.Wait(), domain.ErrMissingServerURL)
}

func TestInstallTemplate(t *testing.T) {
	stored := encode(t, manifestDoc{Templates: []entry{{ID: 7, Version: "v1", File: "seven.ziw"}}})

	t.Run("fetches the stored entry", func(t *testing.T) {
		h := newHarness(t).quiet()
		require.NoError(t, h.store.EnsureLayout())
		require.NoError(t, h.store.SaveManifest(stored))
		h.downloader.EXPECT().Fetch(gomock.Any(), endpoints.TemplateURL(7), "seven.ziw").Return(nil)

		require.NoError(t, h.app.InstallTemplate(context.Background(), 7))
	})

	t.Run("unknown id", func(t *testing.T) {
		h := newHarness(t).quiet()
		require.NoError(t, h.store.EnsureLayout())
		require.NoError(t, h.store.SaveManifest(stored))

		err := h.app.InstallTemplate(context.Background(), 8)
		require.ErrorIs(t, err, domain.ErrTemplateNotFound)
	})

	t.Run("no stored catalog", func(t *testing.T) {
		h := newHarness(t).quiet()

		err := h.app.InstallTemplate(context.Background(), 7)
		require.ErrorIs(t, err, domain.ErrTemplateNotFound)
	})

	t.Run("download failure", func(t *testing.T) {
		h := newHarness(t).quiet()
		require.NoError(t, h.store.EnsureLayout())
		require.NoError(t, h.store.SaveManifest(stored))
		h.downloader.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.Join(domain.ErrDownloadFailed, errors.New("unexpected status")))

		err := h.app.InstallTemplate(context.Background(), 7)
		require.ErrorIs(t, err, domain.ErrDownloadFailed)
	})
}

func TestWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := newHarness(t, withRunner(runner.NewBackground(ctx, 1))).quiet()

	var calls sync.WaitGroup
	calls.Add(2)
	var mu sync.Mutex
	n := 0
	h.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string, time.Duration) ([]byte, error) {
			mu.Lock()
			defer mu.Unlock()
			n++
			if n <= 2 {
				calls.Done()
			}
			return []byte(`{"templates":[]}`), nil
		}).MinTimes(2)

	removed := make(chan struct{})
	h.watcher.EXPECT().Start(gomock.Any(), h.store.Path(".")).Return(nil)
	h.watcher.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
		<-removed
		yield(ports.WatchEvent{Path: h.store.Path("one.ziw"), Operation: ports.OpRemove})
		yield(ports.WatchEvent{Path: h.store.Path("new.ziw"), Operation: ports.OpCreate})
	}))
	h.watcher.EXPECT().Stop().Return(nil)

	done := make(chan error, 1)
	go func() {
		done <- h.app.Watch(ctx, app.WatchOptions{Interval: time.Hour, Debounce: 10 * time.Millisecond})
	}()

	close(removed)
	calls.Wait()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not return after cancellation")
	}
}

func TestWatch_MissingServerURL(t *testing.T) {
	h := newHarness(t)
	h.settings.ServerURL = ""

	err := h.app.Watch(context.Background(), app.WatchOptions{})
	require.ErrorIs(t, err, domain.ErrMissingServerURL)
}

func TestWatch_NoResyncAfterReturn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := newHarness(t, withRunner(runner.NewBackground(ctx, 1))).quiet()

	initial := make(chan struct{})
	var fetches atomic.Int32
	h.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string, time.Duration) ([]byte, error) {
			if fetches.Add(1) == 1 {
				close(initial)
			}
			return []byte(`{"templates":[]}`), nil
		}).AnyTimes()

	h.watcher.EXPECT().Start(gomock.Any(), h.store.Path(".")).Return(nil)
	h.watcher.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
		<-ctx.Done()
		time.Sleep(20 * time.Millisecond)
		yield(ports.WatchEvent{Path: h.store.Path("late.ziw"), Operation: ports.OpRemove})
	}))
	h.watcher.EXPECT().Stop().Return(nil)

	done := make(chan error, 1)
	go func() {
		done <- h.app.Watch(ctx, app.WatchOptions{Interval: time.Hour, Debounce: 10 * time.Millisecond})
	}()

	<-initial
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not return after cancellation")
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), fetches.Load(), "an event delivered during shutdown must not start a pass")
}
