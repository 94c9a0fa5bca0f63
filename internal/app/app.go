// Package app implements the sync entry points the host application and the CLI call.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/tmplsync/internal/adapters/watcher"
	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
	"go.trai.ch/tmplsync/internal/engine/reconciler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App sequences fetch, reconcile and persist for the catalog and purchase passes.
type App struct {
	settings   *domain.Settings
	store      ports.CatalogStore
	parser     ports.ManifestParser
	fetcher    ports.Fetcher
	reconciler *reconciler.Reconciler
	downloader ports.AssetDownloader
	journal    ports.Journal
	runner     ports.Runner
	fsWatcher  ports.Watcher
	logger     ports.Logger
	tracer     ports.Tracer
	bundled    []byte

	now func() time.Time
}

// New creates a new App instance.
func New(
	settings *domain.Settings,
	store ports.CatalogStore,
	parser ports.ManifestParser,
	fetcher ports.Fetcher,
	rec *reconciler.Reconciler,
	downloader ports.AssetDownloader,
	journal ports.Journal,
	runner ports.Runner,
	fsWatcher ports.Watcher,
	log ports.Logger,
	tracer ports.Tracer,
	bundledScript []byte,
) *App {
	return &App{
		settings:   settings,
		store:      store,
		parser:     parser,
		fetcher:    fetcher,
		reconciler: rec,
		downloader: downloader,
		journal:    journal,
		runner:     runner,
		fsWatcher:  fsWatcher,
		logger:     log,
		tracer:     tracer,
		bundled:    bundledScript,
		now:        time.Now,
	}
}

// WithClock replaces the clock used to stamp journal records.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// ScheduleTemplateCatalog submits a catalog pass to the runner and returns immediately.
// An empty locale uses the configured one.
func (a *App) ScheduleTemplateCatalog(locale string) {
	a.runner.Submit(string(domain.PassCatalog), func(ctx context.Context) error {
		return a.SyncTemplateCatalog(ctx, locale)
	})
}

// SchedulePurchaseRecord submits a purchase record refresh to the runner and returns
// immediately.
func (a *App) SchedulePurchaseRecord() {
	a.runner.Submit(string(domain.PassPurchase), a.SyncPurchaseRecord)
}

// Wait blocks until scheduled passes and the transfers they dispatched have finished.
// It returns the joined errors of the scheduled passes.
func (a *App) Wait() error {
	err := a.runner.Wait()
	a.downloader.Wait()
	return err
}

// WaitTransfers blocks until every dispatched asset transfer has ended.
func (a *App) WaitTransfers() {
	a.downloader.Wait()
}

// SyncTemplateCatalog runs one catalog pass: it seeds the template directory, fetches the
// remote manifest and reconciles the local assets against it. Dispatched downloads keep
// running after it returns.
//
// Every failure is logged and journaled; the error is returned for callers that want it.
//
//nolint:cyclop // orchestration function
func (a *App) SyncTemplateCatalog(ctx context.Context, locale string) (err error) {
	if locale == "" {
		locale = a.settings.Locale
	}

	ctx, span := a.tracer.Start(ctx, "sync.catalog", ports.WithAttribute("locale", locale))
	rec := a.begin(domain.PassCatalog)
	defer func() {
		span.SetAttribute("outcome", string(rec.Outcome))
		span.RecordError(err)
		span.End()
		a.finish(&rec, err)
	}()

	endpoints := a.settings.Endpoints()
	if !endpoints.Configured() {
		rec.Outcome = domain.OutcomeSkipped
		return domain.ErrMissingServerURL
	}

	if err := a.prepare(); err != nil {
		rec.Outcome = domain.OutcomeSkipped
		return err
	}

	body, err := a.fetch(ctx, endpoints.CatalogURL(locale))
	if err != nil {
		rec.Outcome = domain.OutcomeFetchFailed
		return err
	}
	rec.ManifestDigest = domain.ManifestDigest(body)

	plan, transfers, err := a.reconciler.Reconcile(ctx, body)
	if plan == nil {
		rec.Outcome = domain.OutcomeParseFailed
		return err
	}
	rec.Downloads = len(transfers)
	rec.Deletions = len(plan.Deletions)
	if err != nil {
		rec.Outcome = domain.OutcomePersistFailed
		return err
	}

	if plan.Unchanged && plan.Empty() {
		rec.Outcome = domain.OutcomeUnchanged
		a.logger.Info("template catalog is up to date")
		return nil
	}

	rec.Outcome = domain.OutcomeOK
	a.logger.Info(fmt.Sprintf("template catalog synced: %s, %s",
		plural(len(transfers), "download"), plural(len(plan.Deletions), "deletion")))
	return nil
}

// SyncPurchaseRecord fetches the user's purchase record and caches it verbatim.
func (a *App) SyncPurchaseRecord(ctx context.Context) (err error) {
	ctx, span := a.tracer.Start(ctx, "sync.purchase")
	rec := a.begin(domain.PassPurchase)
	defer func() {
		span.SetAttribute("outcome", string(rec.Outcome))
		span.RecordError(err)
		span.End()
		a.finish(&rec, err)
	}()

	endpoints := a.settings.Endpoints()
	switch {
	case !endpoints.Configured():
		rec.Outcome = domain.OutcomeSkipped
		return domain.ErrMissingServerURL
	case a.settings.Token == "":
		rec.Outcome = domain.OutcomeSkipped
		return domain.ErrMissingToken
	}

	if err := a.store.EnsureLayout(); err != nil {
		rec.Outcome = domain.OutcomeSkipped
		return err
	}

	body, err := a.fetch(ctx, endpoints.PurchaseRecordURL(a.settings.Token))
	if err != nil {
		rec.Outcome = domain.OutcomeFetchFailed
		return err
	}
	rec.ManifestDigest = domain.ManifestDigest(body)

	if err := a.store.SavePurchaseRecord(body); err != nil {
		rec.Outcome = domain.OutcomePersistFailed
		return err
	}

	rec.Outcome = domain.OutcomeOK
	a.logger.Info("purchase record updated")
	return nil
}

// SyncAll runs the catalog and purchase passes concurrently. A purchase pass skipped for
// lack of a token is not an error.
func (a *App) SyncAll(ctx context.Context, locale string) error {
	var catalogErr, purchaseErr error

	var g errgroup.Group
	g.Go(func() error {
		catalogErr = a.SyncTemplateCatalog(ctx, locale)
		return nil
	})
	g.Go(func() error {
		purchaseErr = a.SyncPurchaseRecord(ctx)
		if errors.Is(purchaseErr, domain.ErrMissingToken) {
			purchaseErr = nil
		}
		return nil
	})
	_ = g.Wait()

	if catalogErr == nil && purchaseErr == nil {
		return nil
	}
	return errors.Join(domain.ErrSyncFailed, catalogErr, purchaseErr)
}

// InstallTemplate downloads one template from the stored catalog and blocks until it is
// on disk. It reaches templates that catalog passes never fetch on their own.
func (a *App) InstallTemplate(ctx context.Context, id int) error {
	endpoints := a.settings.Endpoints()
	if !endpoints.Configured() {
		return domain.ErrMissingServerURL
	}

	raw, err := a.store.LoadManifest()
	if err != nil {
		return err
	}
	catalog := domain.NewCatalog()
	if raw != nil {
		if catalog, err = a.parser.Parse(raw); err != nil {
			return zerr.With(errors.Join(domain.ErrLocalCatalogUnreadable, err), "path", a.store.Path(domain.ManifestFileName))
		}
	}

	entry, ok := catalog.Lookup(id)
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrTemplateNotFound, "install"), "template_id", id)
	}

	ctx, span := a.tracer.Start(ctx, "install", ports.WithAttribute("template_id", id))
	defer span.End()

	if err := a.downloader.Fetch(ctx, endpoints.TemplateURL(id), entry.File); err != nil {
		span.RecordError(err)
		return err
	}
	a.logger.Info(fmt.Sprintf("installed template %d at %s", id, a.store.Path(entry.File)))
	return nil
}

// History returns up to n journal records of kind, newest first. An empty kind returns
// every kind.
func (a *App) History(kind domain.PassKind, n int) ([]domain.PassRecord, error) {
	return a.journal.Recent(kind, n)
}

// WatchOptions configures Watch.
type WatchOptions struct {
	Locale   string
	Interval time.Duration
	Debounce time.Duration
}

// Watch runs a catalog pass at once, then every interval, and whenever assets disappear
// from the template directory. It returns when ctx is done, after in-flight passes and
// transfers have finished.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	if !a.settings.Endpoints().Configured() {
		return domain.ErrMissingServerURL
	}
	if opts.Interval <= 0 {
		opts.Interval = a.settings.Interval
	}
	if opts.Debounce <= 0 {
		opts.Debounce = watcher.DefaultDebounceWindow
	}

	if err := a.store.EnsureLayout(); err != nil {
		return err
	}

	debouncer := watcher.NewDebouncer(opts.Debounce, func(paths []string) {
		a.logger.Info(fmt.Sprintf("%s removed from template directory, resyncing", plural(len(paths), "asset")))
		a.ScheduleTemplateCatalog(opts.Locale)
	})

	// events is closed once no more paths can reach the debouncer.
	events := make(chan struct{})
	watching := true
	if err := a.fsWatcher.Start(ctx, a.store.Path(".")); err != nil {
		watching = false
		close(events)
		a.logger.Warn("asset watcher disabled: " + err.Error())
	} else {
		go func() {
			defer close(events)
			for ev := range a.fsWatcher.Events() {
				if ev.Operation == ports.OpRemove || ev.Operation == ports.OpRename {
					debouncer.Add(ev.Path)
				}
			}
		}()
	}

	a.ScheduleTemplateCatalog(opts.Locale)

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if watching {
				if err := a.fsWatcher.Stop(); err != nil {
					a.logger.Warn("failed to stop asset watcher: " + err.Error())
				}
			}
			<-events
			debouncer.Stop()
			_ = a.Wait()
			return nil
		case <-ticker.C:
			a.ScheduleTemplateCatalog(opts.Locale)
		}
	}
}

// prepare creates the template directory and seeds the bundled script bundle.
// A failed seed is logged and does not stop the pass.
func (a *App) prepare() error {
	if err := a.store.EnsureLayout(); err != nil {
		return err
	}
	seeded, err := a.store.SeedScript(a.bundled)
	if err != nil {
		a.logger.Error(err)
		return nil
	}
	if seeded {
		a.logger.Info("seeded bundled " + domain.ScriptFileName)
	}
	return nil
}

func (a *App) fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, span := a.tracer.Start(ctx, "fetch")
	defer span.End()

	body, err := a.fetcher.Fetch(ctx, url, a.settings.FetchTimeout)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("bytes", len(body))
	return body, nil
}

func (a *App) begin(kind domain.PassKind) domain.PassRecord {
	return domain.PassRecord{
		ID:        uuid.NewString(),
		Kind:      kind,
		StartedAt: a.now().UTC(),
	}
}

// finish logs a failed pass and appends rec to the journal. Journal failures are logged
// and never fail the pass.
func (a *App) finish(rec *domain.PassRecord, err error) {
	rec.FinishedAt = a.now().UTC()
	if err != nil {
		rec.Error = err.Error()
		a.logger.Error(err)
	}
	if jerr := a.journal.Record(*rec); jerr != nil {
		a.logger.Error(jerr)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
