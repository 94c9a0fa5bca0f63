// Package reconciler decides which template assets are stale, missing or orphaned and
// drives their re-download or deletion.
package reconciler

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// Reconciler diffs the stored manifest against a freshly fetched one.
type Reconciler struct {
	store      ports.CatalogStore
	parser     ports.ManifestParser
	downloader ports.AssetDownloader
	logger     ports.Logger
	tracer     ports.Tracer
	endpoints  domain.Endpoints

	downloadNew bool
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithDownloadNewTemplates also schedules templates that are only advertised remotely.
// By default only templates already present in the stored manifest are refreshed.
func WithDownloadNewTemplates(enabled bool) Option {
	return func(r *Reconciler) { r.downloadNew = enabled }
}

// New creates a Reconciler.
func New(
	store ports.CatalogStore,
	parser ports.ManifestParser,
	downloader ports.AssetDownloader,
	logger ports.Logger,
	tracer ports.Tracer,
	endpoints domain.Endpoints,
	opts ...Option,
) *Reconciler {
	r := &Reconciler{
		store:      store,
		parser:     parser,
		downloader: downloader,
		logger:     logger,
		tracer:     tracer,
		endpoints:  endpoints,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile plans against remote and applies the plan.
// A malformed remote manifest aborts before anything changes.
func (r *Reconciler) Reconcile(ctx context.Context, remote []byte) (*domain.ReconcilePlan, []ports.Transfer, error) {
	plan, err := r.Plan(ctx, remote)
	if err != nil {
		return nil, nil, err
	}
	transfers, err := r.Apply(ctx, plan)
	return plan, transfers, err
}

// Plan computes the downloads and deletions needed to converge on remote.
// It has no side effects beyond reading the stored manifest and checking assets on disk.
func (r *Reconciler) Plan(ctx context.Context, remote []byte) (*domain.ReconcilePlan, error) {
	_, span := r.tracer.Start(ctx, "reconcile.plan")
	defer span.End()

	remoteCat, err := r.parser.Parse(remote)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if remoteCat.Skipped > 0 {
		r.logger.Warn(fmt.Sprintf("remote manifest: skipped %d invalid template entries", remoteCat.Skipped))
	}

	localRaw, localCat, degraded := r.loadLocal()

	plan := &domain.ReconcilePlan{
		Remote:        remoteCat,
		Manifest:      remote,
		LocalDegraded: degraded,
		Unchanged:     localRaw != nil && bytes.Equal(localRaw, remote),
	}

	plan.Script = planScript(localCat.Script, remoteCat.Script)
	plan.Downloads = r.planDownloads(localCat, remoteCat)
	plan.Deletions = planDeletions(localCat, remoteCat)

	span.SetAttribute("downloads", len(plan.Downloads))
	span.SetAttribute("deletions", len(plan.Deletions))
	span.SetAttribute("script", plan.Script != nil)
	span.SetAttribute("local_degraded", degraded)

	return plan, nil
}

// loadLocal reads and parses the stored manifest. Any failure is logged and degrades to
// an empty catalog.
func (r *Reconciler) loadLocal() (raw []byte, cat *domain.Catalog, degraded bool) {
	raw, err := r.store.LoadManifest()
	if err != nil {
		r.logger.Error(err)
		return nil, domain.NewCatalog(), true
	}
	if raw == nil {
		return nil, domain.NewCatalog(), false
	}

	cat, err = r.parser.Parse(raw)
	if err != nil {
		r.logger.Error(zerr.With(errors.Join(domain.ErrLocalCatalogUnreadable, err), "path", r.store.Path(domain.ManifestFileName)))
		return raw, domain.NewCatalog(), true
	}
	return raw, cat, false
}

// planScript refreshes the script bundle unless both catalogs carry the same version.
func planScript(local, remote domain.ScriptInfo) *domain.Download {
	needUpdate := true
	if local.HasVersion && remote.HasVersion {
		needUpdate = local.Version != remote.Version
	}
	if !needUpdate || remote.URL == "" {
		return nil
	}
	return &domain.Download{
		URL:    remote.URL,
		File:   domain.ScriptFileName,
		Reason: domain.ReasonScriptOutdated,
	}
}

func (r *Reconciler) planDownloads(local, remote *domain.Catalog) []domain.Download {
	var downloads []domain.Download

	for _, id := range remote.IDs() {
		entry := remote.Entries[id]

		var reason domain.DownloadReason
		if prev, known := local.Entries[id]; known {
			switch {
			case prev.Version != entry.Version:
				reason = domain.ReasonVersionChanged
			case !r.store.Exists(entry.File):
				reason = domain.ReasonFileMissing
			default:
				continue
			}
		} else {
			if !r.downloadNew {
				continue
			}
			reason = domain.ReasonNewTemplate
		}

		downloads = append(downloads, domain.Download{
			TemplateID: id,
			URL:        r.endpoints.TemplateURL(id),
			File:       entry.File,
			Reason:     reason,
		})
	}

	return downloads
}

// planDeletions returns local entries whose id is absent from remote. An orphan whose
// file is still referenced by a remote entry keeps its file.
func planDeletions(local, remote *domain.Catalog) []domain.TemplateEntry {
	inUse := make(map[string]struct{}, remote.Len())
	for _, e := range remote.Entries {
		inUse[e.File] = struct{}{}
	}

	var deletions []domain.TemplateEntry
	for _, id := range local.IDs() {
		if _, ok := remote.Entries[id]; ok {
			continue
		}
		entry := local.Entries[id]
		if _, shared := inUse[entry.File]; shared {
			continue
		}
		deletions = append(deletions, entry)
	}
	return deletions
}

// Apply dispatches the planned downloads, deletes orphaned assets and persists the
// remote manifest. It does not wait for downloads. Deletion failures are logged and do
// not stop the pass; only a failed manifest write is returned.
func (r *Reconciler) Apply(ctx context.Context, plan *domain.ReconcilePlan) ([]ports.Transfer, error) {
	ctx, span := r.tracer.Start(ctx, "reconcile.apply")
	defer span.End()

	planned := plan.Transfers()
	transfers := make([]ports.Transfer, 0, len(planned))
	for _, d := range planned {
		transfers = append(transfers, r.downloader.Start(ctx, d.URL, d.File))
	}

	for _, entry := range plan.Deletions {
		if err := r.store.Remove(entry.File); err != nil {
			r.logger.Error(zerr.With(err, "template_id", entry.ID))
		}
	}

	if plan.Unchanged && plan.Empty() {
		return transfers, nil
	}

	if err := r.store.SaveManifest(plan.Manifest); err != nil {
		span.RecordError(err)
		return transfers, err
	}
	return transfers, nil
}
