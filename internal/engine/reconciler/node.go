package reconciler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tmplsync/internal/adapters/catalogfs"
	"go.trai.ch/tmplsync/internal/adapters/config"
	"go.trai.ch/tmplsync/internal/adapters/download"
	"go.trai.ch/tmplsync/internal/adapters/logger"
	"go.trai.ch/tmplsync/internal/adapters/manifest"
	"go.trai.ch/tmplsync/internal/adapters/telemetry"
	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
)

// NodeID is the unique identifier for the reconciler Graft node.
const NodeID graft.ID = "engine.reconciler"

func init() {
	graft.Register(graft.Node[*Reconciler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			catalogfs.StoreNodeID,
			manifest.NodeID,
			download.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Reconciler, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.CatalogStore](ctx)
			if err != nil {
				return nil, err
			}
			parser, err := graft.Dep[ports.ManifestParser](ctx)
			if err != nil {
				return nil, err
			}
			downloader, err := graft.Dep[ports.AssetDownloader](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(store, parser, downloader, log, tracer, settings.Endpoints(),
				WithDownloadNewTemplates(settings.DownloadNewTemplates),
			), nil
		},
	})
}
