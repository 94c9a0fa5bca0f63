package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tmplsync/internal/adapters/catalogfs" //nolint:depguard // Wired in app layer
	"go.trai.ch/tmplsync/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tmplsync/internal/adapters/download"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tmplsync/internal/adapters/journal"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tmplsync/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tmplsync/internal/adapters/manifest"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tmplsync/internal/adapters/remote"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tmplsync/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/tmplsync/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tmplsync/internal/assets"
	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
	"go.trai.ch/tmplsync/internal/engine/reconciler"
	"go.trai.ch/tmplsync/internal/engine/runner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			catalogfs.StoreNodeID,
			manifest.NodeID,
			remote.NodeID,
			reconciler.NodeID,
			download.NodeID,
			journal.NodeID,
			runner.NodeID,
			watcher.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.SettingsNodeID,
		},
		Run: runComponentsNode,
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
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
	fetcher, err := graft.Dep[ports.Fetcher](ctx)
	if err != nil {
		return nil, err
	}
	rec, err := graft.Dep[*reconciler.Reconciler](ctx)
	if err != nil {
		return nil, err
	}
	downloader, err := graft.Dep[ports.AssetDownloader](ctx)
	if err != nil {
		return nil, err
	}
	jrnl, err := graft.Dep[ports.Journal](ctx)
	if err != nil {
		return nil, err
	}
	run, err := graft.Dep[ports.Runner](ctx)
	if err != nil {
		return nil, err
	}
	fsWatcher, err := graft.Dep[ports.Watcher](ctx)
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

	script, err := assets.Script(settings.BundledScript)
	if err != nil {
		return nil, err
	}

	return New(settings, store, parser, fetcher, rec, downloader, jrnl, run, fsWatcher, log, tracer, script), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	settings, err := graft.Dep[*domain.Settings](ctx)
	if err != nil {
		return nil, err
	}
	return NewComponents(a, log, settings), nil
}
