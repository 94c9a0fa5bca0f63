// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tmplsync/internal/adapters/catalogfs"
	_ "go.trai.ch/tmplsync/internal/adapters/config"
	_ "go.trai.ch/tmplsync/internal/adapters/download"
	_ "go.trai.ch/tmplsync/internal/adapters/journal"
	_ "go.trai.ch/tmplsync/internal/adapters/logger"
	_ "go.trai.ch/tmplsync/internal/adapters/manifest"
	_ "go.trai.ch/tmplsync/internal/adapters/remote"
	_ "go.trai.ch/tmplsync/internal/adapters/telemetry"
	_ "go.trai.ch/tmplsync/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/tmplsync/internal/app"
	_ "go.trai.ch/tmplsync/internal/engine/reconciler"
	_ "go.trai.ch/tmplsync/internal/engine/runner"
)
