package logger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/tmplsync/internal/adapters/config"
	"go.trai.ch/tmplsync/internal/adapters/detector"
	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			lg := New()
			if err := lg.Configure(settings.Log, detector.IsInteractive(os.Stderr)); err != nil {
				return nil, err
			}
			return lg, nil
		},
	})
}
