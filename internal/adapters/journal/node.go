package journal

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tmplsync/internal/adapters/config"
	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
)

// NodeID is the unique identifier for the sync journal Graft node.
const NodeID graft.ID = "adapter.journal"

func init() {
	graft.Register(graft.Node[ports.Journal]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.Journal, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(domain.JournalPath(settings.DataDir), DefaultRetention)
		},
	})
}
