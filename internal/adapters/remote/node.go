package remote

import (
	"context"
	"net/http"

	"github.com/grindlemire/graft"
	"go.trai.ch/tmplsync/internal/adapters/config"
	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
)

// NodeID is the unique identifier for the remote fetcher Graft node.
const NodeID graft.ID = "adapter.remote_fetcher"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewFetcher(&http.Client{}, settings.MaxBodyBytes), nil
		},
	})
}
