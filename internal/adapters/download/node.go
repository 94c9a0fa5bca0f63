package download

import (
	"context"
	"net/http"

	"github.com/go-git/go-billy/v5"
	"github.com/grindlemire/graft"
	"go.trai.ch/tmplsync/internal/adapters/catalogfs"
	"go.trai.ch/tmplsync/internal/adapters/config"
	"go.trai.ch/tmplsync/internal/adapters/logger"
	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
)

// NodeID is the unique identifier for the asset downloader Graft node.
const NodeID graft.ID = "adapter.downloader"

func init() {
	graft.Register(graft.Node[ports.AssetDownloader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, catalogfs.FilesystemNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.AssetDownloader, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			fs, err := graft.Dep[billy.Filesystem](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(&http.Client{}, fs, log,
				WithTimeout(settings.DownloadTimeout),
				WithMaxBodyBytes(settings.MaxBodyBytes),
			), nil
		},
	})
}
