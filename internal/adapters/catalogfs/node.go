package catalogfs

import (
	"context"

	"github.com/go-git/go-billy/v5"
	"github.com/grindlemire/graft"
	"go.trai.ch/tmplsync/internal/adapters/config"
	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
)

const (
	// FilesystemNodeID is the unique identifier for the template directory filesystem Graft node.
	FilesystemNodeID graft.ID = "adapter.catalog_fs"
	// StoreNodeID is the unique identifier for the catalog store Graft node.
	StoreNodeID graft.ID = "adapter.catalog_store"
)

func init() {
	graft.Register(graft.Node[billy.Filesystem]{
		ID:        FilesystemNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (billy.Filesystem, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewFilesystem(settings.TemplatesDir()), nil
		},
	})

	graft.Register(graft.Node[ports.CatalogStore]{
		ID:        StoreNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, FilesystemNodeID},
		Run: func(ctx context.Context) (ports.CatalogStore, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			fs, err := graft.Dep[billy.Filesystem](ctx)
			if err != nil {
				return nil, err
			}
			return New(fs, settings.TemplatesDir()), nil
		},
	})
}
