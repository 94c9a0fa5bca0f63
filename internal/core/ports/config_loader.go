package ports

import "go.trai.ch/tmplsync/internal/core/domain"

// ConfigLoader defines the interface for loading runtime settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads settings from path. An empty path triggers discovery;
	// when no file is found the defaults are returned.
	Load(path string) (*domain.Settings, error)
}
