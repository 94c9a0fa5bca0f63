package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tmplsync/internal/adapters/config"
	"go.trai.ch/tmplsync/internal/app"
	"go.trai.ch/tmplsync/internal/core/domain"
	_ "go.trai.ch/tmplsync/internal/wiring"
)

// TestGraftDependencies checks that every node declaring a dependency uses it, and every
// used dependency is declared.
func TestGraftDependencies(t *testing.T) {
	graft.AssertDepsValid(t, "../../internal")
}

func TestGraph_ResolvesComponents(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvDataDir, dataDir)
	t.Setenv(config.EnvServerURL, "https://api.example.com")
	t.Setenv(config.EnvToken, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	c, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, c.App)
	require.NotNil(t, c.Logger)
	require.Equal(t, dataDir, c.Settings.DataDir)
	require.Equal(t, domain.TemplatesDir(dataDir), c.Settings.TemplatesDir())
}
