package assets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tmplsync/internal/assets"
	"go.trai.ch/tmplsync/internal/core/domain"
)

func TestScript_Embedded(t *testing.T) {
	data, err := assets.Script("")
	require.NoError(t, err)
	assert.Contains(t, string(data), "NoteTemplate")
}

func TestScript_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.js")
	require.NoError(t, os.WriteFile(path, []byte("custom()"), 0o600))

	data, err := assets.Script(path)
	require.NoError(t, err)
	assert.Equal(t, "custom()", string(data))
}

func TestScript_MissingOverride(t *testing.T) {
	_, err := assets.Script(filepath.Join(t.TempDir(), "missing.js"))
	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
}
