package catalogfs_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tmplsync/internal/adapters/catalogfs"
	"go.trai.ch/tmplsync/internal/core/domain"
)

func newMemStore(t *testing.T) (*catalogfs.Store, func(name string) string) {
	t.Helper()
	fs := memfs.New()
	store := catalogfs.New(fs, "/data/templates")
	require.NoError(t, store.EnsureLayout())

	read := func(name string) string {
		data, err := util.ReadFile(fs, name)
		require.NoError(t, err)
		return string(data)
	}
	return store, read
}

func TestStore_LoadManifest_Missing(t *testing.T) {
	store, _ := newMemStore(t)

	data, err := store.LoadManifest()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStore_ManifestRoundTrip(t *testing.T) {
	store, read := newMemStore(t)

	require.NoError(t, store.SaveManifest([]byte(`{"templates":[]}`)))
	require.NoError(t, store.SaveManifest([]byte(`{"templates":[{"id":1}]}`)))

	data, err := store.LoadManifest()
	require.NoError(t, err)
	assert.JSONEq(t, `{"templates":[{"id":1}]}`, string(data))
	assert.Equal(t, string(data), read(domain.ManifestFileName))
}

func TestStore_SeedScript(t *testing.T) {
	store, read := newMemStore(t)

	seeded, err := store.SeedScript([]byte("bundled"))
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.Equal(t, "bundled", read(domain.ScriptFileName))

	seeded, err = store.SeedScript([]byte("other"))
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Equal(t, "bundled", read(domain.ScriptFileName))
}

func TestStore_ExistsAndRemove(t *testing.T) {
	store, _ := newMemStore(t)

	assert.False(t, store.Exists("business/a.ziw"))
	require.NoError(t, store.Remove("business/a.ziw"), "missing file counts as removed")

	require.NoError(t, store.SavePurchaseRecord([]byte("record")))
	assert.True(t, store.Exists(domain.PurchaseRecordFileName))

	require.NoError(t, store.Remove(domain.PurchaseRecordFileName))
	assert.False(t, store.Exists(domain.PurchaseRecordFileName))
}

func TestStore_ExistsIgnoresDirectories(t *testing.T) {
	store, _ := newMemStore(t)

	_, err := catalogfs.Replace(store.Filesystem(), "dir/a.ziw", strings.NewReader("x"), domain.FilePerm)
	require.NoError(t, err)
	assert.False(t, store.Exists("dir"))
}

func TestStore_Path(t *testing.T) {
	store := catalogfs.New(memfs.New(), "/data/templates")
	assert.Equal(t, filepath.Join("/data/templates", "business", "a.ziw"), store.Path("business/a.ziw"))
}

func TestStore_OnDisk(t *testing.T) {
	root := filepath.Join(t.TempDir(), "templates")
	store := catalogfs.New(catalogfs.NewFilesystem(root), root)

	require.NoError(t, store.EnsureLayout())
	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, store.SavePurchaseRecord([]byte(`{"records":[]}`)))
	data, err := os.ReadFile(filepath.Join(root, domain.PurchaseRecordFileName))
	require.NoError(t, err)
	assert.JSONEq(t, `{"records":[]}`, string(data))

	info, err = os.Stat(filepath.Join(root, domain.PurchaseRecordFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.PrivateFilePerm), info.Mode().Perm())

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_LoadManifest_Unreadable(t *testing.T) {
	root := filepath.Join(t.TempDir(), "templates")
	store := catalogfs.New(catalogfs.NewFilesystem(root), root)
	require.NoError(t, os.MkdirAll(filepath.Join(root, domain.ManifestFileName), domain.DirPerm))

	data, err := store.LoadManifest()
	require.Error(t, err)
	assert.Nil(t, data)
	assert.True(t, errors.Is(err, domain.ErrLocalCatalogUnreadable))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestReplace_FailureKeepsExistingFile(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "a.ziw", []byte("old"), domain.FilePerm))

	_, err := catalogfs.Replace(fs, "a.ziw", failingReader{}, domain.FilePerm)
	require.Error(t, err)

	data, err := util.ReadFile(fs, "a.ziw")
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	files, err := fs.ReadDir("/")
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
