// Package catalogfs implements the CatalogStore port on a billy filesystem rooted at the
// template directory.
package catalogfs

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CatalogStore = (*Store)(nil)

// Store implements ports.CatalogStore.
type Store struct {
	fs   billy.Filesystem
	root string
}

// NewFilesystem returns a billy filesystem bound to dir on the host.
func NewFilesystem(dir string) billy.Filesystem {
	return osfs.New(filepath.Clean(dir), osfs.WithBoundOS())
}

// New creates a Store over fs. root is the absolute location fs is bound to and is only
// used to report asset paths.
func New(filesystem billy.Filesystem, root string) *Store {
	return &Store{fs: filesystem, root: root}
}

// EnsureLayout creates the template directory.
func (s *Store) EnsureLayout() error {
	if err := s.fs.MkdirAll(".", domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreCreateFailed, err), "path", s.root)
	}
	return nil
}

// SeedScript writes bundled as the script bundle unless one exists.
func (s *Store) SeedScript(bundled []byte) (bool, error) {
	if s.Exists(domain.ScriptFileName) {
		return false, nil
	}
	if _, err := Replace(s.fs, domain.ScriptFileName, bytes.NewReader(bundled), domain.FilePerm); err != nil {
		return false, zerr.With(errors.Join(domain.ErrScriptSeedFailed, err), "path", s.Path(domain.ScriptFileName))
	}
	return true, nil
}

// LoadManifest returns the raw local manifest, or nil when none was persisted.
func (s *Store) LoadManifest() ([]byte, error) {
	data, err := util.ReadFile(s.fs, domain.ManifestFileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(errors.Join(domain.ErrLocalCatalogUnreadable, err), "path", s.Path(domain.ManifestFileName))
	}
	return data, nil
}

// SaveManifest replaces the local manifest.
func (s *Store) SaveManifest(data []byte) error {
	if _, err := Replace(s.fs, domain.ManifestFileName, bytes.NewReader(data), domain.FilePerm); err != nil {
		return zerr.With(errors.Join(domain.ErrCatalogPersistFailed, err), "path", s.Path(domain.ManifestFileName))
	}
	return nil
}

// SavePurchaseRecord replaces the cached purchase record.
func (s *Store) SavePurchaseRecord(data []byte) error {
	if _, err := Replace(s.fs, domain.PurchaseRecordFileName, bytes.NewReader(data), domain.PrivateFilePerm); err != nil {
		return zerr.With(errors.Join(domain.ErrPurchaseRecordPersistFailed, err), "path", s.Path(domain.PurchaseRecordFileName))
	}
	return nil
}

// Exists reports whether file is present as a regular file.
func (s *Store) Exists(file string) bool {
	info, err := s.fs.Stat(file)
	return err == nil && !info.IsDir()
}

// Remove deletes file. A missing file is not an error.
func (s *Store) Remove(file string) error {
	if err := s.fs.Remove(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(errors.Join(domain.ErrAssetDeleteFailed, err), "path", s.Path(file))
	}
	return nil
}

// Path returns the absolute location of file.
func (s *Store) Path(file string) string {
	return filepath.Join(s.root, filepath.FromSlash(file))
}

// Replace streams r into name through a temp file in the same directory and renames it
// into place, so readers never observe a partially written file.
// It returns the number of bytes written.
func Replace(filesystem billy.Filesystem, name string, r io.Reader, perm os.FileMode) (int64, error) {
	dir := path.Dir(name)
	if err := filesystem.MkdirAll(dir, domain.DirPerm); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to create parent directory"), "dir", dir)
	}

	tmpName := path.Join(dir, "."+path.Base(name)+"."+uuid.NewString()+".tmp")
	f, err := filesystem.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to create temp file"), "file", tmpName)
	}

	committed := false
	defer func() {
		if !committed {
			_ = filesystem.Remove(tmpName)
		}
	}()

	n, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		return n, zerr.With(zerr.Wrap(err, "failed to write temp file"), "file", tmpName)
	}
	if err := f.Close(); err != nil {
		return n, zerr.With(zerr.Wrap(err, "failed to close temp file"), "file", tmpName)
	}

	if err := filesystem.Rename(tmpName, name); err != nil {
		return n, zerr.With(zerr.Wrap(err, "failed to rename temp file"), "file", name)
	}
	committed = true

	return n, nil
}
