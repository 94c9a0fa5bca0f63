package catalogfs

import "github.com/go-git/go-billy/v5"

// Filesystem exposes the underlying filesystem for tests.
func (s *Store) Filesystem() billy.Filesystem {
	return s.fs
}
