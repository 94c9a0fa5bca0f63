// Package journal implements the Journal port on a bbolt database.
package journal

import (
	"cmp"
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
	"go.trai.ch/zerr"
	bolt "go.etcd.io/bbolt"
)

var _ ports.Journal = (*Journal)(nil)

// DefaultRetention is the number of records kept per pass kind.
const DefaultRetention = 500

const lockTimeout = time.Second

var kinds = []domain.PassKind{domain.PassCatalog, domain.PassPurchase}

// Journal implements ports.Journal.
// The database is opened for each call so that a watching process and a one-shot
// status command can share it.
type Journal struct {
	path      string
	retention int

	mu sync.Mutex
}

// New creates a Journal at path. A non-positive retention uses DefaultRetention.
func New(path string, retention int) (*Journal, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrJournalOpenFailed, err), "path", path)
	}
	return &Journal{path: path, retention: retention}, nil
}

func (j *Journal) open(readOnly bool) (*bolt.DB, error) {
	if readOnly {
		if _, err := os.Stat(j.path); errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
	}
	db, err := bolt.Open(j.path, domain.PrivateFilePerm, &bolt.Options{Timeout: lockTimeout, ReadOnly: readOnly})
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrJournalOpenFailed, err), "path", j.path)
	}
	return db, nil
}

// Record appends rec to the bucket of its kind, assigning an ID when rec has none, and
// prunes the bucket to the retention limit.
func (j *Journal) Record(rec domain.PassRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrJournalWriteFailed, err), "id", rec.ID)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	db, err := j.open(false)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(rec.Kind))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		if err := b.Put(itob(seq), data); err != nil {
			return err
		}
		return prune(b, seq, j.retention)
	})
	if err != nil {
		return zerr.With(zerr.With(errors.Join(domain.ErrJournalWriteFailed, err), "kind", string(rec.Kind)), "path", j.path)
	}
	return nil
}

// Recent returns up to n records of kind, newest first. An empty kind merges every kind.
// A journal that was never written returns no records.
func (j *Journal) Recent(kind domain.PassKind, n int) ([]domain.PassRecord, error) {
	if n <= 0 {
		return nil, nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	db, err := j.open(true)
	if err != nil || db == nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	selected := kinds
	if kind != "" {
		selected = []domain.PassKind{kind}
	}

	var records []domain.PassRecord
	err = db.View(func(tx *bolt.Tx) error {
		for _, k := range selected {
			b := tx.Bucket([]byte(k))
			if b == nil {
				continue
			}
			c := b.Cursor()
			taken := 0
			for key, v := c.Last(); key != nil && taken < n; key, v = c.Prev() {
				var rec domain.PassRecord
				if err := json.Unmarshal(v, &rec); err != nil {
					return zerr.With(zerr.Wrap(err, "failed to decode pass record"), "key", binary.BigEndian.Uint64(key))
				}
				records = append(records, rec)
				taken++
			}
		}
		return nil
	})
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrJournalReadFailed, err), "path", j.path)
	}

	slices.SortStableFunc(records, func(a, b domain.PassRecord) int {
		return cmp.Compare(b.StartedAt.UnixNano(), a.StartedAt.UnixNano())
	})
	if len(records) > n {
		records = records[:n]
	}
	return records, nil
}

// Close is a no-op; the database is only held open during a call.
func (j *Journal) Close() error {
	return nil
}

// prune drops records whose sequence falls more than keep behind seq.
func prune(b *bolt.Bucket, seq uint64, keep int) error {
	if seq <= uint64(keep) {
		return nil
	}
	cutoff := seq - uint64(keep)

	var stale [][]byte
	c := b.Cursor()
	for k, _ := c.First(); k != nil && binary.BigEndian.Uint64(k) <= cutoff; k, _ = c.Next() {
		stale = append(stale, slices.Clone(k))
	}
	for _, k := range stale {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
