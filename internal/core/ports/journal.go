package ports

import "go.trai.ch/tmplsync/internal/core/domain"

// Journal persists the history of sync passes.
//
//go:generate mockgen -source=journal.go -destination=mocks/mock_journal.go -package=mocks
type Journal interface {
	// Record appends rec.
	Record(rec domain.PassRecord) error

	// Recent returns up to n records of kind, newest first.
	// An empty kind returns records of every kind.
	Recent(kind domain.PassKind, n int) ([]domain.PassRecord, error)

	// Close releases the underlying database.
	Close() error
}
