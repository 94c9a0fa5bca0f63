package domain

import "time"

// PassKind identifies which entry point produced a pass.
type PassKind string

const (
	// PassCatalog is a template catalog reconciliation pass.
	PassCatalog PassKind = "catalog"
	// PassPurchase is a purchase record refresh.
	PassPurchase PassKind = "purchase"
)

// PassOutcome is the terminal state of a pass.
type PassOutcome string

const (
	// OutcomeOK means the pass persisted new state.
	OutcomeOK PassOutcome = "ok"
	// OutcomeUnchanged means the remote manifest matched the stored one and nothing was scheduled.
	OutcomeUnchanged PassOutcome = "unchanged"
	// OutcomeFetchFailed means the remote fetch failed and nothing changed.
	OutcomeFetchFailed PassOutcome = "fetch_failed"
	// OutcomeParseFailed means the remote manifest was malformed and nothing changed.
	OutcomeParseFailed PassOutcome = "parse_failed"
	// OutcomePersistFailed means the decision phase completed but the new state could not be written.
	OutcomePersistFailed PassOutcome = "persist_failed"
	// OutcomeSkipped means the pass could not start, e.g. missing configuration.
	OutcomeSkipped PassOutcome = "skipped"
)

// PassRecord is one row of the sync journal.
type PassRecord struct {
	ID             string      `json:"id"`
	Kind           PassKind    `json:"kind"`
	StartedAt      time.Time   `json:"started_at"`
	FinishedAt     time.Time   `json:"finished_at,omitzero"`
	Outcome        PassOutcome `json:"outcome"`
	Downloads      int         `json:"downloads,omitzero"`
	Deletions      int         `json:"deletions,omitzero"`
	ManifestDigest string      `json:"manifest_digest,omitzero"`
	Error          string      `json:"error,omitzero"`
}

// Duration returns how long the pass ran.
func (r PassRecord) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
