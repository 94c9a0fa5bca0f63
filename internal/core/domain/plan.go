package domain

// DownloadReason explains why an asset was scheduled.
type DownloadReason string

const (
	// ReasonVersionChanged marks a template whose local and remote versions differ.
	ReasonVersionChanged DownloadReason = "version_changed"
	// ReasonFileMissing marks a template whose versions match but whose asset is absent on disk.
	ReasonFileMissing DownloadReason = "file_missing"
	// ReasonNewTemplate marks a template only advertised remotely (strict refresh policy).
	ReasonNewTemplate DownloadReason = "new_template"
	// ReasonScriptOutdated marks the shared script bundle.
	ReasonScriptOutdated DownloadReason = "script_outdated"
)

// Download is a single scheduled asset transfer.
type Download struct {
	// TemplateID is zero for the script bundle.
	TemplateID int
	URL        string
	// File is the destination relative to the template directory.
	File   string
	Reason DownloadReason
}

// ReconcilePlan is the outcome of diffing a local and a remote catalog.
type ReconcilePlan struct {
	// Script is nil when the script bundle is current or no link is known.
	Script    *Download
	Downloads []Download
	Deletions []TemplateEntry
	// Remote is the parsed remote catalog.
	Remote *Catalog
	// Manifest holds the raw remote bytes persisted verbatim at the end of the pass.
	Manifest []byte
	// LocalDegraded is set when the local manifest was unreadable and treated as empty.
	LocalDegraded bool
	// Unchanged is set when the remote manifest is byte-identical to the stored one.
	Unchanged bool
}

// Empty reports whether the plan schedules nothing.
func (p *ReconcilePlan) Empty() bool {
	return p.Script == nil && len(p.Downloads) == 0 && len(p.Deletions) == 0
}

// Transfers returns every scheduled download, script first.
func (p *ReconcilePlan) Transfers() []Download {
	out := make([]Download, 0, len(p.Downloads)+1)
	if p.Script != nil {
		out = append(out, *p.Script)
	}
	return append(out, p.Downloads...)
}
