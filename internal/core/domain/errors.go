package domain

import "go.trai.ch/zerr"

var (
	// ErrFetchFailed is returned when a remote manifest cannot be fetched.
	// Transport errors, timeouts, non-success statuses and empty bodies all collapse into it.
	ErrFetchFailed = zerr.New("failed to fetch remote manifest")

	// ErrManifestMalformed is returned when a manifest payload is not a well-formed JSON object.
	ErrManifestMalformed = zerr.New("malformed catalog manifest")

	// ErrDownloadFailed is returned when a single asset transfer fails.
	ErrDownloadFailed = zerr.New("failed to download asset")

	// ErrLocalCatalogUnreadable is returned when the local manifest exists but cannot be read or parsed.
	ErrLocalCatalogUnreadable = zerr.New("local catalog is unreadable")

	// ErrCatalogPersistFailed is returned when the new local manifest cannot be written.
	ErrCatalogPersistFailed = zerr.New("failed to persist local catalog")

	// ErrPurchaseRecordPersistFailed is returned when the purchase record cannot be written.
	ErrPurchaseRecordPersistFailed = zerr.New("failed to persist purchase record")

	// ErrStoreCreateFailed is returned when the template directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create template directory")

	// ErrScriptSeedFailed is returned when the bundled script cannot be copied into place.
	ErrScriptSeedFailed = zerr.New("failed to seed bundled script")

	// ErrAssetDeleteFailed is returned when an orphaned asset cannot be removed.
	ErrAssetDeleteFailed = zerr.New("failed to delete orphaned asset")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed or validated.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMissingServerURL is returned when a pass needs the server URL and none is configured.
	ErrMissingServerURL = zerr.New("server url is not configured")

	// ErrMissingToken is returned when the purchase record is requested without a user token.
	ErrMissingToken = zerr.New("user token is not configured")

	// ErrTemplateNotFound is returned when a template id is not in the local catalog.
	ErrTemplateNotFound = zerr.New("template not found in catalog")

	// ErrJournalOpenFailed is returned when the pass journal cannot be opened.
	ErrJournalOpenFailed = zerr.New("failed to open sync journal")

	// ErrJournalWriteFailed is returned when a pass record cannot be stored.
	ErrJournalWriteFailed = zerr.New("failed to write sync journal")

	// ErrJournalReadFailed is returned when pass records cannot be read back.
	ErrJournalReadFailed = zerr.New("failed to read sync journal")

	// ErrSyncFailed is returned by the blocking entry points when a pass was aborted.
	ErrSyncFailed = zerr.New("template sync failed")
)
