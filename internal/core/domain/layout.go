package domain

import (
	"os"
	"path/filepath"
)

const (
	// AppName is used for config and data directory names.
	AppName = "tmplsync"

	// TemplatesDirName is the name of the template asset directory inside the data directory.
	TemplatesDirName = "templates"

	// ScriptFileName is the well-known name of the shared script bundle.
	ScriptFileName = "template.js"

	// ManifestFileName is the name of the local manifest file.
	ManifestFileName = "templates.json"

	// PurchaseRecordFileName is the name of the cached purchase record.
	PurchaseRecordFileName = "template_record.json"

	// JournalFileName is the name of the pass history database.
	JournalFileName = "journal.db"

	// ConfigFileName is the name of the config file looked up in the working directory.
	ConfigFileName = "tmplsync.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultDataDir returns the default root for cached templates and the journal.
// It honors XDG_DATA_HOME and falls back to ~/.local/share/tmplsync.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("."+AppName, "data")
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName, "config.yaml")
}

// TemplatesDir joins the data directory and the template directory name.
func TemplatesDir(dataDir string) string {
	return filepath.Join(dataDir, TemplatesDirName)
}

// JournalPath joins the data directory and the journal file name.
func JournalPath(dataDir string) string {
	return filepath.Join(dataDir, JournalFileName)
}
