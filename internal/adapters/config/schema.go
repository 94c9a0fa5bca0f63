package config

// File represents the structure of the tmplsync.yaml configuration file.
type File struct {
	Server    ServerDTO    `yaml:"server"`
	Sync      SyncDTO      `yaml:"sync"`
	Templates TemplatesDTO `yaml:"templates"`
	Remote    RemoteDTO    `yaml:"remote"`
	Log       LogDTO       `yaml:"log"`
}

// ServerDTO locates the catalog service.
type ServerDTO struct {
	URL      string `yaml:"url"`
	Token    string `yaml:"token"`
	Platform string `yaml:"platform"`
}

// SyncDTO tunes reconciliation passes.
type SyncDTO struct {
	Locale               string `yaml:"locale"`
	FetchTimeout         string `yaml:"fetch_timeout"`
	DownloadTimeout      string `yaml:"download_timeout"`
	Interval             string `yaml:"interval"`
	DownloadNewTemplates *bool  `yaml:"download_new_templates"`
	Concurrency          *int   `yaml:"concurrency"`
}

// TemplatesDTO locates local state.
type TemplatesDTO struct {
	DataDir       string `yaml:"data_dir"`
	BundledScript string `yaml:"bundled_script"`
}

// RemoteDTO bounds network reads.
type RemoteDTO struct {
	MaxBodyBytes *int64 `yaml:"max_body_bytes"`
}

// LogDTO configures logging.
type LogDTO struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
	Trace  *bool  `yaml:"trace"`
}
