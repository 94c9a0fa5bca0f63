package domain

import "time"

const (
	// DefaultLocale is used when neither config nor flags name a locale.
	DefaultLocale = "en_US"
	// DefaultFetchTimeout bounds a single manifest fetch.
	DefaultFetchTimeout = 30 * time.Second
	// DefaultDownloadTimeout bounds a single asset transfer.
	DefaultDownloadTimeout = 5 * time.Minute
	// DefaultSyncInterval is the period of watch mode.
	DefaultSyncInterval = 6 * time.Hour
	// DefaultMaxBodyBytes caps manifest and asset bodies read from the network.
	DefaultMaxBodyBytes int64 = 8 << 20
	// DefaultConcurrency is the number of passes the background runner executes at once.
	DefaultConcurrency = 1
)

// LogFormat selects the log handler.
type LogFormat string

const (
	// LogFormatAuto picks pretty output on a terminal and JSON elsewhere.
	LogFormatAuto LogFormat = "auto"
	// LogFormatPretty forces the colored console handler.
	LogFormatPretty LogFormat = "pretty"
	// LogFormatJSON forces structured JSON records.
	LogFormatJSON LogFormat = "json"
)

// LogSettings configures the logger adapter.
type LogSettings struct {
	Level  string
	Format LogFormat
	File   string
	Trace  bool
}

// Settings is the resolved runtime configuration.
type Settings struct {
	ServerURL string
	Token     string
	Platform  string

	Locale               string
	FetchTimeout         time.Duration
	DownloadTimeout      time.Duration
	Interval             time.Duration
	DownloadNewTemplates bool
	Concurrency          int

	DataDir       string
	BundledScript string

	MaxBodyBytes int64

	Log LogSettings

	// Source is the config file the settings were read from, empty for defaults.
	Source string
}

// DefaultSettings returns settings with every optional field populated.
func DefaultSettings() *Settings {
	return &Settings{
		Platform:        DefaultPlatform(),
		Locale:          DefaultLocale,
		FetchTimeout:    DefaultFetchTimeout,
		DownloadTimeout: DefaultDownloadTimeout,
		Interval:        DefaultSyncInterval,
		Concurrency:     DefaultConcurrency,
		DataDir:         DefaultDataDir(),
		MaxBodyBytes:    DefaultMaxBodyBytes,
		Log: LogSettings{
			Level:  "info",
			Format: LogFormatAuto,
		},
	}
}

// TemplatesDir returns the template asset directory for these settings.
func (s *Settings) TemplatesDir() string {
	return TemplatesDir(s.DataDir)
}

// Endpoints returns the URL builder for the configured server.
func (s *Settings) Endpoints() Endpoints {
	return NewEndpoints(s.ServerURL, s.Platform)
}
