package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "scriptmap"

	// DefaultOutputPrefix is the prefix for the generated report files.
	// A scan writes "<prefix>_inventory.md" and "<prefix>_summary.md".
	DefaultOutputPrefix = "scriptmap"
)

// Config holds all configuration options for a scriptmap run.
// This struct is populated from CLI flags and the optional config file,
// then passed through the application via dependency injection rather
// than global state.
type Config struct {
	// PrimaryDomain is the registrable domain used to distinguish
	// first-party from third-party scripts. Required for scanning.
	PrimaryDomain string

	// InputFiles are the input file paths, read and concatenated in
	// argument order. At least one is required.
	InputFiles []string

	// OutputPrefix is the path prefix for the generated Markdown
	// documents.
	OutputPrefix string

	// WriteToStdout prints both Markdown documents to stdout instead of
	// writing files.
	WriteToStdout bool

	// JSONReport outputs the full report as JSON instead of Markdown.
	// Mutually exclusive with WriteToStdout.
	JSONReport bool

	// ConfigFilePath is the path to the configuration file. If empty,
	// the tool searches for .scriptmap in the current directory and
	// then in the user's home directory.
	ConfigFilePath string

	// Rules holds custom classification rules loaded from the config
	// file. They are evaluated before the built-in table within each
	// pattern kind, so users can override vendor assignments.
	Rules []RuleEntry

	// IgnorePatterns are URL substrings to skip during extraction.
	IgnorePatterns []string

	// SaveToDB indicates whether to record the scan in the history
	// database for later comparison.
	SaveToDB bool

	// DBDir is the directory path for the SQLite history database.
	// Defaults to the XDG data directory.
	DBDir string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero. This also serves
// as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		OutputPrefix: DefaultOutputPrefix,
		SaveToDB:     true,
	}
}

// XDGDataDir returns the XDG data directory for scriptmap.
// On Linux: ~/.local/share/scriptmap
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for scriptmap.
// On Linux: ~/.config/scriptmap
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It is called once after CLI parsing, before any input is read, so
// input errors abort the run before classification starts.
//
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.InputFiles) == 0 {
		return ErrNoInput
	}

	if c.PrimaryDomain == "" {
		return ErrNoPrimaryDomain
	}

	if c.OutputPrefix == "" && !c.WriteToStdout && !c.JSONReport {
		return ErrEmptyOutputPrefix
	}

	if c.JSONReport && c.WriteToStdout {
		return ErrConflictingReportFormats
	}

	return nil
}
