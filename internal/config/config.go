package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultPageSize is the number of tweet cards per page of the HTML
	// report. 24 keeps each page light enough to render instantly even
	// with all accordions expanded, and matches the original visualizer.
	DefaultPageSize = 24

	// DefaultBatchSize is the number of inputs rendered concurrently when
	// several record files are passed at once. Rendering is CPU-light and
	// I/O-bound on the output files, so a small degree of parallelism is
	// enough.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "waybacktweets"
)

// Format identifies a report output format.
type Format string

// Supported report formats.
const (
	// FormatHTML is the default paginated browser report.
	FormatHTML Format = "html"

	// FormatMarkdown is the GitHub Flavored Markdown export.
	FormatMarkdown Format = "markdown"

	// FormatJSON is the structured JSON export.
	FormatJSON Format = "json"

	// FormatCSV is the flat CSV export.
	FormatCSV Format = "csv"
)

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	default:
		return "html"
	}
}

// Config holds all configuration options for the CLI.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., RenderConfig, StoreConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant
// benefit.
type Config struct {
	// Username is the Twitter/X username the records belong to, without
	// the leading "@". It is interpolated into report titles and headings.
	Username string

	// Sources are the record inputs: filesystem paths to JSON files, or
	// literal JSON strings. At least one is required.
	Sources []string

	// OutputPath is the report destination. Empty means stdout.
	// With multiple sources it must be empty or a directory; per-source
	// file names are derived inside it.
	OutputPath string

	// MarkdownReport selects Markdown output instead of HTML.
	// Mutually exclusive with JSONReport and CSVReport.
	MarkdownReport bool

	// JSONReport selects JSON output instead of HTML.
	// Mutually exclusive with MarkdownReport and CSVReport.
	JSONReport bool

	// CSVReport selects CSV output instead of HTML.
	// Mutually exclusive with MarkdownReport and JSONReport.
	CSVReport bool

	// PageSize is the number of tweet cards per HTML report page.
	PageSize int

	// Unescaped disables HTML/JS escaping of field values, reproducing
	// the raw interpolation of the original visualizer.
	Unescaped bool

	// BatchSize is the number of sources rendered concurrently.
	BatchSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .waybacktweets in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// UserConfigs holds per-username configurations loaded from the
	// config file.
	UserConfigs *File

	// SaveToDB indicates whether records and the report run are saved to
	// the local SQLite store.
	SaveToDB bool

	// DBDir is the directory holding the SQLite store.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (page size, batch
// size). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		PageSize:  DefaultPageSize,
		BatchSize: DefaultBatchSize,
	}
}

// Format returns the selected report format.
func (c *Config) Format() Format {
	switch {
	case c.MarkdownReport:
		return FormatMarkdown
	case c.JSONReport:
		return FormatJSON
	case c.CSVReport:
		return FormatCSV
	default:
		return FormatHTML
	}
}

// XDGDataDir returns the XDG data directory for Wayback Tweets.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/waybacktweets
// On macOS: ~/Library/Application Support/waybacktweets
// On Windows: %LOCALAPPDATA%\waybacktweets
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for Wayback Tweets.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for Wayback Tweets.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any rendering begins.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// The username is interpolated into the report title and heading
	if c.Username == "" {
		return ErrNoUsername
	}

	// We must have at least one record input
	if len(c.Sources) == 0 {
		return ErrNoInput
	}

	// At most one output format may be selected
	selected := 0
	for _, on := range []bool{c.MarkdownReport, c.JSONReport, c.CSVReport} {
		if on {
			selected++
		}
	}
	if selected > 1 {
		return ErrConflictingReportFormats
	}

	// Page size must be positive; zero pages would swallow every record
	if c.PageSize <= 0 {
		return ErrInvalidPageSize
	}

	// BatchSize must be positive; zero would mean no rendering
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	return nil
}
