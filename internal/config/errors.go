package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoUsername is returned when no username is specified.
	// The username is interpolated into the report title and heading and
	// has no sensible default.
	ErrNoUsername = errors.New("no username specified: use --username")

	// ErrNoInput is returned when no record input is specified.
	// Inputs are positional arguments: JSON file paths or literal JSON.
	ErrNoInput = errors.New("no input specified: provide a JSON file path or a literal JSON string")

	// ErrConflictingReportFormats is returned when more than one of
	// --markdown, --json, and --csv is specified. Only one output format
	// can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --markdown, --json, and --csv cannot be combined")

	// ErrInvalidPageSize is returned when the page size is not positive.
	// A non-positive page size would produce no pages at all.
	ErrInvalidPageSize = errors.New("invalid page size: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no inputs are ever rendered.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")
)
