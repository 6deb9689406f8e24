package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when no input file is specified.
	ErrNoInput = errors.New("no input specified: provide one or more input files")

	// ErrNoPrimaryDomain is returned when the primary domain is empty.
	// Party labeling requires a primary domain, so the run aborts before
	// classification.
	ErrNoPrimaryDomain = errors.New("no primary domain specified: use --primary-domain or set primaryDomain in .scriptmap")

	// ErrEmptyOutputPrefix is returned when file output is requested
	// with an empty output prefix.
	ErrEmptyOutputPrefix = errors.New("invalid output prefix: must not be empty")

	// ErrConflictingReportFormats is returned when both --json and
	// --stdout are specified. Only one output mode can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --stdout cannot be used together")
)
