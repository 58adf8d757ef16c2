package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run fields.
	FieldFormat   = "format"
	FieldJobs     = "jobs"
	FieldSafeMode = "safe_mode"
	FieldStrict   = "strict"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesParsed      = "files_parsed"
	FieldFilesErrored     = "files_errored"
	FieldFilesWithIssues  = "files_with_issues"
	FieldBlocks           = "blocks"
	FieldDiagnosticsTotal = "diagnostics_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
